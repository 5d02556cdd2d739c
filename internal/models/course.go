package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course is a published unit of study owned by an educator.
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	SubTitle    string         `gorm:"size:255" json:"sub_title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:128" json:"category"`
	Level       string         `gorm:"size:64" json:"level"`
	Price       float64        `json:"price"`
	IsPublished bool           `gorm:"default:false" json:"is_published"`
	CreatorID   uint           `gorm:"index;not null" json:"creator_id"`
	Lectures    datatypes.JSON `json:"lectures"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Enrollment links a student to a course. The pair is unique.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"user_id"`
	CourseID  uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
