package models

import "time"

// SharedNote is a study file a user uploads for the rest of a course.
type SharedNote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UploaderID uint      `gorm:"index;not null" json:"uploader_id"`
	CourseID   uint      `gorm:"index" json:"course_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	FileURL    string    `gorm:"size:512;not null" json:"file_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
