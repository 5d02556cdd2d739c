package models

import (
	"time"

	"gorm.io/datatypes"
)

// Grade is a published score for a student in a course. Breakdown carries
// optional per-component marks as free-form JSON.
type Grade struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StudentID uint           `gorm:"index;not null" json:"student_id"`
	CourseID  uint           `gorm:"index;not null" json:"course_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Score     float64        `gorm:"not null" json:"score"`
	MaxScore  float64        `gorm:"not null" json:"max_score"`
	Breakdown datatypes.JSON `json:"breakdown"`
	GradedBy  uint           `gorm:"index" json:"graded_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Percentage returns the score as a fraction of the maximum, in percent.
func (g Grade) Percentage() float64 {
	if g.MaxScore <= 0 {
		return 0
	}
	return (g.Score / g.MaxScore) * 100
}
