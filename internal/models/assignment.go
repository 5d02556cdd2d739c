package models

import "time"

// Submission status values.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Assignment is a piece of coursework attached to a course.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"index;not null" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	MaxMarks    float64   `json:"max_marks"`
	FileURL     string    `gorm:"size:512" json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Submissions []Submission `json:"submissions,omitempty"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// Submission is a student's answer to an assignment. The (assignment,
// student) pair is unique; resubmission is reported rather than duplicated.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"uniqueIndex:idx_submission_assignment_student;not null" json:"assignment_id"`
	StudentID    uint       `gorm:"uniqueIndex:idx_submission_assignment_student;not null" json:"student_id"`
	FileURL      string     `gorm:"size:512" json:"file_url"`
	Remarks      string     `gorm:"type:text" json:"remarks"`
	Status       string     `gorm:"size:32;not null;default:submitted" json:"status"`
	Grade        *float64   `json:"grade"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	GradedAt     *time.Time `json:"graded_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Assignment Assignment `json:"assignment,omitempty"`
}
