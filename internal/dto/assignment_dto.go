package dto

import (
	"time"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	CourseID    uint    `form:"course_id" json:"course_id" validate:"required"`
	Title       string  `form:"title" json:"title" validate:"required,min=3,max=255"`
	Description string  `form:"description" json:"description" validate:"omitempty,max=5000"`
	DueDate     string  `form:"due_date" json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	MaxMarks    float64 `form:"max_marks" json:"max_marks" validate:"omitempty,gt=0"`
}

// GradeSubmissionRequest is the educator's grading payload.
type GradeSubmissionRequest struct {
	Grade    float64 `json:"grade" validate:"gte=0"`
	Feedback string  `json:"feedback" validate:"omitempty,max=5000"`
}

// AssignmentResponse is the serialized assignment.
type AssignmentResponse struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	MaxMarks    float64   `json:"max_marks"`
	FileURL     string    `json:"file_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          model.ID,
		CourseID:    model.CourseID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		MaxMarks:    model.MaxMarks,
		FileURL:     model.FileURL,
		CreatedAt:   model.CreatedAt,
	}
}

// SubmissionResponse is the serialized submission. AlreadySubmitted flags a
// resubmission attempt that was answered with the existing record.
type SubmissionResponse struct {
	ID               uint       `json:"id"`
	AssignmentID     uint       `json:"assignment_id"`
	StudentID        uint       `json:"student_id"`
	FileURL          string     `json:"file_url"`
	Remarks          string     `json:"remarks,omitempty"`
	Status           string     `json:"status"`
	Grade            *float64   `json:"grade,omitempty"`
	Feedback         string     `json:"feedback,omitempty"`
	GradedAt         *time.Time `json:"graded_at,omitempty"`
	AlreadySubmitted bool       `json:"already_submitted"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission, alreadySubmitted bool) SubmissionResponse {
	return SubmissionResponse{
		ID:               model.ID,
		AssignmentID:     model.AssignmentID,
		StudentID:        model.StudentID,
		FileURL:          model.FileURL,
		Remarks:          model.Remarks,
		Status:           model.Status,
		Grade:            model.Grade,
		Feedback:         model.Feedback,
		GradedAt:         model.GradedAt,
		AlreadySubmitted: alreadySubmitted,
		CreatedAt:        model.CreatedAt,
	}
}
