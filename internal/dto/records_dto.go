package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// AttendanceMark is one student's status inside a bulk marking request.
type AttendanceMark struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
}

// AttendanceBulkRequest records a day's attendance for a course in one call.
type AttendanceBulkRequest struct {
	CourseID uint             `json:"course_id" validate:"required"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Marks    []AttendanceMark `json:"marks" validate:"required,min=1,dive"`
}

// AttendanceResponse is the serialized attendance record.
type AttendanceResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	CourseID  uint      `json:"course_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

// NewAttendanceResponse converts a model into a DTO.
func NewAttendanceResponse(model models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		CourseID:  model.CourseID,
		Date:      model.Date,
		Status:    model.Status,
	}
}

// AttendanceSummary aggregates a student's attendance history.
type AttendanceSummary struct {
	Total       int     `json:"total"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	Late        int     `json:"late"`
	PresentRate float64 `json:"present_rate"`
}

// GradeCreateRequest publishes a score for a student.
type GradeCreateRequest struct {
	StudentID uint              `json:"student_id" validate:"required"`
	CourseID  uint              `json:"course_id" validate:"required"`
	Title     string            `json:"title" validate:"required,min=1,max=255"`
	Score     float64           `json:"score" validate:"gte=0"`
	MaxScore  float64           `json:"max_score" validate:"required,gt=0"`
	Breakdown map[string]string `json:"breakdown" validate:"omitempty"`
}

// GradeResponse is the serialized grade.
type GradeResponse struct {
	ID         uint           `json:"id"`
	StudentID  uint           `json:"student_id"`
	CourseID   uint           `json:"course_id"`
	Title      string         `json:"title"`
	Score      float64        `json:"score"`
	MaxScore   float64        `json:"max_score"`
	Percentage float64        `json:"percentage"`
	Breakdown  datatypes.JSON `json:"breakdown,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewGradeResponse converts a model into a DTO.
func NewGradeResponse(model models.Grade) GradeResponse {
	return GradeResponse{
		ID:         model.ID,
		StudentID:  model.StudentID,
		CourseID:   model.CourseID,
		Title:      model.Title,
		Score:      model.Score,
		MaxScore:   model.MaxScore,
		Percentage: model.Percentage(),
		Breakdown:  model.Breakdown,
		CreatedAt:  model.CreatedAt,
	}
}
