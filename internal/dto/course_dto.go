package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	SubTitle    string  `json:"sub_title" validate:"omitempty,max=255"`
	Description string  `json:"description" validate:"omitempty,max=10000"`
	Category    string  `json:"category" validate:"omitempty,max=128"`
	Level       string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsPublished bool    `json:"is_published"`
}

// CourseResponse is the serialized course.
type CourseResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	SubTitle    string         `json:"sub_title,omitempty"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Level       string         `json:"level,omitempty"`
	Price       float64        `json:"price"`
	IsPublished bool           `json:"is_published"`
	CreatorID   uint           `json:"creator_id"`
	Lectures    datatypes.JSON `json:"lectures,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:          model.ID,
		Title:       model.Title,
		SubTitle:    model.SubTitle,
		Description: model.Description,
		Category:    model.Category,
		Level:       model.Level,
		Price:       model.Price,
		IsPublished: model.IsPublished,
		CreatorID:   model.CreatorID,
		Lectures:    model.Lectures,
		CreatedAt:   model.CreatedAt,
	}
}
