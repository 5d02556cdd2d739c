package dto

import (
	"time"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// NotificationCreateRequest is the educator/admin publishing payload. An
// empty recipient list broadcasts to every student.
type NotificationCreateRequest struct {
	UserIDs []uint `json:"user_ids" validate:"omitempty,dive,gt=0"`
	Type    string `json:"type" validate:"omitempty,max=64"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// NotificationResponse is the serialized notification.
type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Type      string    `json:"type,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationResponse converts a model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		Message:   model.Message,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// SharedNoteCreateRequest accompanies the uploaded file.
type SharedNoteCreateRequest struct {
	Title    string `form:"title" json:"title" validate:"required,min=1,max=255"`
	CourseID uint   `form:"course_id" json:"course_id" validate:"omitempty,gt=0"`
}

// SharedNoteResponse is the serialized shared note.
type SharedNoteResponse struct {
	ID         uint      `json:"id"`
	UploaderID uint      `json:"uploader_id"`
	CourseID   uint      `json:"course_id,omitempty"`
	Title      string    `json:"title"`
	FileURL    string    `json:"file_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSharedNoteResponse converts a model into a DTO.
func NewSharedNoteResponse(model models.SharedNote) SharedNoteResponse {
	return SharedNoteResponse{
		ID:         model.ID,
		UploaderID: model.UploaderID,
		CourseID:   model.CourseID,
		Title:      model.Title,
		FileURL:    model.FileURL,
		CreatedAt:  model.CreatedAt,
	}
}
