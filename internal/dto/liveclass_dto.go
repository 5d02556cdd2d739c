package dto

import (
	"time"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// Schedule selection values accepted on create and edit.
const (
	ScheduleTypeScheduled = "scheduled"
	ScheduleTypeStartNow  = "startnow"
)

// LiveClassCreateRequest is the payload for creating a live class. Meeting
// fields apply only when the platform is not the built-in portal; the
// cross-field rules are enforced in the service.
type LiveClassCreateRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=255"`
	Description     string `json:"description" validate:"omitempty,max=5000"`
	CourseID        uint   `json:"course_id" validate:"required"`
	Platform        string `json:"platform" validate:"required,oneof=portal zoom google-meet"`
	MeetingLink     string `json:"meeting_link" validate:"omitempty,url"`
	MeetingID       string `json:"meeting_id" validate:"omitempty,max=128"`
	MeetingPassword string `json:"meeting_password" validate:"omitempty,max=128"`
	ScheduleType    string `json:"schedule_type" validate:"required,oneof=scheduled startnow"`
	ScheduledAt     string `json:"scheduled_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Duration        int    `json:"duration" validate:"required,gt=0"`
	MaxParticipants int    `json:"max_participants" validate:"required,gt=0"`
}

// LiveClassUpdateRequest mirrors the create contract for edits.
type LiveClassUpdateRequest LiveClassCreateRequest

// LiveClassStatusRequest asks for a one-way status transition.
type LiveClassStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled live completed cancelled"`
}

// LiveClassResponse is the serialized live class. ScheduleType is derived
// from the stored time so edit forms pre-fill correctly: a class whose
// scheduled time has already passed defaults to startnow.
type LiveClassResponse struct {
	ID              uint       `json:"id"`
	CourseID        uint       `json:"course_id"`
	EducatorID      uint       `json:"educator_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Platform        string     `json:"platform"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	MeetingID       string     `json:"meeting_id,omitempty"`
	MeetingPassword string     `json:"meeting_password,omitempty"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	ScheduleType    string     `json:"schedule_type"`
	Duration        int        `json:"duration"`
	MaxParticipants int        `json:"max_participants"`
	Status          string     `json:"status"`
	RecordingURL    string     `json:"recording_url,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Roster          []uint     `json:"roster"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewLiveClassResponse converts a model into a DTO using the reference time
// to derive the schedule selection.
func NewLiveClassResponse(model models.LiveClass, now time.Time) LiveClassResponse {
	scheduleType := ScheduleTypeScheduled
	if !model.ScheduledAt.After(now) {
		scheduleType = ScheduleTypeStartNow
	}

	roster := make([]uint, 0, len(model.Participants))
	for _, participant := range model.Participants {
		roster = append(roster, participant.UserID)
	}

	return LiveClassResponse{
		ID:              model.ID,
		CourseID:        model.CourseID,
		EducatorID:      model.EducatorID,
		Title:           model.Title,
		Description:     model.Description,
		Platform:        model.Platform,
		MeetingLink:     model.MeetingLink,
		MeetingID:       model.MeetingID,
		MeetingPassword: model.MeetingPassword,
		ScheduledAt:     model.ScheduledAt,
		ScheduleType:    scheduleType,
		Duration:        model.Duration,
		MaxParticipants: model.MaxParticipants,
		Status:          model.Status,
		RecordingURL:    model.RecordingURL,
		StartedAt:       model.StartedAt,
		EndedAt:         model.EndedAt,
		Roster:          roster,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// LiveClassJoinResponse reports the outcome of a join request. For portal
// classes the client embeds the viewer using the class id; for external
// platforms it follows the meeting link.
type LiveClassJoinResponse struct {
	LiveClassID   uint   `json:"live_class_id"`
	Platform      string `json:"platform"`
	AlreadyJoined bool   `json:"already_joined"`
	MeetingLink   string `json:"meeting_link,omitempty"`
	MeetingID     string `json:"meeting_id,omitempty"`
}
