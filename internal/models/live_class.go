package models

import "time"

// Live class status values. Transitions only move forward: a scheduled class
// goes live or is cancelled, a live class completes. Completed and cancelled
// are terminal.
const (
	LiveClassScheduled = "scheduled"
	LiveClassLive      = "live"
	LiveClassCompleted = "completed"
	LiveClassCancelled = "cancelled"
)

// Platform values for a live class. Portal uses the built-in player; the
// other kinds carry an externally hosted meeting reference.
const (
	PlatformPortal     = "portal"
	PlatformZoom       = "zoom"
	PlatformGoogleMeet = "google-meet"
)

var liveClassTransitions = map[string][]string{
	LiveClassScheduled: {LiveClassLive, LiveClassCancelled},
	LiveClassLive:      {LiveClassCompleted},
	LiveClassCompleted: {},
	LiveClassCancelled: {},
}

// LiveClass is a scheduled or running video session attached to a course.
type LiveClass struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CourseID        uint       `gorm:"index;not null" json:"course_id"`
	EducatorID      uint       `gorm:"index;not null" json:"educator_id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Platform        string     `gorm:"size:32;not null;default:portal" json:"platform"`
	MeetingLink     string     `gorm:"size:512" json:"meeting_link"`
	MeetingID       string     `gorm:"size:128" json:"meeting_id"`
	MeetingPassword string     `gorm:"size:128" json:"meeting_password"`
	ScheduledAt     time.Time  `gorm:"not null" json:"scheduled_at"`
	Duration        int        `gorm:"not null" json:"duration"`
	MaxParticipants int        `gorm:"not null" json:"max_participants"`
	Status          string     `gorm:"size:32;not null;default:scheduled;index" json:"status"`
	RecordingURL    string     `gorm:"size:512" json:"recording_url"`
	StartedAt       *time.Time `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Participants []LiveClassParticipant `json:"participants"`
}

// LiveClassParticipant records a student's membership in a class roster.
// The (live class, user) pair is unique, which makes join idempotent.
type LiveClassParticipant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LiveClassID uint      `gorm:"uniqueIndex:idx_liveclass_participant;not null" json:"live_class_id"`
	UserID      uint      `gorm:"uniqueIndex:idx_liveclass_participant;not null" json:"user_id"`
	JoinedAt    time.Time `json:"joined_at"`
}

// CanTransition reports whether moving from the current status to next is a
// legal forward transition.
func (lc LiveClass) CanTransition(next string) bool {
	for _, allowed := range liveClassTransitions[lc.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the class has reached a final status.
func (lc LiveClass) IsTerminal() bool {
	return lc.Status == LiveClassCompleted || lc.Status == LiveClassCancelled
}

// IsJoinable reports whether a join request is meaningful for the class.
func (lc LiveClass) IsJoinable() bool {
	return lc.Status == LiveClassScheduled || lc.Status == LiveClassLive
}

// UsesExternalMeeting reports whether the class carries an externally hosted
// meeting reference instead of the built-in portal player.
func (lc LiveClass) UsesExternalMeeting() bool {
	return lc.Platform != PlatformPortal
}

// IsValidLiveClassStatus reports whether the value is a known status.
func IsValidLiveClassStatus(status string) bool {
	_, ok := liveClassTransitions[status]
	return ok
}

// IsValidPlatform reports whether the value is a supported platform kind.
func IsValidPlatform(platform string) bool {
	switch platform {
	case PlatformPortal, PlatformZoom, PlatformGoogleMeet:
		return true
	}
	return false
}
