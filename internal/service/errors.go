package service

import "errors"

// Sentinel errors shared across services. Handlers translate these into the
// HTTP error taxonomy.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("not allowed to perform this action")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrNotJoinable        = errors.New("live class is no longer joinable")
	ErrClassFull          = errors.New("live class roster is full")
	ErrMeetingRequired    = errors.New("meeting link required for external platforms")
	ErrScheduleRequired   = errors.New("scheduled time required for scheduled classes")
	ErrNotEnrolled        = errors.New("student is not enrolled in the course")
)
