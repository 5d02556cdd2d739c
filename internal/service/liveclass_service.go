package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// LiveClassService owns the live-class lifecycle: create, edit, status
// transitions, join, and the role-filtered listings.
type LiveClassService interface {
	Create(ctx context.Context, actor ActivityActor, req dto.LiveClassCreateRequest) (dto.LiveClassResponse, error)
	Update(ctx context.Context, actor ActivityActor, id uint, req dto.LiveClassUpdateRequest) (dto.LiveClassResponse, error)
	ChangeStatus(ctx context.Context, actor ActivityActor, id uint, status string) (dto.LiveClassResponse, error)
	Delete(ctx context.Context, actor ActivityActor, id uint) error
	Join(ctx context.Context, studentID uint, id uint) (dto.LiveClassJoinResponse, error)
	ListForEducator(ctx context.Context, actor ActivityActor, status string) ([]dto.LiveClassResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.LiveClassResponse, error)
}

type liveClassService struct {
	classes   repository.LiveClassRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	events    EventPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewLiveClassService builds the lifecycle controller.
func NewLiveClassService(classes repository.LiveClassRepository, courses repository.CourseRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) LiveClassService {
	if events == nil {
		events = NewNoopEventPublisher()
	}

	return &liveClassService{
		classes:   classes,
		courses:   courses,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "liveclass_service").Logger(),
		tracer:    otel.Tracer("github.com/HimanshuSagar02/RajChemReacor/internal/service/liveclass"),
		now:       time.Now,
	}
}

func (s *liveClassService) Create(ctx context.Context, actor ActivityActor, req dto.LiveClassCreateRequest) (dto.LiveClassResponse, error) {
	ctx, span := s.tracer.Start(ctx, "liveclass.create", trace.WithAttributes(
		attribute.String("platform", req.Platform),
		attribute.String("schedule_type", req.ScheduleType),
	))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return dto.LiveClassResponse{}, err
	}

	scheduledAt, err := s.resolveSchedule(req.ScheduleType, req.ScheduledAt)
	if err != nil {
		return dto.LiveClassResponse{}, err
	}

	if err := validateMeetingFields(req.Platform, req.MeetingLink); err != nil {
		return dto.LiveClassResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LiveClassResponse{}, fmt.Errorf("course %d: %w", req.CourseID, ErrNotFound)
		}
		return dto.LiveClassResponse{}, err
	}

	class := models.LiveClass{
		CourseID:        req.CourseID,
		EducatorID:      actor.ID,
		Title:           req.Title,
		Description:     req.Description,
		Platform:        req.Platform,
		MeetingLink:     req.MeetingLink,
		MeetingID:       req.MeetingID,
		MeetingPassword: req.MeetingPassword,
		ScheduledAt:     scheduledAt,
		Duration:        req.Duration,
		MaxParticipants: req.MaxParticipants,
		Status:          models.LiveClassScheduled,
	}

	if err := s.classes.Create(ctx, &class); err != nil {
		return dto.LiveClassResponse{}, err
	}

	// A "start now" creation goes live in the same call so the class shows
	// up in the live-filtered list without a separate status request.
	if req.ScheduleType == dto.ScheduleTypeStartNow {
		if err := s.applyTransition(ctx, &class, models.LiveClassLive); err != nil {
			return dto.LiveClassResponse{}, err
		}
	}

	s.publishClassEvent(ctx, actor, "liveclass.created", class)
	s.logger.Info().Uint("live_class_id", class.ID).Str("status", class.Status).Msg("live class created")

	return dto.NewLiveClassResponse(class, s.now()), nil
}

func (s *liveClassService) Update(ctx context.Context, actor ActivityActor, id uint, req dto.LiveClassUpdateRequest) (dto.LiveClassResponse, error) {
	if err := s.validator.Struct(dto.LiveClassCreateRequest(req)); err != nil {
		return dto.LiveClassResponse{}, err
	}

	class, err := s.ownedClass(ctx, actor, id)
	if err != nil {
		return dto.LiveClassResponse{}, err
	}

	scheduledAt, err := s.resolveSchedule(req.ScheduleType, req.ScheduledAt)
	if err != nil {
		return dto.LiveClassResponse{}, err
	}

	if err := validateMeetingFields(req.Platform, req.MeetingLink); err != nil {
		return dto.LiveClassResponse{}, err
	}

	class.Title = req.Title
	class.Description = req.Description
	class.CourseID = req.CourseID
	class.Platform = req.Platform
	class.MeetingLink = req.MeetingLink
	class.MeetingID = req.MeetingID
	class.MeetingPassword = req.MeetingPassword
	class.ScheduledAt = scheduledAt
	class.Duration = req.Duration
	class.MaxParticipants = req.MaxParticipants

	if err := s.classes.Update(ctx, &class); err != nil {
		return dto.LiveClassResponse{}, err
	}

	if req.ScheduleType == dto.ScheduleTypeStartNow && class.Status == models.LiveClassScheduled {
		if err := s.applyTransition(ctx, &class, models.LiveClassLive); err != nil {
			return dto.LiveClassResponse{}, err
		}
	}

	s.publishClassEvent(ctx, actor, "liveclass.updated", class)

	return dto.NewLiveClassResponse(class, s.now()), nil
}

func (s *liveClassService) ChangeStatus(ctx context.Context, actor ActivityActor, id uint, status string) (dto.LiveClassResponse, error) {
	ctx, span := s.tracer.Start(ctx, "liveclass.change_status", trace.WithAttributes(
		attribute.String("target_status", status),
	))
	defer span.End()

	if !models.IsValidLiveClassStatus(status) {
		return dto.LiveClassResponse{}, fmt.Errorf("%q: %w", status, ErrInvalidTransition)
	}

	class, err := s.ownedClass(ctx, actor, id)
	if err != nil {
		return dto.LiveClassResponse{}, err
	}

	if err := s.applyTransition(ctx, &class, status); err != nil {
		return dto.LiveClassResponse{}, err
	}

	s.publishClassEvent(ctx, actor, "liveclass.status_changed", class)
	s.logger.Info().Uint("live_class_id", class.ID).Str("status", class.Status).Msg("live class status changed")

	return dto.NewLiveClassResponse(class, s.now()), nil
}

func (s *liveClassService) Delete(ctx context.Context, actor ActivityActor, id uint) error {
	class, err := s.ownedClass(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.classes.Delete(ctx, class.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.publishClassEvent(ctx, actor, "liveclass.deleted", class)
	return nil
}

func (s *liveClassService) Join(ctx context.Context, studentID uint, id uint) (dto.LiveClassJoinResponse, error) {
	ctx, span := s.tracer.Start(ctx, "liveclass.join", trace.WithAttributes(
		attribute.Int64("live_class_id", int64(id)),
	))
	defer span.End()

	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LiveClassJoinResponse{}, ErrNotFound
		}
		return dto.LiveClassJoinResponse{}, err
	}

	if !class.IsJoinable() {
		return dto.LiveClassJoinResponse{}, ErrNotJoinable
	}

	enrolled, err := s.courses.EnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return dto.LiveClassJoinResponse{}, err
	}
	if !containsID(enrolled, class.CourseID) {
		return dto.LiveClassJoinResponse{}, ErrNotEnrolled
	}

	alreadyOnRoster := false
	for _, participant := range class.Participants {
		if participant.UserID == studentID {
			alreadyOnRoster = true
			break
		}
	}

	if !alreadyOnRoster && len(class.Participants) >= class.MaxParticipants {
		return dto.LiveClassJoinResponse{}, ErrClassFull
	}

	participant := models.LiveClassParticipant{
		LiveClassID: class.ID,
		UserID:      studentID,
		JoinedAt:    s.now(),
	}
	created, err := s.classes.AddParticipant(ctx, &participant)
	if err != nil {
		return dto.LiveClassJoinResponse{}, err
	}

	if created {
		s.events.PublishActivity(ctx, ActivityEvent{
			Actor:      ActivityActor{ID: studentID, Role: models.RoleStudent},
			Action:     "liveclass.joined",
			EntityType: "live_class",
			EntityID:   &class.ID,
			OccurredAt: s.now().UTC(),
		})
	}

	return dto.LiveClassJoinResponse{
		LiveClassID:   class.ID,
		Platform:      class.Platform,
		AlreadyJoined: !created,
		MeetingLink:   class.MeetingLink,
		MeetingID:     class.MeetingID,
	}, nil
}

func (s *liveClassService) ListForEducator(ctx context.Context, actor ActivityActor, status string) ([]dto.LiveClassResponse, error) {
	filter := repository.LiveClassFilter{Status: status}
	// Admins see every class; educators only their own.
	if actor.Role != models.RoleAdmin {
		filter.EducatorID = &actor.ID
	}

	classes, err := s.classes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(classes), nil
}

func (s *liveClassService) ListForStudent(ctx context.Context, studentID uint) ([]dto.LiveClassResponse, error) {
	courseIDs, err := s.courses.EnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []dto.LiveClassResponse{}, nil
	}

	classes, err := s.classes.List(ctx, repository.LiveClassFilter{CourseIDs: courseIDs})
	if err != nil {
		return nil, err
	}
	return s.toResponses(classes), nil
}

// applyTransition moves the class to the next status after checking the
// transition table, stamping timestamps and the recording reference along
// the way.
func (s *liveClassService) applyTransition(ctx context.Context, class *models.LiveClass, next string) error {
	if !class.CanTransition(next) {
		return fmt.Errorf("%s -> %s: %w", class.Status, next, ErrInvalidTransition)
	}

	now := s.now()
	class.Status = next

	switch next {
	case models.LiveClassLive:
		class.StartedAt = &now
	case models.LiveClassCompleted:
		class.EndedAt = &now
		if class.Platform == models.PlatformPortal && class.RecordingURL == "" {
			class.RecordingURL = fmt.Sprintf("/recordings/liveclass/%d", class.ID)
		}
	}

	return s.classes.Update(ctx, class)
}

func (s *liveClassService) ownedClass(ctx context.Context, actor ActivityActor, id uint) (models.LiveClass, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.LiveClass{}, ErrNotFound
		}
		return models.LiveClass{}, err
	}

	if actor.Role != models.RoleAdmin && class.EducatorID != actor.ID {
		return models.LiveClass{}, ErrForbidden
	}
	return class, nil
}

func (s *liveClassService) resolveSchedule(scheduleType, scheduledAt string) (time.Time, error) {
	if scheduleType == dto.ScheduleTypeStartNow {
		return s.now(), nil
	}

	if scheduledAt == "" {
		return time.Time{}, ErrScheduleRequired
	}

	parsed, err := time.Parse(time.RFC3339, scheduledAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled time: %w", err)
	}
	return parsed, nil
}

func (s *liveClassService) publishClassEvent(ctx context.Context, actor ActivityActor, action string, class models.LiveClass) {
	s.events.PublishActivity(ctx, ActivityEvent{
		Actor:      actor,
		Action:     action,
		EntityType: "live_class",
		EntityID:   &class.ID,
		Metadata: map[string]interface{}{
			"title":    class.Title,
			"status":   class.Status,
			"platform": class.Platform,
		},
		OccurredAt: s.now().UTC(),
	})
}

func (s *liveClassService) toResponses(classes []models.LiveClass) []dto.LiveClassResponse {
	now := s.now()
	responses := make([]dto.LiveClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, dto.NewLiveClassResponse(class, now))
	}
	return responses
}

func validateMeetingFields(platform, meetingLink string) error {
	if platform != models.PlatformPortal && meetingLink == "" {
		return ErrMeetingRequired
	}
	return nil
}

func containsID(ids []uint, target uint) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
