package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// NotificationService delivers messages to user inboxes. Messages are
// sanitized before storage; an empty recipient list broadcasts to every
// student account.
type NotificationService interface {
	Publish(ctx context.Context, req dto.NotificationCreateRequest) ([]dto.NotificationResponse, error)
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	validate      *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
}

// NewNotificationService builds the notification service.
func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		users:         users,
		validate:      validate,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *notificationService) Publish(ctx context.Context, req dto.NotificationCreateRequest) ([]dto.NotificationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(s.sanitizer.Sanitize(req.Message))
	if message == "" {
		return nil, errors.New("message is empty after sanitization")
	}

	recipients := req.UserIDs
	if len(recipients) == 0 {
		students, _, err := s.users.List(ctx, repository.UserFilter{Role: models.RoleStudent})
		if err != nil {
			return nil, err
		}
		for _, student := range students {
			recipients = append(recipients, student.ID)
		}
	}

	batch := make([]models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		batch = append(batch, models.Notification{
			UserID:  userID,
			Type:    req.Type,
			Message: message,
		})
	}
	if len(batch) == 0 {
		return []dto.NotificationResponse{}, nil
	}

	if err := s.notifications.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	s.logger.Info().Int("recipients", len(batch)).Str("type", req.Type).Msg("notifications published")

	out := make([]dto.NotificationResponse, 0, len(batch))
	for _, notification := range batch {
		out = append(out, dto.NewNotificationResponse(notification))
	}
	return out, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]dto.NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	notifications, err := s.notifications.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, dto.NewNotificationResponse(notification))
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error) {
	notification, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotFound
		}
		return dto.NotificationResponse{}, err
	}
	return dto.NewNotificationResponse(notification), nil
}
