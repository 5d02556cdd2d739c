package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// ActivityActor identifies who triggered an event.
type ActivityActor struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// ActivityEvent is published on the event bus whenever something auditable
// happens (enrollment, submission, live-class transition). The activity
// recorder consumes these and persists them for the admin feed.
type ActivityEvent struct {
	Actor      ActivityActor          `json:"actor"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// EventPublisher emits activity events. Publishing is best effort: a failed
// publish never fails the operation that produced the event.
type EventPublisher interface {
	PublishActivity(ctx context.Context, event ActivityEvent)
}

type natsEventPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSEventPublisher publishes activity events to the given subject.
func NewNATSEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) EventPublisher {
	return &natsEventPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) PublishActivity(_ context.Context, event ActivityEvent) {
	if p.conn == nil || p.subject == "" {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode activity event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", p.subject).Msg("failed to publish activity event")
	}
}

type noopEventPublisher struct{}

// NewNoopEventPublisher returns a publisher that drops every event. Used
// when the deployment runs without a message bus.
func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishActivity(context.Context, ActivityEvent) {}

// ActivityRecorder consumes activity events off the bus and persists them.
type ActivityRecorder struct {
	repo    repository.ActivityLogRepository
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
	sub     *nats.Subscription
}

// NewActivityRecorder constructs the consumer side of the activity feed.
func NewActivityRecorder(repo repository.ActivityLogRepository, conn *nats.Conn, subject string, logger zerolog.Logger) *ActivityRecorder {
	return &ActivityRecorder{
		repo:    repo,
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "activity_recorder").Logger(),
	}
}

// Start subscribes to the activity subject and records events until the
// context is cancelled.
func (r *ActivityRecorder) Start(ctx context.Context) error {
	if r.conn == nil || r.subject == "" {
		return nil
	}

	sub, err := r.conn.Subscribe(r.subject, func(msg *nats.Msg) {
		var event ActivityEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			r.logger.Warn().Err(err).Msg("dropping malformed activity event")
			return
		}
		r.record(ctx, event)
	})
	if err != nil {
		return err
	}
	r.sub = sub

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil {
			r.logger.Debug().Err(err).Msg("failed to unsubscribe activity recorder")
		}
	}()

	return nil
}

func (r *ActivityRecorder) record(ctx context.Context, event ActivityEvent) {
	entry := models.ActivityLog{
		ActorID:    event.Actor.ID,
		ActorRole:  event.Actor.Role,
		Action:     event.Action,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Metadata:   datatypes.JSONMap(event.Metadata),
		CreatedAt:  event.OccurredAt,
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := r.repo.Create(ctx, &entry); err != nil {
		r.logger.Warn().Err(err).Str("action", event.Action).Msg("failed to record activity event")
	}
}
