package dto

import (
	"time"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// PortalStatsResponse is the admin headline view. Served from cache; the
// background refresher re-primes it on an interval so polls stay cheap.
type PortalStatsResponse struct {
	TotalUsers        int64            `json:"total_users"`
	UsersByRole       map[string]int64 `json:"users_by_role"`
	TotalCourses      int64            `json:"total_courses"`
	TotalAssignments  int64            `json:"total_assignments"`
	PendingGrading    int64            `json:"pending_grading"`
	LiveClassesByStat map[string]int64 `json:"live_classes_by_status"`
	ActivityLastDay   int64            `json:"activity_last_day"`
	GeneratedAt       time.Time        `json:"generated_at"`
	CacheHit          bool             `json:"cache_hit"`
}

// ActivityEntry is one row of the admin activity feed.
type ActivityEntry struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewActivityEntry converts a model into a DTO.
func NewActivityEntry(model models.ActivityLog) ActivityEntry {
	return ActivityEntry{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorRole:  model.ActorRole,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   map[string]interface{}(model.Metadata),
		CreatedAt:  model.CreatedAt,
	}
}

// ProblemReport is an operational warning surfaced on the admin dashboard,
// e.g. grading backlog or live classes stuck past their scheduled end.
type ProblemReport struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Count    int64  `json:"count"`
}
