package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// ActivityLogRepository defines persistence operations for the audit feed.
type ActivityLogRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error)
	Create(ctx context.Context, entry *models.ActivityLog) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository instantiates a GORM-backed repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}

	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Where("created_at >= ?", since).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
