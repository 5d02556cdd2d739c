package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// LiveClassFilter narrows live-class listings.
type LiveClassFilter struct {
	EducatorID *uint
	CourseIDs  []uint
	Status     string
}

// LiveClassRepository defines persistence operations for live classes and
// their rosters.
type LiveClassRepository interface {
	List(ctx context.Context, filter LiveClassFilter) ([]models.LiveClass, error)
	GetByID(ctx context.Context, id uint) (models.LiveClass, error)
	Create(ctx context.Context, class *models.LiveClass) error
	Update(ctx context.Context, class *models.LiveClass) error
	Delete(ctx context.Context, id uint) error
	AddParticipant(ctx context.Context, participant *models.LiveClassParticipant) (created bool, err error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type liveClassRepository struct {
	db *gorm.DB
}

// NewLiveClassRepository instantiates a GORM-backed repository.
func NewLiveClassRepository(db *gorm.DB) LiveClassRepository {
	return &liveClassRepository{db: db}
}

func (r *liveClassRepository) List(ctx context.Context, filter LiveClassFilter) ([]models.LiveClass, error) {
	query := r.db.WithContext(ctx).Model(&models.LiveClass{}).Preload("Participants")

	if filter.EducatorID != nil {
		query = query.Where("educator_id = ?", *filter.EducatorID)
	}
	if len(filter.CourseIDs) > 0 {
		query = query.Where("course_id IN ?", filter.CourseIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var classes []models.LiveClass
	if err := query.Order("scheduled_at ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *liveClassRepository) GetByID(ctx context.Context, id uint) (models.LiveClass, error) {
	var class models.LiveClass
	if err := r.db.WithContext(ctx).Preload("Participants").First(&class, id).Error; err != nil {
		return models.LiveClass{}, err
	}
	return class, nil
}

func (r *liveClassRepository) Create(ctx context.Context, class *models.LiveClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *liveClassRepository) Update(ctx context.Context, class *models.LiveClass) error {
	return r.db.WithContext(ctx).Omit("Participants").Save(class).Error
}

func (r *liveClassRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("live_class_id = ?", id).Delete(&models.LiveClassParticipant{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.LiveClass{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddParticipant inserts a roster row unless one already exists for the
// (class, user) pair. Returns created=false for a duplicate join.
func (r *liveClassRepository) AddParticipant(ctx context.Context, participant *models.LiveClassParticipant) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "live_class_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(participant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *liveClassRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.LiveClass{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
