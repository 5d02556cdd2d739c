package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// SharedNoteRepository defines persistence operations for shared notes.
type SharedNoteRepository interface {
	List(ctx context.Context, courseID *uint) ([]models.SharedNote, error)
	GetByID(ctx context.Context, id uint) (models.SharedNote, error)
	Create(ctx context.Context, note *models.SharedNote) error
	Delete(ctx context.Context, id uint) error
}

type sharedNoteRepository struct {
	db *gorm.DB
}

// NewSharedNoteRepository instantiates a GORM-backed repository.
func NewSharedNoteRepository(db *gorm.DB) SharedNoteRepository {
	return &sharedNoteRepository{db: db}
}

func (r *sharedNoteRepository) List(ctx context.Context, courseID *uint) ([]models.SharedNote, error) {
	query := r.db.WithContext(ctx).Model(&models.SharedNote{})
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}

	var notes []models.SharedNote
	if err := query.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *sharedNoteRepository) GetByID(ctx context.Context, id uint) (models.SharedNote, error) {
	var note models.SharedNote
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return models.SharedNote{}, err
	}
	return note, nil
}

func (r *sharedNoteRepository) Create(ctx context.Context, note *models.SharedNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *sharedNoteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SharedNote{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
