package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// AttendanceRepository defines persistence operations for attendance marks.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error)
	ListByCourseAndDate(ctx context.Context, courseID uint, date time.Time) ([]models.AttendanceRecord, error)
	UpsertBatch(ctx context.Context, records []models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ListByCourseAndDate(ctx context.Context, courseID uint, date time.Time) ([]models.AttendanceRecord, error) {
	day := date.Truncate(24 * time.Hour)

	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND date = ?", courseID, day).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpsertBatch writes a day's marks in one shot. Re-marking the same student
// on the same day overwrites the previous status.
func (r *attendanceRepository) UpsertBatch(ctx context.Context, records []models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
		}).
		Create(&records).Error
}
