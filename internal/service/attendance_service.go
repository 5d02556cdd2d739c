package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// AttendanceService records and reports classroom attendance. Marking is an
// upsert keyed on (student, course, date), so re-marking a day corrects it
// instead of duplicating rows.
type AttendanceService interface {
	MarkBulk(ctx context.Context, actor ActivityActor, req dto.AttendanceBulkRequest) ([]dto.AttendanceResponse, error)
	ListByCourseAndDate(ctx context.Context, actor ActivityActor, courseID uint, date string) ([]dto.AttendanceResponse, error)
	MyAttendance(ctx context.Context, studentID uint) ([]dto.AttendanceResponse, dto.AttendanceSummary, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	courses    repository.CourseRepository
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewAttendanceService builds the attendance service.
func NewAttendanceService(
	attendance repository.AttendanceRepository,
	courses repository.CourseRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		courses:    courses,
		validate:   validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) MarkBulk(ctx context.Context, actor ActivityActor, req dto.AttendanceBulkRequest) ([]dto.AttendanceResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	if err := s.requireCourseOwner(ctx, actor, req.CourseID); err != nil {
		return nil, err
	}

	enrolled, err := s.courses.EnrolledStudentIDs(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	records := make([]models.AttendanceRecord, 0, len(req.Marks))
	for _, mark := range req.Marks {
		if !containsID(enrolled, mark.StudentID) {
			return nil, fmt.Errorf("student %d: %w", mark.StudentID, ErrNotEnrolled)
		}
		records = append(records, models.AttendanceRecord{
			StudentID: mark.StudentID,
			CourseID:  req.CourseID,
			Date:      date,
			Status:    mark.Status,
			MarkedBy:  actor.ID,
		})
	}

	if err := s.attendance.UpsertBatch(ctx, records); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("course_id", req.CourseID).Str("date", req.Date).Int("marks", len(records)).Msg("attendance recorded")

	out := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		out = append(out, dto.NewAttendanceResponse(record))
	}
	return out, nil
}

func (s *attendanceService) ListByCourseAndDate(ctx context.Context, actor ActivityActor, courseID uint, date string) ([]dto.AttendanceResponse, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	if err := s.requireCourseOwner(ctx, actor, courseID); err != nil {
		return nil, err
	}

	records, err := s.attendance.ListByCourseAndDate(ctx, courseID, parsed)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		out = append(out, dto.NewAttendanceResponse(record))
	}
	return out, nil
}

func (s *attendanceService) MyAttendance(ctx context.Context, studentID uint) ([]dto.AttendanceResponse, dto.AttendanceSummary, error) {
	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, dto.AttendanceSummary{}, err
	}

	summary := dto.AttendanceSummary{}
	out := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		summary.Total++
		switch record.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		}
		out = append(out, dto.NewAttendanceResponse(record))
	}
	if summary.Total > 0 {
		summary.PresentRate = (float64(summary.Present+summary.Late) / float64(summary.Total)) * 100
	}
	return out, summary, nil
}

func (s *attendanceService) requireCourseOwner(ctx context.Context, actor ActivityActor, courseID uint) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if course.CreatorID != actor.ID {
		return ErrForbidden
	}
	return nil
}
