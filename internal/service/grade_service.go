package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// GradeService publishes and reports standalone course grades, separate from
// per-assignment submission grading.
type GradeService interface {
	Publish(ctx context.Context, actor ActivityActor, req dto.GradeCreateRequest) (dto.GradeResponse, error)
	ListByCourse(ctx context.Context, actor ActivityActor, courseID uint) ([]dto.GradeResponse, error)
	MyGrades(ctx context.Context, studentID uint) ([]dto.GradeResponse, error)
}

type gradeService struct {
	grades   repository.GradeRepository
	courses  repository.CourseRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewGradeService builds the grade service.
func NewGradeService(
	grades repository.GradeRepository,
	courses repository.CourseRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) GradeService {
	return &gradeService{
		grades:   grades,
		courses:  courses,
		validate: validate,
		logger:   logger.With().Str("component", "grade_service").Logger(),
	}
}

func (s *gradeService) Publish(ctx context.Context, actor ActivityActor, req dto.GradeCreateRequest) (dto.GradeResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.GradeResponse{}, err
	}
	if req.Score > req.MaxScore {
		return dto.GradeResponse{}, fmt.Errorf("score %.1f exceeds max score %.1f", req.Score, req.MaxScore)
	}

	if err := s.requireCourseOwner(ctx, actor, req.CourseID); err != nil {
		return dto.GradeResponse{}, err
	}

	enrolled, err := s.courses.EnrolledCourseIDs(ctx, req.StudentID)
	if err != nil {
		return dto.GradeResponse{}, err
	}
	if !containsID(enrolled, req.CourseID) {
		return dto.GradeResponse{}, ErrNotEnrolled
	}

	grade := models.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Title:     req.Title,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		GradedBy:  actor.ID,
	}
	if len(req.Breakdown) > 0 {
		payload, err := json.Marshal(req.Breakdown)
		if err != nil {
			return dto.GradeResponse{}, err
		}
		grade.Breakdown = datatypes.JSON(payload)
	}

	if err := s.grades.Create(ctx, &grade); err != nil {
		return dto.GradeResponse{}, err
	}
	s.logger.Info().Uint("grade_id", grade.ID).Uint("student_id", grade.StudentID).Msg("grade published")
	return dto.NewGradeResponse(grade), nil
}

func (s *gradeService) ListByCourse(ctx context.Context, actor ActivityActor, courseID uint) ([]dto.GradeResponse, error) {
	if err := s.requireCourseOwner(ctx, actor, courseID); err != nil {
		return nil, err
	}
	grades, err := s.grades.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		out = append(out, dto.NewGradeResponse(grade))
	}
	return out, nil
}

func (s *gradeService) MyGrades(ctx context.Context, studentID uint) ([]dto.GradeResponse, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		out = append(out, dto.NewGradeResponse(grade))
	}
	return out, nil
}

func (s *gradeService) requireCourseOwner(ctx context.Context, actor ActivityActor, courseID uint) error {
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
