package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// CourseService manages the course catalogue and enrollments. Students see
// published courses only; educators additionally see their own drafts.
type CourseService interface {
	Create(ctx context.Context, actor ActivityActor, req dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, actor ActivityActor, id uint, req dto.CourseCreateRequest) (dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	ListVisible(ctx context.Context, actor ActivityActor, filter repository.CourseFilter) ([]dto.CourseResponse, error)
	Enroll(ctx context.Context, studentID, courseID uint) error
	MyCourses(ctx context.Context, studentID uint) ([]dto.CourseResponse, error)
}

type courseService struct {
	courses  repository.CourseRepository
	events   EventPublisher
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCourseService builds the course service.
func NewCourseService(
	courses repository.CourseRepository,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courses:  courses,
		events:   events,
		validate: validate,
		logger:   logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) Create(ctx context.Context, actor ActivityActor, req dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:       req.Title,
		SubTitle:    req.SubTitle,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Price:       req.Price,
		IsPublished: req.IsPublished,
		CreatorID:   actor.ID,
	}
	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Str("title", course.Title).Msg("course created")
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, actor ActivityActor, id uint, req dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrNotFound
		}
		return dto.CourseResponse{}, err
	}
	if actor.Role != models.RoleAdmin && course.CreatorID != actor.ID {
		return dto.CourseResponse{}, ErrForbidden
	}

	course.Title = req.Title
	course.SubTitle = req.SubTitle
	course.Description = req.Description
	course.Category = req.Category
	course.Level = req.Level
	course.Price = req.Price
	course.IsPublished = req.IsPublished

	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) ListVisible(ctx context.Context, actor ActivityActor, filter repository.CourseFilter) ([]dto.CourseResponse, error) {
	switch actor.Role {
	case models.RoleAdmin:
		// Admins see everything.
	case models.RoleEducator:
		filter.CreatorID = &actor.ID
	default:
		filter.OnlyVisible = true
	}

	courses, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.NewCourseResponse(course))
	}
	return out, nil
}

func (s *courseService) Enroll(ctx context.Context, studentID, courseID uint) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !course.IsPublished {
		return ErrNotFound
	}

	enrolled, err := s.courses.EnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return err
	}
	if containsID(enrolled, courseID) {
		return nil
	}

	if err := s.courses.Enroll(ctx, &models.Enrollment{UserID: studentID, CourseID: courseID}); err != nil {
		return err
	}

	s.logger.Info().Uint("course_id", courseID).Uint("student_id", studentID).Msg("student enrolled")
	if s.events != nil {
		id := courseID
		s.events.PublishActivity(ctx, ActivityEvent{
			Actor:      ActivityActor{ID: studentID, Role: models.RoleStudent},
			Action:     "course.enrolled",
			EntityType: "course",
			EntityID:   &id,
		})
	}
	return nil
}

func (s *courseService) MyCourses(ctx context.Context, studentID uint) ([]dto.CourseResponse, error) {
	courseIDs, err := s.courses.EnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseResponse, 0, len(courseIDs))
	for _, id := range courseIDs {
		course, err := s.courses.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, dto.NewCourseResponse(course))
	}
	return out, nil
}
