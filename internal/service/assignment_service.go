package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// SubmissionUpload carries the student's answer file.
type SubmissionUpload struct {
	Filename string
	Reader   io.Reader
	Remarks  string
}

// AssignmentService manages coursework and submissions. Submitting twice is
// answered with the existing record instead of an error or a duplicate.
type AssignmentService interface {
	Create(ctx context.Context, actor ActivityActor, req dto.AssignmentCreateRequest, file *SubmissionUpload) (dto.AssignmentResponse, error)
	ListByCourse(ctx context.Context, courseID uint) ([]dto.AssignmentResponse, error)
	Delete(ctx context.Context, actor ActivityActor, id uint) error
	Submit(ctx context.Context, studentID, assignmentID uint, upload SubmissionUpload) (dto.SubmissionResponse, error)
	MySubmission(ctx context.Context, studentID, assignmentID uint) (dto.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, actor ActivityActor, assignmentID uint) ([]dto.SubmissionResponse, error)
	Grade(ctx context.Context, actor ActivityActor, submissionID uint, req dto.GradeSubmissionRequest) (dto.SubmissionResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	courses     repository.CourseRepository
	uploader    FileUploader
	events      EventPublisher
	validate    *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds the assignment service.
func NewAssignmentService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	courses repository.CourseRepository,
	uploader FileUploader,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		courses:     courses,
		uploader:    uploader,
		events:      events,
		validate:    validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, actor ActivityActor, req dto.AssignmentCreateRequest, file *SubmissionUpload) (dto.AssignmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, fmt.Errorf("invalid due date: %w", err)
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	if actor.Role != models.RoleAdmin && course.CreatorID != actor.ID {
		return dto.AssignmentResponse{}, ErrForbidden
	}

	assignment := models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		MaxMarks:    req.MaxMarks,
	}

	if file != nil && s.uploader != nil {
		url, err := s.uploader.Upload(ctx, file.Filename, file.Reader)
		if err != nil {
			return dto.AssignmentResponse{}, fmt.Errorf("failed to upload assignment file: %w", err)
		}
		assignment.FileURL = url
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("course_id", assignment.CourseID).Msg("assignment created")
	s.publishAssignmentEvent(ctx, actor, "assignment.created", assignment.ID, map[string]interface{}{
		"title":     assignment.Title,
		"course_id": assignment.CourseID,
	})

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, dto.NewAssignmentResponse(assignment))
	}
	return out, nil
}

func (s *assignmentService) Delete(ctx context.Context, actor ActivityActor, id uint) error {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.requireCourseOwner(ctx, actor, assignment.CourseID); err != nil {
		return err
	}
	return s.assignments.Delete(ctx, id)
}

func (s *assignmentService) Submit(ctx context.Context, studentID, assignmentID uint, upload SubmissionUpload) (dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	courseIDs, err := s.courses.EnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if !containsID(courseIDs, assignment.CourseID) {
		return dto.SubmissionResponse{}, ErrNotEnrolled
	}

	if existing, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID); err == nil {
		return dto.NewSubmissionResponse(existing, true), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Remarks:      upload.Remarks,
		Status:       models.SubmissionStatusSubmitted,
	}

	if upload.Reader != nil && s.uploader != nil {
		url, err := s.uploader.Upload(ctx, upload.Filename, upload.Reader)
		if err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to upload submission file: %w", err)
		}
		submission.FileURL = url
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Uint("assignment_id", assignmentID).Msg("submission received")
	s.publishAssignmentEvent(ctx, ActivityActor{ID: studentID, Role: models.RoleStudent}, "assignment.submitted", assignmentID, map[string]interface{}{
		"submission_id": submission.ID,
	})

	return dto.NewSubmissionResponse(submission, false), nil
}

func (s *assignmentService) MySubmission(ctx context.Context, studentID, assignmentID uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	return dto.NewSubmissionResponse(submission, false), nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, actor ActivityActor, assignmentID uint) ([]dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.requireCourseOwner(ctx, actor, assignment.CourseID); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &assignmentID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		out = append(out, dto.NewSubmissionResponse(submission, false))
	}
	return out, nil
}

func (s *assignmentService) Grade(ctx context.Context, actor ActivityActor, submissionID uint, req dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := s.requireCourseOwner(ctx, actor, assignment.CourseID); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if assignment.MaxMarks > 0 && req.Grade > assignment.MaxMarks {
		return dto.SubmissionResponse{}, fmt.Errorf("grade %.1f exceeds max marks %.1f", req.Grade, assignment.MaxMarks)
	}

	gradedAt := s.now()
	grade := req.Grade
	submission.Grade = &grade
	submission.Feedback = req.Feedback
	submission.Status = models.SubmissionStatusGraded
	submission.GradedAt = &gradedAt

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Float64("grade", grade).Msg("submission graded")
	s.publishAssignmentEvent(ctx, actor, "assignment.graded", submission.AssignmentID, map[string]interface{}{
		"submission_id": submission.ID,
		"grade":         grade,
	})

	return dto.NewSubmissionResponse(submission, false), nil
}

func (s *assignmentService) requireCourseOwner(ctx context.Context, actor ActivityActor, courseID uint) error {
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

func (s *assignmentService) publishAssignmentEvent(ctx context.Context, actor ActivityActor, action string, entityID uint, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	id := entityID
	s.events.PublishActivity(ctx, ActivityEvent{
		Actor:      actor,
		Action:     action,
		EntityType: "assignment",
		EntityID:   &id,
		Metadata:   metadata,
		OccurredAt: s.now(),
	})
}
