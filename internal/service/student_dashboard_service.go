package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// StudentDashboardService aggregates the independent reads the student
// dashboard renders. The component fetches run in parallel and are joined
// once all complete; a single failure fails the whole aggregate rather than
// serving a partially consistent view.
type StudentDashboardService interface {
	GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type studentDashboardService struct {
	courses       repository.CourseRepository
	assignments   repository.AssignmentRepository
	submissions   repository.SubmissionRepository
	attendance    repository.AttendanceRepository
	grades        repository.GradeRepository
	notifications repository.NotificationRepository
	classes       repository.LiveClassRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

// StudentDashboardDeps groups the repositories the aggregator reads from.
type StudentDashboardDeps struct {
	Courses       repository.CourseRepository
	Assignments   repository.AssignmentRepository
	Submissions   repository.SubmissionRepository
	Attendance    repository.AttendanceRepository
	Grades        repository.GradeRepository
	Notifications repository.NotificationRepository
	LiveClasses   repository.LiveClassRepository
}

// NewStudentDashboardService builds the dashboard aggregator.
func NewStudentDashboardService(deps StudentDashboardDeps, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		courses:       deps.Courses,
		assignments:   deps.Assignments,
		submissions:   deps.Submissions,
		attendance:    deps.Attendance,
		grades:        deps.Grades,
		notifications: deps.Notifications,
		classes:       deps.LiveClasses,
		cache:         cache,
		cacheTTL:      ttl,
		logger:        logger.With().Str("component", "student_dashboard_service").Logger(),
		now:           time.Now,
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	courseIDs, err := s.courses.EnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	var (
		assignments   []models.Assignment
		submissions   []models.Submission
		attendance    []models.AttendanceRecord
		grades        []models.Grade
		notifications []models.Notification
		classes       []models.LiveClass
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		assignments, err = s.assignments.ListByCourses(groupCtx, courseIDs)
		return err
	})
	group.Go(func() error {
		var err error
		submissions, err = s.submissions.List(groupCtx, repository.SubmissionFilter{StudentID: &studentID})
		return err
	})
	group.Go(func() error {
		var err error
		attendance, err = s.attendance.ListByStudent(groupCtx, studentID)
		return err
	})
	group.Go(func() error {
		var err error
		grades, err = s.grades.ListByStudent(groupCtx, studentID)
		return err
	})
	group.Go(func() error {
		var err error
		notifications, err = s.notifications.ListByUser(groupCtx, studentID, 20, 0)
		return err
	})
	group.Go(func() error {
		if len(courseIDs) == 0 {
			classes = nil
			return nil
		}
		var err error
		classes, err = s.classes.List(groupCtx, repository.LiveClassFilter{CourseIDs: courseIDs})
		return err
	})

	if err := group.Wait(); err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := s.buildResponse(assignments, submissions, attendance, grades, notifications, classes)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *studentDashboardService) buildResponse(
	assignments []models.Assignment,
	submissions []models.Submission,
	attendance []models.AttendanceRecord,
	grades []models.Grade,
	notifications []models.Notification,
	classes []models.LiveClass,
) dto.StudentDashboardResponse {
	now := s.now()

	submissionByAssignment := map[uint]models.Submission{}
	for _, submission := range submissions {
		if _, exists := submissionByAssignment[submission.AssignmentID]; !exists {
			submissionByAssignment[submission.AssignmentID] = submission
		}
	}

	summary := dto.ProgressSummary{}
	progress := make([]dto.AssignmentProgress, 0, len(assignments))
	var gradeTotal float64
	var gradedCount int

	for _, assignment := range assignments {
		summary.TotalAssignments++
		submission, submitted := submissionByAssignment[assignment.ID]
		overdue := assignment.IsPastDue(now)

		item := dto.AssignmentProgress{
			AssignmentID: assignment.ID,
			CourseID:     assignment.CourseID,
			Title:        assignment.Title,
			DueDate:      assignment.DueDate,
			Status:       "pending",
		}

		if submitted {
			submittedAt := submission.CreatedAt
			item.SubmissionID = &submission.ID
			item.SubmittedAt = &submittedAt
			item.Feedback = submission.Feedback
			summary.Submitted++

			if submission.Status == models.SubmissionStatusGraded {
				item.Status = models.SubmissionStatusGraded
				item.Grade = submission.Grade
				summary.Graded++
				if submission.Grade != nil {
					gradeTotal += *submission.Grade
					gradedCount++
				}
			} else {
				item.Status = models.SubmissionStatusSubmitted
				summary.Pending++
			}
		} else {
			summary.Pending++
			if overdue {
				summary.Overdue++
			}
		}

		item.Overdue = overdue && item.Status != models.SubmissionStatusGraded
		progress = append(progress, item)
	}

	if gradedCount > 0 {
		summary.AverageGrade = gradeTotal / float64(gradedCount)
	}
	if summary.TotalAssignments > 0 {
		summary.CompletionRate = (float64(summary.Graded) / float64(summary.TotalAssignments)) * 100
	}

	attendanceSummary := dto.AttendanceSummary{}
	for _, record := range attendance {
		attendanceSummary.Total++
		switch record.Status {
		case models.AttendancePresent:
			attendanceSummary.Present++
		case models.AttendanceAbsent:
			attendanceSummary.Absent++
		case models.AttendanceLate:
			attendanceSummary.Late++
		}
	}
	if attendanceSummary.Total > 0 {
		attendanceSummary.PresentRate = (float64(attendanceSummary.Present+attendanceSummary.Late) / float64(attendanceSummary.Total)) * 100
	}

	gradeResponses := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		gradeResponses = append(gradeResponses, dto.NewGradeResponse(grade))
	}

	notificationResponses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		notificationResponses = append(notificationResponses, dto.NewNotificationResponse(notification))
	}

	classResponses := make([]dto.LiveClassResponse, 0, len(classes))
	for _, class := range classes {
		classResponses = append(classResponses, dto.NewLiveClassResponse(class, now))
	}

	return dto.StudentDashboardResponse{
		Summary:       summary,
		Assignments:   progress,
		Attendance:    attendanceSummary,
		LiveClasses:   classResponses,
		Grades:        gradeResponses,
		Notifications: notificationResponses,
		GeneratedAt:   now.UTC(),
	}
}
