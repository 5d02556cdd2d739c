package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

type assignmentRepoStub struct {
	items   []models.Assignment
	listErr error
}

func (r *assignmentRepoStub) ListByCourse(_ context.Context, courseID uint) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, item := range r.items {
		if item.CourseID == courseID {
			out = append(out, item)
		}
	}
	return out, r.listErr
}

func (r *assignmentRepoStub) ListByCourses(_ context.Context, courseIDs []uint) ([]models.Assignment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Assignment
	for _, item := range r.items {
		if containsID(courseIDs, item.CourseID) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *assignmentRepoStub) GetByID(_ context.Context, id uint) (models.Assignment, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Assignment{}, gorm.ErrRecordNotFound
}

func (r *assignmentRepoStub) Create(_ context.Context, assignment *models.Assignment) error {
	assignment.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *assignment)
	return nil
}

func (r *assignmentRepoStub) Update(_ context.Context, assignment *models.Assignment) error {
	for i, item := range r.items {
		if item.ID == assignment.ID {
			r.items[i] = *assignment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *assignmentRepoStub) Delete(_ context.Context, id uint) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *assignmentRepoStub) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type submissionRepoStub struct {
	items []models.Submission
}

func (r *submissionRepoStub) List(_ context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	var out []models.Submission
	for _, item := range r.items {
		if filter.StudentID != nil && item.StudentID != *filter.StudentID {
			continue
		}
		if filter.AssignmentID != nil && item.AssignmentID != *filter.AssignmentID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *submissionRepoStub) GetByID(_ context.Context, id uint) (models.Submission, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (r *submissionRepoStub) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID uint) (models.Submission, error) {
	for _, item := range r.items {
		if item.AssignmentID == assignmentID && item.StudentID == studentID {
			return item, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (r *submissionRepoStub) Create(_ context.Context, submission *models.Submission) error {
	submission.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *submission)
	return nil
}

func (r *submissionRepoStub) Update(_ context.Context, submission *models.Submission) error {
	for i, item := range r.items {
		if item.ID == submission.ID {
			r.items[i] = *submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *submissionRepoStub) CountPendingGrading(context.Context) (int64, error) {
	var total int64
	for _, item := range r.items {
		if item.Status == models.SubmissionStatusSubmitted {
			total++
		}
	}
	return total, nil
}

type attendanceRepoStub struct {
	items []models.AttendanceRecord
}

func (r *attendanceRepoStub) ListByStudent(_ context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, item := range r.items {
		if item.StudentID == studentID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *attendanceRepoStub) ListByCourseAndDate(_ context.Context, courseID uint, date time.Time) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, item := range r.items {
		if item.CourseID == courseID && item.Date.Equal(date) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *attendanceRepoStub) UpsertBatch(_ context.Context, records []models.AttendanceRecord) error {
	r.items = append(r.items, records...)
	return nil
}

type gradeRepoStub struct {
	items []models.Grade
}

func (r *gradeRepoStub) ListByStudent(_ context.Context, studentID uint) ([]models.Grade, error) {
	var out []models.Grade
	for _, item := range r.items {
		if item.StudentID == studentID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *gradeRepoStub) ListByCourse(_ context.Context, courseID uint) ([]models.Grade, error) {
	var out []models.Grade
	for _, item := range r.items {
		if item.CourseID == courseID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *gradeRepoStub) Create(_ context.Context, grade *models.Grade) error {
	grade.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *grade)
	return nil
}

func (r *gradeRepoStub) Update(_ context.Context, grade *models.Grade) error {
	for i, item := range r.items {
		if item.ID == grade.ID {
			r.items[i] = *grade
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *gradeRepoStub) Delete(_ context.Context, id uint) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type notificationRepoStub struct {
	items []models.Notification
}

func (r *notificationRepoStub) ListByUser(_ context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	var out []models.Notification
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *notificationRepoStub) GetByID(_ context.Context, id uint) (models.Notification, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

func (r *notificationRepoStub) Create(_ context.Context, notification *models.Notification) error {
	notification.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *notification)
	return nil
}

func (r *notificationRepoStub) CreateBatch(_ context.Context, notifications []models.Notification) error {
	for i := range notifications {
		notifications[i].ID = uint(len(r.items) + 1)
		r.items = append(r.items, notifications[i])
	}
	return nil
}

func (r *notificationRepoStub) MarkRead(_ context.Context, id, userID uint) (models.Notification, error) {
	for i, item := range r.items {
		if item.ID == id && item.UserID == userID {
			r.items[i].Read = true
			return r.items[i], nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

func newDashboardFixture(t *testing.T, cache *redis.Client) (StudentDashboardService, *courseRepoStub, *assignmentRepoStub, *submissionRepoStub) {
	t.Helper()

	courses := newCourseRepoStub()
	assignments := &assignmentRepoStub{}
	submissions := &submissionRepoStub{}

	deps := StudentDashboardDeps{
		Courses:       courses,
		Assignments:   assignments,
		Submissions:   submissions,
		Attendance:    &attendanceRepoStub{},
		Grades:        &gradeRepoStub{},
		Notifications: &notificationRepoStub{},
		LiveClasses:   newLiveClassRepoStub(),
	}

	svc := NewStudentDashboardService(deps, cache, time.Minute, testLogger())
	return svc, courses, assignments, submissions
}

func TestStudentDashboardAggregates(t *testing.T) {
	svc, courses, assignments, submissions := newDashboardFixture(t, nil)

	studentID := uint(42)
	courses.enrollments[studentID] = []uint{10}

	now := time.Now()
	assignments.items = []models.Assignment{
		{ID: 1, CourseID: 10, Title: "Stoichiometry", DueDate: now.Add(24 * time.Hour)},
		{ID: 2, CourseID: 10, Title: "Equilibrium", DueDate: now.Add(-24 * time.Hour)},
		{ID: 3, CourseID: 99, Title: "Not Enrolled", DueDate: now},
	}

	grade := 85.0
	submissions.items = []models.Submission{
		{ID: 1, AssignmentID: 1, StudentID: studentID, Status: models.SubmissionStatusGraded, Grade: &grade},
	}

	resp, err := svc.GetDashboard(context.Background(), studentID)
	require.NoError(t, err)

	require.Equal(t, 2, resp.Summary.TotalAssignments, "assignments outside enrolled courses are excluded")
	require.Equal(t, 1, resp.Summary.Graded)
	require.Equal(t, 1, resp.Summary.Overdue)
	require.InDelta(t, 85.0, resp.Summary.AverageGrade, 0.001)
	require.InDelta(t, 50.0, resp.Summary.CompletionRate, 0.001)
}

func TestStudentDashboardSingleFailureFailsAggregate(t *testing.T) {
	svc, courses, assignments, _ := newDashboardFixture(t, nil)

	studentID := uint(42)
	courses.enrollments[studentID] = []uint{10}
	assignments.listErr = errors.New("backend unavailable")

	_, err := svc.GetDashboard(context.Background(), studentID)
	require.Error(t, err, "one failed component read must fail the whole aggregate")
}

func TestStudentDashboardCacheRoundTrip(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	svc, courses, assignments, _ := newDashboardFixture(t, cache)

	studentID := uint(42)
	courses.enrollments[studentID] = []uint{10}
	assignments.items = []models.Assignment{{ID: 1, CourseID: 10, Title: "Gas Laws", DueDate: time.Now().Add(time.Hour)}}

	first, err := svc.GetDashboard(context.Background(), studentID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Summary.TotalAssignments)

	// Underlying data changes, but the cached aggregate is served.
	assignments.items = nil
	cached, err := svc.GetDashboard(context.Background(), studentID)
	require.NoError(t, err)
	require.Equal(t, 1, cached.Summary.TotalAssignments)
}
