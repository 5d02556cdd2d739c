package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type liveClassRepoStub struct {
	classes map[uint]*models.LiveClass
	nextID  uint
}

func newLiveClassRepoStub() *liveClassRepoStub {
	return &liveClassRepoStub{classes: map[uint]*models.LiveClass{}, nextID: 1}
}

func (r *liveClassRepoStub) List(_ context.Context, filter repository.LiveClassFilter) ([]models.LiveClass, error) {
	var out []models.LiveClass
	for _, class := range r.classes {
		if filter.EducatorID != nil && class.EducatorID != *filter.EducatorID {
			continue
		}
		if filter.Status != "" && class.Status != filter.Status {
			continue
		}
		if len(filter.CourseIDs) > 0 && !containsID(filter.CourseIDs, class.CourseID) {
			continue
		}
		out = append(out, *class)
	}
	return out, nil
}

func (r *liveClassRepoStub) GetByID(_ context.Context, id uint) (models.LiveClass, error) {
	if class, ok := r.classes[id]; ok {
		return *class, nil
	}
	return models.LiveClass{}, gorm.ErrRecordNotFound
}

func (r *liveClassRepoStub) Create(_ context.Context, class *models.LiveClass) error {
	class.ID = r.nextID
	r.nextID++
	stored := *class
	r.classes[class.ID] = &stored
	return nil
}

func (r *liveClassRepoStub) Update(_ context.Context, class *models.LiveClass) error {
	if _, ok := r.classes[class.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *class
	r.classes[class.ID] = &stored
	return nil
}

func (r *liveClassRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := r.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.classes, id)
	return nil
}

func (r *liveClassRepoStub) AddParticipant(_ context.Context, participant *models.LiveClassParticipant) (bool, error) {
	class, ok := r.classes[participant.LiveClassID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	for _, existing := range class.Participants {
		if existing.UserID == participant.UserID {
			return false, nil
		}
	}
	class.Participants = append(class.Participants, *participant)
	return true, nil
}

func (r *liveClassRepoStub) CountByStatus(context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, class := range r.classes {
		counts[class.Status]++
	}
	return counts, nil
}

type courseRepoStub struct {
	courses     map[uint]models.Course
	enrollments map[uint][]uint // userID -> courseIDs
}

func newCourseRepoStub() *courseRepoStub {
	return &courseRepoStub{courses: map[uint]models.Course{}, enrollments: map[uint][]uint{}}
}

func (r *courseRepoStub) List(_ context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	var out []models.Course
	for _, course := range r.courses {
		if filter.OnlyVisible && !course.IsPublished {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(course.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, course)
	}
	return out, nil
}

func (r *courseRepoStub) GetByID(_ context.Context, id uint) (models.Course, error) {
	if course, ok := r.courses[id]; ok {
		return course, nil
	}
	return models.Course{}, gorm.ErrRecordNotFound
}

func (r *courseRepoStub) Create(_ context.Context, course *models.Course) error {
	r.courses[course.ID] = *course
	return nil
}

func (r *courseRepoStub) Update(_ context.Context, course *models.Course) error {
	r.courses[course.ID] = *course
	return nil
}

func (r *courseRepoStub) Delete(_ context.Context, id uint) error {
	delete(r.courses, id)
	return nil
}

func (r *courseRepoStub) Enroll(_ context.Context, enrollment *models.Enrollment) error {
	r.enrollments[enrollment.UserID] = append(r.enrollments[enrollment.UserID], enrollment.CourseID)
	return nil
}

func (r *courseRepoStub) EnrolledCourseIDs(_ context.Context, userID uint) ([]uint, error) {
	return r.enrollments[userID], nil
}

func (r *courseRepoStub) EnrolledStudentIDs(_ context.Context, courseID uint) ([]uint, error) {
	var out []uint
	for userID, courses := range r.enrollments {
		if containsID(courses, courseID) {
			out = append(out, userID)
		}
	}
	return out, nil
}

func (r *courseRepoStub) Count(context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

func newLiveClassFixture(t *testing.T) (LiveClassService, *liveClassRepoStub, *courseRepoStub) {
	t.Helper()

	classes := newLiveClassRepoStub()
	courses := newCourseRepoStub()
	courses.courses[10] = models.Course{ID: 10, Title: "Physical Chemistry", CreatorID: 1}

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewLiveClassService(classes, courses, validate, NewNoopEventPublisher(), testLogger())
	return svc, classes, courses
}

func educatorActor() ActivityActor {
	return ActivityActor{ID: 1, Role: models.RoleEducator}
}

func validCreateRequest() dto.LiveClassCreateRequest {
	return dto.LiveClassCreateRequest{
		Title:           "Reaction Mechanisms",
		CourseID:        10,
		Platform:        models.PlatformPortal,
		ScheduleType:    dto.ScheduleTypeScheduled,
		ScheduledAt:     time.Now().Add(2 * time.Hour).Format(time.RFC3339),
		Duration:        60,
		MaxParticipants: 100,
	}
}

func TestLiveClassCreateScheduled(t *testing.T) {
	svc, repo, _ := newLiveClassFixture(t)

	resp, err := svc.Create(context.Background(), educatorActor(), validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, models.LiveClassScheduled, resp.Status)
	require.Equal(t, dto.ScheduleTypeScheduled, resp.ScheduleType)

	stored := repo.classes[resp.ID]
	require.NotNil(t, stored)
	require.Nil(t, stored.StartedAt)
}

func TestLiveClassCreateStartNowGoesLiveImmediately(t *testing.T) {
	svc, repo, _ := newLiveClassFixture(t)

	req := validCreateRequest()
	req.ScheduleType = dto.ScheduleTypeStartNow
	req.ScheduledAt = ""

	resp, err := svc.Create(context.Background(), educatorActor(), req)
	require.NoError(t, err)
	require.Equal(t, models.LiveClassLive, resp.Status)
	require.NotNil(t, repo.classes[resp.ID].StartedAt)

	liveOnly, err := svc.ListForEducator(context.Background(), educatorActor(), models.LiveClassLive)
	require.NoError(t, err)
	require.Len(t, liveOnly, 1, "start-now class must be in the live-filtered list right after creation")
}

func TestLiveClassCreateExternalRequiresMeetingLink(t *testing.T) {
	svc, _, _ := newLiveClassFixture(t)

	req := validCreateRequest()
	req.Platform = models.PlatformZoom
	req.MeetingLink = ""

	_, err := svc.Create(context.Background(), educatorActor(), req)
	require.ErrorIs(t, err, ErrMeetingRequired)

	req.MeetingLink = "https://zoom.us/j/123456"
	_, err = svc.Create(context.Background(), educatorActor(), req)
	require.NoError(t, err)
}

func TestLiveClassStatusTransitionsOnlyForward(t *testing.T) {
	svc, repo, _ := newLiveClassFixture(t)
	actor := educatorActor()

	resp, err := svc.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)

	// scheduled -> live -> completed is the only forward chain.
	_, err = svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassLive)
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.EndedAt)
	require.NotEmpty(t, completed.RecordingURL, "portal class gets a recording reference on completion")

	// Terminal states admit nothing.
	_, err = svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassLive)
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.Equal(t, models.LiveClassCompleted, repo.classes[resp.ID].Status)
}

func TestLiveClassScheduledCanBeCancelled(t *testing.T) {
	svc, _, _ := newLiveClassFixture(t)
	actor := educatorActor()

	resp, err := svc.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)

	cancelled, err := svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassCancelled)
	require.NoError(t, err)
	require.Equal(t, models.LiveClassCancelled, cancelled.Status)

	_, err = svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassLive)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLiveClassJoinIdempotent(t *testing.T) {
	svc, _, courses := newLiveClassFixture(t)
	actor := educatorActor()

	req := validCreateRequest()
	req.ScheduleType = dto.ScheduleTypeStartNow
	resp, err := svc.Create(context.Background(), actor, req)
	require.NoError(t, err)

	studentID := uint(42)
	courses.enrollments[studentID] = []uint{10}

	first, err := svc.Join(context.Background(), studentID, resp.ID)
	require.NoError(t, err)
	require.False(t, first.AlreadyJoined)

	second, err := svc.Join(context.Background(), studentID, resp.ID)
	require.NoError(t, err)
	require.True(t, second.AlreadyJoined, "duplicate join reports already joined instead of erroring")
}

func TestLiveClassJoinRejectedWhenTerminal(t *testing.T) {
	svc, _, courses := newLiveClassFixture(t)
	actor := educatorActor()

	resp, err := svc.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), actor, resp.ID, models.LiveClassCancelled)
	require.NoError(t, err)

	courses.enrollments[42] = []uint{10}
	_, err = svc.Join(context.Background(), 42, resp.ID)
	require.ErrorIs(t, err, ErrNotJoinable)
}

func TestLiveClassJoinRequiresEnrollment(t *testing.T) {
	svc, _, _ := newLiveClassFixture(t)

	req := validCreateRequest()
	req.ScheduleType = dto.ScheduleTypeStartNow
	resp, err := svc.Create(context.Background(), educatorActor(), req)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), 99, resp.ID)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestLiveClassJoinRejectsFullRoster(t *testing.T) {
	svc, _, courses := newLiveClassFixture(t)

	req := validCreateRequest()
	req.ScheduleType = dto.ScheduleTypeStartNow
	req.MaxParticipants = 1
	resp, err := svc.Create(context.Background(), educatorActor(), req)
	require.NoError(t, err)

	courses.enrollments[1001] = []uint{10}
	courses.enrollments[1002] = []uint{10}

	_, err = svc.Join(context.Background(), 1001, resp.ID)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), 1002, resp.ID)
	require.ErrorIs(t, err, ErrClassFull)

	// The student already on the roster can still re-join.
	again, err := svc.Join(context.Background(), 1001, resp.ID)
	require.NoError(t, err)
	require.True(t, again.AlreadyJoined)
}

func TestLiveClassEditPrefillDerivesStartNowForPastSchedule(t *testing.T) {
	svc, repo, _ := newLiveClassFixture(t)
	actor := educatorActor()

	resp, err := svc.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	repo.classes[resp.ID].ScheduledAt = past

	list, err := svc.ListForEducator(context.Background(), actor, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, dto.ScheduleTypeStartNow, list[0].ScheduleType,
		"past scheduled time must pre-fill the edit form with startnow")
}

func TestLiveClassOwnershipEnforced(t *testing.T) {
	svc, _, _ := newLiveClassFixture(t)

	resp, err := svc.Create(context.Background(), educatorActor(), validCreateRequest())
	require.NoError(t, err)

	other := ActivityActor{ID: 2, Role: models.RoleEducator}
	_, err = svc.ChangeStatus(context.Background(), other, resp.ID, models.LiveClassLive)
	require.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), other, resp.ID)
	require.ErrorIs(t, err, ErrForbidden)

	// Admins may act on any educator's class.
	admin := ActivityActor{ID: 3, Role: models.RoleAdmin}
	_, err = svc.ChangeStatus(context.Background(), admin, resp.ID, models.LiveClassLive)
	require.NoError(t, err)
}

func TestLiveClassListForStudentFiltersByEnrollment(t *testing.T) {
	svc, _, courses := newLiveClassFixture(t)
	courses.courses[20] = models.Course{ID: 20, Title: "Inorganic Chemistry", CreatorID: 1}

	first := validCreateRequest()
	_, err := svc.Create(context.Background(), educatorActor(), first)
	require.NoError(t, err)

	second := validCreateRequest()
	second.CourseID = 20
	_, err = svc.Create(context.Background(), educatorActor(), second)
	require.NoError(t, err)

	courses.enrollments[42] = []uint{20}

	visible, err := svc.ListForStudent(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, uint(20), visible[0].CourseID)
}
