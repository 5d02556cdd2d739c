package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"gorm.io/datatypes"
)

type activityLogRepoStub struct {
	entries []models.ActivityLog
}

func (r *activityLogRepoStub) ListRecent(_ context.Context, limit int) ([]models.ActivityLog, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]models.ActivityLog, limit)
	copy(out, r.entries[:limit])
	return out, nil
}

func (r *activityLogRepoStub) Create(_ context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *activityLogRepoStub) CountSince(_ context.Context, since time.Time) (int64, error) {
	var total int64
	for _, entry := range r.entries {
		if entry.CreatedAt.After(since) {
			total++
		}
	}
	return total, nil
}

func newAdminPortalFixture(t *testing.T, cache *redis.Client) (AdminPortalService, *userRepoStub, *liveClassRepoStub, *activityLogRepoStub) {
	t.Helper()

	users := newUserRepoStub()
	classes := newLiveClassRepoStub()
	activities := &activityLogRepoStub{}

	deps := AdminPortalDeps{
		Users:       users,
		Courses:     newCourseRepoStub(),
		Assignments: &assignmentRepoStub{},
		Submissions: &submissionRepoStub{},
		LiveClasses: classes,
		Activities:  activities,
	}
	svc := NewAdminPortalService(deps, cache, time.Minute, testLogger())
	return svc, users, classes, activities
}

func TestAdminPortalStats(t *testing.T) {
	svc, users, classes, activities := newAdminPortalFixture(t, nil)

	for _, role := range []string{models.RoleStudent, models.RoleStudent, models.RoleEducator, models.RoleAdmin} {
		require.NoError(t, users.Create(context.Background(), &models.User{Role: role}))
	}
	require.NoError(t, classes.Create(context.Background(), &models.LiveClass{CourseID: 1, Status: models.LiveClassLive}))
	require.NoError(t, classes.Create(context.Background(), &models.LiveClass{CourseID: 1, Status: models.LiveClassScheduled}))
	activities.entries = []models.ActivityLog{
		{ID: 1, Action: "liveclass.created", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: 2, Action: "liveclass.joined", CreatedAt: time.Now().Add(-48 * time.Hour)},
	}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.TotalUsers)
	require.Equal(t, int64(2), stats.UsersByRole[models.RoleStudent])
	require.Equal(t, int64(1), stats.LiveClassesByStat[models.LiveClassLive])
	require.Equal(t, int64(1), stats.ActivityLastDay)
	require.False(t, stats.CacheHit)
}

func TestAdminPortalStatsServedFromCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	svc, users, _, _ := newAdminPortalFixture(t, cache)
	require.NoError(t, users.Create(context.Background(), &models.User{Role: models.RoleStudent}))

	first, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	// A second user appears, but the poll is served from the warm cache.
	require.NoError(t, users.Create(context.Background(), &models.User{Role: models.RoleStudent}))
	second, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, int64(1), second.TotalUsers)
}

func TestAdminPortalRefresherStopsOnCancel(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	svc, _, _, _ := newAdminPortalFixture(t, cache)

	ctx, cancel := context.WithCancel(context.Background())
	svc.StartRefresher(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return server.Exists("admin:portal:stats")
	}, time.Second, 5*time.Millisecond, "refresher should prime the cache")

	cancel()
	time.Sleep(30 * time.Millisecond)
	server.Del("admin:portal:stats")
	time.Sleep(50 * time.Millisecond)
	require.False(t, server.Exists("admin:portal:stats"), "refresher must stop re-priming after cancellation")
}

func TestAdminPortalProblemsSurfaceStuckClasses(t *testing.T) {
	svc, _, classes, _ := newAdminPortalFixture(t, nil)

	require.NoError(t, classes.Create(context.Background(), &models.LiveClass{
		CourseID:    1,
		Status:      models.LiveClassLive,
		ScheduledAt: time.Now().Add(-3 * time.Hour),
		Duration:    60,
	}))

	problems, err := svc.GetProblems(context.Background())
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Equal(t, "stale_live_classes", problems[0].Kind)
	require.Equal(t, int64(1), problems[0].Count)
}

func TestAdminPortalActivityFeed(t *testing.T) {
	svc, _, _, activities := newAdminPortalFixture(t, nil)
	activities.entries = []models.ActivityLog{
		{ID: 1, ActorID: 7, ActorRole: models.RoleEducator, Action: "liveclass.created",
			Metadata: datatypes.JSONMap{"title": "Thermodynamics"}, CreatedAt: time.Now()},
	}

	entries, err := svc.GetActivities(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "liveclass.created", entries[0].Action)
	require.Equal(t, "Thermodynamics", entries[0].Metadata["title"])
}
