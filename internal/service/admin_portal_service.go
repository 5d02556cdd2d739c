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

const adminStatsCacheKey = "admin:portal:stats"

// AdminPortalService serves the admin dashboard: headline stats, the
// recent-activity feed, and operational problem reports. Stats are cached
// in Redis and re-primed by a background refresher so that polling admin
// clients never fan out to the database on every request.
type AdminPortalService interface {
	GetStats(ctx context.Context) (dto.PortalStatsResponse, error)
	GetActivities(ctx context.Context, limit int) ([]dto.ActivityEntry, error)
	GetProblems(ctx context.Context) ([]dto.ProblemReport, error)
	StartRefresher(ctx context.Context, interval time.Duration)
}

// AdminPortalDeps groups the repositories the portal reads from.
type AdminPortalDeps struct {
	Users       repository.UserRepository
	Courses     repository.CourseRepository
	Assignments repository.AssignmentRepository
	Submissions repository.SubmissionRepository
	LiveClasses repository.LiveClassRepository
	Activities  repository.ActivityLogRepository
}

type adminPortalService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	classes     repository.LiveClassRepository
	activities  repository.ActivityLogRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAdminPortalService builds the admin portal aggregator.
func NewAdminPortalService(deps AdminPortalDeps, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminPortalService {
	return &adminPortalService{
		users:       deps.Users,
		courses:     deps.Courses,
		assignments: deps.Assignments,
		submissions: deps.Submissions,
		classes:     deps.LiveClasses,
		activities:  deps.Activities,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "admin_portal_service").Logger(),
		now:         time.Now,
	}
}

func (s *adminPortalService) GetStats(ctx context.Context) (dto.PortalStatsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, adminStatsCacheKey).Result(); err == nil {
			var response dto.PortalStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read admin stats cache")
		}
	}
	return s.computeStats(ctx)
}

// StartRefresher re-primes the stats cache on an interval until ctx is
// cancelled. It runs in its own goroutine.
func (s *adminPortalService) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		s.logger.Info().Dur("interval", interval).Msg("admin stats refresher started")
		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("admin stats refresher stopped")
				return
			case <-ticker.C:
				if _, err := s.computeStats(ctx); err != nil {
					s.logger.Warn().Err(err).Msg("admin stats refresh failed")
				}
			}
		}
	}()
}

func (s *adminPortalService) computeStats(ctx context.Context) (dto.PortalStatsResponse, error) {
	var (
		usersByRole    map[string]int64
		totalCourses   int64
		totalAssign    int64
		pendingGrading int64
		classesByStat  map[string]int64
		activityCount  int64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		usersByRole, err = s.users.CountByRole(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		totalCourses, err = s.courses.Count(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		totalAssign, err = s.assignments.Count(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		pendingGrading, err = s.submissions.CountPendingGrading(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		classesByStat, err = s.classes.CountByStatus(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		activityCount, err = s.activities.CountSince(groupCtx, s.now().Add(-24*time.Hour))
		return err
	})

	if err := group.Wait(); err != nil {
		return dto.PortalStatsResponse{}, err
	}

	var totalUsers int64
	for _, count := range usersByRole {
		totalUsers += count
	}

	response := dto.PortalStatsResponse{
		TotalUsers:        totalUsers,
		UsersByRole:       usersByRole,
		TotalCourses:      totalCourses,
		TotalAssignments:  totalAssign,
		PendingGrading:    pendingGrading,
		LiveClassesByStat: classesByStat,
		ActivityLastDay:   activityCount,
		GeneratedAt:       s.now().UTC(),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, adminStatsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store admin stats cache")
			}
		}
	}

	return response, nil
}

func (s *adminPortalService) GetActivities(ctx context.Context, limit int) ([]dto.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	logs, err := s.activities.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.ActivityEntry, 0, len(logs))
	for _, entry := range logs {
		entries = append(entries, dto.NewActivityEntry(entry))
	}
	return entries, nil
}

func (s *adminPortalService) GetProblems(ctx context.Context) ([]dto.ProblemReport, error) {
	problems := []dto.ProblemReport{}

	pending, err := s.submissions.CountPendingGrading(ctx)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		severity := "info"
		if pending >= 25 {
			severity = "warning"
		}
		problems = append(problems, dto.ProblemReport{
			Kind:     "grading_backlog",
			Severity: severity,
			Message:  fmt.Sprintf("%d submissions waiting to be graded", pending),
			Count:    pending,
		})
	}

	stuck, err := s.stuckLiveClasses(ctx)
	if err != nil {
		return nil, err
	}
	if stuck > 0 {
		problems = append(problems, dto.ProblemReport{
			Kind:     "stale_live_classes",
			Severity: "warning",
			Message:  fmt.Sprintf("%d live classes have run past their scheduled end", stuck),
			Count:    stuck,
		})
	}

	return problems, nil
}

// stuckLiveClasses counts classes still marked live whose scheduled window
// has elapsed, meaning the educator likely forgot to end them.
func (s *adminPortalService) stuckLiveClasses(ctx context.Context) (int64, error) {
	classes, err := s.classes.List(ctx, repository.LiveClassFilter{Status: models.LiveClassLive})
	if err != nil {
		return 0, err
	}
	now := s.now()
	var stuck int64
	for _, class := range classes {
		end := class.ScheduledAt.Add(time.Duration(class.Duration) * time.Minute)
		if now.After(end) {
			stuck++
		}
	}
	return stuck, nil
}
