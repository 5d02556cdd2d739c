package rcrclient

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
)

// StudentDashboard is the client-side join of the student's read endpoints.
type StudentDashboard struct {
	Courses       []dto.CourseResponse
	Assignments   map[uint][]dto.AssignmentResponse
	Attendance    dto.AttendanceSummary
	LiveClasses   []dto.LiveClassResponse
	Grades        []dto.GradeResponse
	Notifications []dto.NotificationResponse
}

type attendancePayload struct {
	Records []dto.AttendanceResponse `json:"records"`
	Summary dto.AttendanceSummary    `json:"summary"`
}

// FetchStudentDashboard issues the dashboard reads in parallel and joins
// them. One failed read fails the whole aggregate; the caller retries by
// calling again.
func (c *Client) FetchStudentDashboard(ctx context.Context) (StudentDashboard, error) {
	var dashboard StudentDashboard

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return c.Get(groupCtx, "/api/enrollment/my", &dashboard.Courses)
	})
	group.Go(func() error {
		var payload attendancePayload
		if err := c.Get(groupCtx, "/api/attendance/my", &payload); err != nil {
			return err
		}
		dashboard.Attendance = payload.Summary
		return nil
	})
	group.Go(func() error {
		return c.Get(groupCtx, "/api/liveclass/my", &dashboard.LiveClasses)
	})
	group.Go(func() error {
		return c.Get(groupCtx, "/api/grades/my", &dashboard.Grades)
	})
	group.Go(func() error {
		return c.Get(groupCtx, "/api/notifications/my", &dashboard.Notifications)
	})

	if err := group.Wait(); err != nil {
		return StudentDashboard{}, err
	}

	// Per-course assignment lists fan out from the enrollment read, so they
	// run as a second parallel wave.
	dashboard.Assignments = make(map[uint][]dto.AssignmentResponse, len(dashboard.Courses))
	assignmentGroup, assignmentCtx := errgroup.WithContext(ctx)
	results := make([][]dto.AssignmentResponse, len(dashboard.Courses))
	for i, course := range dashboard.Courses {
		i, course := i, course
		assignmentGroup.Go(func() error {
			return c.Get(assignmentCtx, assignmentPath(course.ID), &results[i])
		})
	}
	if err := assignmentGroup.Wait(); err != nil {
		return StudentDashboard{}, err
	}
	for i, course := range dashboard.Courses {
		dashboard.Assignments[course.ID] = results[i]
	}

	return dashboard, nil
}

// FetchAdminPortal polls the three admin endpoints in parallel.
func (c *Client) FetchAdminPortal(ctx context.Context) (dto.PortalStatsResponse, []dto.ActivityEntry, []dto.ProblemReport, error) {
	var (
		stats      dto.PortalStatsResponse
		activities []dto.ActivityEntry
		problems   []dto.ProblemReport
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return c.Get(groupCtx, "/api/admin/portal/stats", &stats) })
	group.Go(func() error { return c.Get(groupCtx, "/api/admin/portal/activities", &activities) })
	group.Go(func() error { return c.Get(groupCtx, "/api/admin/portal/problems", &problems) })

	if err := group.Wait(); err != nil {
		return dto.PortalStatsResponse{}, nil, nil, err
	}
	return stats, activities, problems, nil
}

func assignmentPath(courseID uint) string {
	return "/api/assignments/course/" + strconv.FormatUint(uint64(courseID), 10)
}
