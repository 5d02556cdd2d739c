package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/HimanshuSagar02/RajChemReacor/internal/config"
	"github.com/HimanshuSagar02/RajChemReacor/internal/handler"
	"github.com/HimanshuSagar02/RajChemReacor/internal/middleware"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	CourseHandler       *handler.CourseHandler
	LiveClassHandler    *handler.LiveClassHandler
	AssignmentHandler   *handler.AssignmentHandler
	AttendanceHandler   *handler.AttendanceHandler
	GradeHandler        *handler.GradeHandler
	NotificationHandler *handler.NotificationHandler
	SharedNoteHandler   *handler.SharedNoteHandler
	DashboardHandler    *handler.DashboardHandler
	AdminPortalHandler  *handler.AdminPortalHandler
	AIHandler           *handler.AIHandler
	SessionMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	session := deps.SessionMiddleware
	if session == nil {
		session = func(c *fiber.Ctx) error { return c.Next() }
	}

	educatorOnly := middleware.RequireRole(models.RoleEducator, models.RoleAdmin)
	studentOnly := middleware.RequireRole(models.RoleStudent)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	user := api.Group("/user", session)
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(user)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.Register(user.Group("", educatorOnly))
	}

	if deps.CourseHandler != nil {
		course := api.Group("/course", session)
		deps.CourseHandler.Register(course)
		deps.CourseHandler.RegisterEducator(course.Group("", educatorOnly))
		deps.CourseHandler.RegisterStudent(api.Group("/enrollment", session, studentOnly))
	}

	if deps.LiveClassHandler != nil {
		liveClass := api.Group("/liveclass", session)
		deps.LiveClassHandler.RegisterEducator(liveClass.Group("", educatorOnly))
		deps.LiveClassHandler.RegisterStudent(liveClass.Group("", studentOnly))
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", session)
		deps.AssignmentHandler.Register(assignments)
		deps.AssignmentHandler.RegisterEducator(assignments.Group("", educatorOnly))
		deps.AssignmentHandler.RegisterStudent(assignments.Group("", studentOnly))
	}

	if deps.AttendanceHandler != nil {
		attendance := api.Group("/attendance", session)
		deps.AttendanceHandler.RegisterEducator(attendance.Group("", educatorOnly))
		deps.AttendanceHandler.RegisterStudent(attendance.Group("", studentOnly))
	}

	if deps.GradeHandler != nil {
		grades := api.Group("/grades", session)
		deps.GradeHandler.RegisterEducator(grades.Group("", educatorOnly))
		deps.GradeHandler.RegisterStudent(grades.Group("", studentOnly))
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", session)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.SharedNoteHandler != nil {
		notes := api.Group("/sharednotes", session)
		deps.SharedNoteHandler.Register(notes)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", session, studentOnly)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.AdminPortalHandler != nil {
		admin := api.Group("/admin/portal", session, adminOnly)
		deps.AdminPortalHandler.Register(admin)
	}

	if deps.AIHandler != nil {
		ai := api.Group("/ai", session)
		deps.AIHandler.Register(ai)
	}
}
