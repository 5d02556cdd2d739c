package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/config"
	"github.com/HimanshuSagar02/RajChemReacor/internal/database"
	"github.com/HimanshuSagar02/RajChemReacor/internal/handler"
	"github.com/HimanshuSagar02/RajChemReacor/internal/middleware"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
	"github.com/HimanshuSagar02/RajChemReacor/internal/router"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/pkg/ai"
	cloud "github.com/HimanshuSagar02/RajChemReacor/pkg/cloudinary"
)

const activitySubject = "rcr.activity"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var events service.EventPublisher = service.NewNoopEventPublisher()
	var recorder *service.ActivityRecorder
	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, activity events disabled")
	} else {
		defer natsConn.Close()
		events = service.NewNATSEventPublisher(natsConn, activitySubject, logger)
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	var queryReader ai.QueryReader
	if cfg.OpenAIAPIKey != "" {
		reader, err := ai.NewOpenAIQueryReader(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai client: %v", err)
		}
		queryReader = reader
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	liveClassRepo := repository.NewLiveClassRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	sharedNoteRepo := repository.NewSharedNoteRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	authService := service.NewAuthService(userRepo, service.NewGoogleTokenVerifier(cfg.GoogleClientID), validate, cfg.JWTSecret, cfg.SessionTTL, logger)
	userService := service.NewUserService(userRepo, logger)
	courseService := service.NewCourseService(courseRepo, events, validate, logger)
	liveClassService := service.NewLiveClassService(liveClassRepo, courseRepo, validate, events, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, courseRepo, uploader, events, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, courseRepo, validate, logger)
	gradeService := service.NewGradeService(gradeRepo, courseRepo, validate, logger)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, validate, logger)
	sharedNoteService := service.NewSharedNoteService(sharedNoteRepo, uploader, validate, logger)
	dashboardService := service.NewStudentDashboardService(service.StudentDashboardDeps{
		Courses:       courseRepo,
		Assignments:   assignmentRepo,
		Submissions:   submissionRepo,
		Attendance:    attendanceRepo,
		Grades:        gradeRepo,
		Notifications: notificationRepo,
		LiveClasses:   liveClassRepo,
	}, redisClient, cfg.DashboardCacheTTL, logger)
	adminPortalService := service.NewAdminPortalService(service.AdminPortalDeps{
		Users:       userRepo,
		Courses:     courseRepo,
		Assignments: assignmentRepo,
		Submissions: submissionRepo,
		LiveClasses: liveClassRepo,
		Activities:  activityRepo,
	}, redisClient, cfg.AdminStatsTTL, logger)
	aiSearchService := service.NewAISearchService(queryReader, courseRepo, validate, logger)

	secureCookies := cfg.AppEnv == "production"

	deps := router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, cfg.SessionCookieName, cfg.SessionTTL, secureCookies, logger),
		UserHandler:         handler.NewUserHandler(userService, logger),
		CourseHandler:       handler.NewCourseHandler(courseService, logger),
		LiveClassHandler:    handler.NewLiveClassHandler(liveClassService, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, logger),
		AttendanceHandler:   handler.NewAttendanceHandler(attendanceService, logger),
		GradeHandler:        handler.NewGradeHandler(gradeService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		SharedNoteHandler:   handler.NewSharedNoteHandler(sharedNoteService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		AdminPortalHandler:  handler.NewAdminPortalHandler(adminPortalService, logger),
		AIHandler:           handler.NewAIHandler(aiSearchService, logger),
		SessionMiddleware:   middleware.SessionProtected(cfg.JWTSecret, cfg.SessionCookieName),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, deps)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if natsConn != nil {
		recorder = service.NewActivityRecorder(activityRepo, natsConn, activitySubject, logger)
		if err := recorder.Start(runCtx); err != nil {
			logger.Warn().Err(err).Msg("activity recorder failed to start")
		}
	}
	adminPortalService.StartRefresher(runCtx, cfg.AdminRefreshInterval)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, cancel)
}

func waitForShutdown(app *fiber.App, cancel context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
