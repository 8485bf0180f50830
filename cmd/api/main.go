package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-coursecreator/internal/common/api"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/database"
	"go-coursecreator/internal/features/aicc"
	"go-coursecreator/internal/features/attachment"
	"go-coursecreator/internal/features/course"
	"go-coursecreator/internal/features/course_creator"
	"go-coursecreator/internal/features/course_import"
	"go-coursecreator/internal/features/email"
	"go-coursecreator/internal/features/notification"
	"go-coursecreator/internal/features/system"
	"go-coursecreator/internal/features/user"
	"go-coursecreator/internal/logger"
	"go-coursecreator/internal/middleware"
	"go-coursecreator/pkg/utils"

	_ "go-coursecreator/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Course archives can be far larger than attachments; attachment size is
// validated by the handler so oversized uploads get a 400 instead of a 413.
const maxRequestBody = 1024 * 1024 * 1024

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             maxRequestBody,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, logger *zap.Logger) {
	logger.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		logger.Debug("Setting up route", zap.String("route", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				logger.Info("Starting server", zap.String("port", port))
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, attachmentRepo attachment.AttachmentRepository, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := attachmentRepo.EnsureIndexes(ctx); err != nil {
					logger.Warn("Failed to ensure attachment indexes", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// ScheduleStagingCleanup runs the staging cleanup job for the app's lifetime
func ScheduleStagingCleanup(lc fx.Lifecycle, job *course_import.CleanupJob) {
	lc.Append(fx.Hook{
		OnStart: job.Start,
		OnStop:  job.Stop,
	})
}

// DrainNotifications waits for in-flight notification emails on shutdown.
// Registered before StartServer so its OnStop runs after the server stops.
func DrainNotifications(lc fx.Lifecycle, notifications notification.NotificationService) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				notifications.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}

// @title           Course Creator API
// @version         1.0
// @description     AI-assisted course creation, attachment management and course import webhooks.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			attachment.NewAttachmentRepository,
			user.NewUserRepository,
			email.NewEmailRepository,
			course_import.NewTaskDispatcher,

			// Initialize Storage & Clients
			attachment.NewLocalStorage,
			course_import.NewDirStager,
			course_import.NewCMSCourseCreator,
			aicc.NewClient,

			attachment.NewAttachmentService,
			user.NewUserService,
			email.NewEmailService,
			notification.NewNotificationService,
			course_creator.NewCourseCreatorService,
			course.NewCourseService,
			course_import.NewImportService,
			course_import.NewCleanupJob,

			// Initialize Controller
			attachment.NewAttachmentController,
			course_creator.NewCourseCreatorController,
			course.NewCourseController,
			course_import.NewImportController,
			notification.NewNotificationController,
			system.NewSystemController,

			// Initialize API Routes
			AsRoute(attachment.NewAttachmentApi),
			AsRoute(course_creator.NewCourseCreatorApi),
			AsRoute(course.NewCourseApi),
			AsRoute(course_import.NewImportApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(system.NewSystemApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},
			DrainNotifications,
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			ScheduleStagingCleanup,
			InitializeIndexes,
		),
	)

	app.Run()
}
