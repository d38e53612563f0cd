package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"public-pulse/internal/config"
	"public-pulse/internal/domain"
	"public-pulse/internal/handler"
	"public-pulse/internal/llm"
	"public-pulse/internal/middleware"
	"public-pulse/internal/pkg/i18n"
	"public-pulse/internal/repository"
	"public-pulse/internal/service"
	"public-pulse/internal/service/auth"
	"public-pulse/internal/service/notification"
	"public-pulse/internal/storage"
)

const issueWindow = 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := i18n.LoadDefault(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	notification.Locale = cfg.DefaultLocale

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := config.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	var rdb *redis.Client
	if client, err := config.NewRedisClient(cfg); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching and rate limiting disabled)", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	var minioClient *minio.Client
	if client, err := config.NewMinIOClient(cfg); err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	} else {
		minioClient = client
	}
	signer, err := config.NewMinIOSigner(cfg)
	if err != nil {
		log.Printf("Warning: Failed to build MinIO signer: %v", err)
	}
	gateway := storage.NewMinIOGateway(minioClient, signer, cfg.MinIOBucket, cfg.StorageTimeout)

	var llmClient llm.Client = llm.Unavailable{}
	if client, err := config.NewOpenAIClient(cfg); err != nil {
		log.Printf("Warning: %v (issues will be stored unclassified)", err)
	} else {
		llmClient = llm.NewOpenAIClient(client, cfg.OpenAIModel)
	}

	store := repository.NewStore(db)
	services, err := service.NewServices(store.Repositories, store, rdb, gateway, llmClient, cfg)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    int(cfg.MaxUploadSize)*cfg.MaxImages + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth, rdb, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, rdb *redis.Client, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authRequired := middleware.AuthRequired(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	identityRequired := middleware.IdentityRequired(authService)

	citizenOnly := middleware.RequireRole(domain.RoleCitizen)
	governmentOnly := middleware.RequireRole(domain.RoleGovernment)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	for _, role := range []domain.UserRole{domain.RoleCitizen, domain.RoleGovernment, domain.RoleAdmin} {
		group := v1.Group("/" + strings.ToLower(string(role)))
		group.Post("/signup", identityRequired, h.Auth.Signup(role))
		group.Get("/profile", authRequired, h.Auth.Profile(role))
	}

	issues := v1.Group("/issues")
	issues.Get("/", optionalAuth, h.Issue.List)
	issues.Get("/nearby", h.Issue.Nearby)
	issues.Get("/:id", optionalAuth, h.Issue.Get)
	issues.Post("/", authRequired, citizenOnly, middleware.IssueRateLimit(rdb, cfg.IssueDailyLimit, issueWindow), h.Issue.Create)
	issues.Put("/:id", authRequired, citizenOnly, h.Issue.Update)
	issues.Patch("/:id/status", authRequired, governmentOnly, h.Issue.UpdateStatus)
	issues.Patch("/:id/department", authRequired, governmentOnly, h.Issue.AssignDepartment)
	issues.Delete("/:id", authRequired, h.Issue.Delete)

	comments := v1.Group("/comments")
	comments.Get("/issue/:issueId", optionalAuth, h.Comment.ListByIssue)
	comments.Post("/", authRequired, citizenOnly, h.Comment.Create)
	comments.Put("/:id", authRequired, citizenOnly, h.Comment.Update)
	comments.Delete("/:id", authRequired, citizenOnly, h.Comment.Delete)

	votes := v1.Group("/votes")
	votes.Get("/", optionalAuth, h.Vote.Summary)
	votes.Post("/", authRequired, citizenOnly, h.Vote.Toggle)

	images := v1.Group("/images", authRequired, citizenOnly)
	images.Get("/user/:userId", h.Image.ListByUser)
	images.Delete("/:imageId", h.Image.Delete)

	departments := v1.Group("/departments")
	departments.Get("/", h.Department.List)
	departments.Post("/assign-user", authRequired, adminOnly, h.Department.AssignUser)
	departments.Get("/:id", h.Department.Get)
	departments.Post("/", authRequired, adminOnly, h.Department.Create)
	departments.Put("/:id", authRequired, adminOnly, h.Department.Update)
	departments.Delete("/:id", authRequired, adminOnly, h.Department.Delete)

	users := v1.Group("/users", authRequired)
	users.Get("/government/assigned-issues", governmentOnly, h.Issue.ListAssigned)
	users.Get("/", adminOnly, h.User.List)
	users.Post("/", adminOnly, h.User.Create)
	users.Get("/:id", h.User.Get)
	users.Get("/:id/issues", h.User.ListIssues)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", adminOnly, h.User.Delete)

	notifications := v1.Group("/notifications", authRequired)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/read-all", h.Notification.MarkAllAsRead)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	v1.Get("/stats", h.Dashboard.GetStats)
}
