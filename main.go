package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/greenmind-app/greenmind/backend/config"
	"github.com/greenmind-app/greenmind/backend/handlers"
	"github.com/greenmind-app/greenmind/backend/middleware"
	webmodels "github.com/greenmind-app/greenmind/backend/models"
	webservices "github.com/greenmind-app/greenmind/backend/services"
	"github.com/greenmind-app/greenmind/greenmind"
	gmconfig "github.com/greenmind-app/greenmind/greenmind/config"
	"github.com/greenmind-app/greenmind/greenmind/database"
	"github.com/greenmind-app/greenmind/greenmind/database/repositories"
	"github.com/greenmind-app/greenmind/greenmind/logger"
	"github.com/greenmind-app/greenmind/greenmind/tasks"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncDB := flag.Bool("sync-db", false, "Whether to sync the database schema")
	debug := flag.Bool("debug", false, "Enable debug mode")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting GreenMind API",
		slog.String("version", version),
		slog.String("commit", commit))

	cfg, err := greenmind.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	webCfg := config.NewWebAppConfig(cfg, *debug)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	if *shouldSyncDB {
		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("Database schema initialized")
	}

	repos := webmodels.NewRepositories(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewCheckInRepository(db.BunDB()),
		repositories.NewUserTaskRepository(db.BunDB()),
		repositories.NewTemplateRepository(db.BunDB()),
		repositories.NewEventRepository(db.BunDB()),
		repositories.NewPlantsRepository(db.BunDB()),
	)

	taskService := tasks.NewService(db.BunDB(), repos.CheckIn, repos.UserTask, repos.Template, repos.Event)
	authService := webservices.NewAuthService(repos.User)
	sessionService := webservices.NewSessionService(webCfg)

	app := fiber.New(fiber.Config{
		AppName:      "GreenMind API",
		ServerHeader: "GreenMind",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Web.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:         webCfg,
		DB:             db,
		Repos:          repos,
		TaskService:    taskService,
		AuthService:    authService,
		SessionService: sessionService,
		Version:        version,
		Commit:         commit,
	}

	setupRoutes(app, webApp)

	// Nightly sweep keeps the append-only event log bounded
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), gmconfig.DefaultQueryTimeout)
		defer cancel()

		cutoff := time.Now().Add(-gmconfig.EventRetention)
		purged, err := repos.Event.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			slog.Error("Event retention sweep failed", slog.String("error", err.Error()))
			return
		}
		logger.LogSystem("Event retention sweep completed", slog.Int64("purged", purged))
	}); err != nil {
		slog.Error("Failed to schedule retention sweep", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()

	slog.Info("Starting server", slog.String("addr", cfg.Web.Addr))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Web.Addr); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-sig
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	db.Close()

	slog.Info("Shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	// Authentication routes
	auth := app.Group("/api/auth")
	auth.Use(middleware.AuthRateLimit())
	auth.Post("/register", handlers.Register(webApp))
	auth.Post("/login", handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))

	app.Get("/api/auth/session", handlers.ValidateSession(webApp))

	// Task catalog is public
	app.Get("/api/task-templates", middleware.APIRateLimit(), handlers.TemplatesList(webApp))
	app.Get("/api/task-templates/:id", middleware.APIRateLimit(), handlers.TemplatesDetail(webApp))

	// Everything else requires a session
	api := app.Group("/api")
	api.Use(middleware.APIRateLimit())
	api.Use(middleware.AuthRequired(webApp))

	api.Post("/checkins", handlers.CheckInsCreate(webApp))
	api.Get("/checkins", handlers.CheckInsList(webApp))
	api.Get("/checkins/:id", handlers.CheckInsDetail(webApp))

	api.Post("/user-tasks", handlers.TasksCreate(webApp))
	api.Get("/user-tasks", handlers.TasksList(webApp))
	api.Get("/user-tasks/today", handlers.TasksToday(webApp))
	api.Get("/user-tasks/:id", handlers.TasksDetail(webApp))
	api.Patch("/user-tasks/:id", handlers.TasksPatch(webApp))

	api.Post("/user-events", handlers.EventsCreate(webApp))
	api.Get("/user-events", handlers.EventsList(webApp))

	api.Get("/plants-progress", handlers.PlantsGet(webApp))
	api.Patch("/plants-progress", handlers.PlantsUpdate(webApp))

	api.Get("/dashboard/stats", handlers.DashboardStatsAPI(webApp))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
