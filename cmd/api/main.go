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
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/badges"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/config"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/database"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/handler"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/middleware"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/repository"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/router"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// A malformed catalog is a configuration bug; refuse to start rather
	// than evaluate badges against a broken registry.
	thresholds, err := badges.LoadThresholds(cfg.BadgeThresholdPath)
	if err != nil {
		log.Fatalf("failed to load badge thresholds: %v", err)
	}
	catalog, err := badges.NewCatalog(badges.Default(thresholds))
	if err != nil {
		log.Fatalf("failed to build badge catalog: %v", err)
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Lesson{}, &models.Attempt{}, &models.Response{}, &models.EarnedBadge{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	progressService := service.NewProgressService(studentRepo, attemptRepo, redisClient, cfg.ProgressCacheTTL, logger)
	badgeService := service.NewBadgeService(catalog, progressService, badgeRepo, natsConn, cfg.BadgeEventSubject, logger)
	attemptService := service.NewAttemptService(attemptRepo, studentRepo, lessonRepo, progressService, badgeService, validate, logger)
	lessonService := service.NewLessonService(lessonRepo, logger)

	lessonHandler := handler.NewLessonHandler(lessonService, logger)
	attemptHandler := handler.NewAttemptHandler(attemptService, logger)
	progressHandler := handler.NewProgressHandler(progressService, logger)
	badgeHandler := handler.NewBadgeHandler(badgeService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		LessonHandler:   lessonHandler,
		AttemptHandler:  attemptHandler,
		ProgressHandler: progressHandler,
		BadgeHandler:    badgeHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
