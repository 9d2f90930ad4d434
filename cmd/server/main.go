package main

import (
	"context"
	"errors"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/ruhienterprises/careers-api/internal/config"
	"github.com/ruhienterprises/careers-api/internal/domain/fiber/handler"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/repository"
	"github.com/ruhienterprises/careers-api/internal/service"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// multipart overhead on top of the largest accepted resume
const bodyLimit = 8 * 1024 * 1024

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	config.ConfigureLogger(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: bodyLimit,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.CORSOrigins,
		AllowCredentials: appConfig.CORSOrigins != "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	db := ConnectDB()

	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	storageConfig := config.LoadStorageConfig()
	storage := service.NewStorageService(storageConfig)
	emailConfig := config.LoadEmailConfig()
	email := service.NewEmailService(emailConfig)
	pdf := service.NewPDFService()

	authConfig := config.LoadAuthConfig()
	sessions, closeSessions := NewSessionStore(ctx, authConfig.SessionTTL)
	authUC := usecase.NewAuthUsecase(profileRepo, sessions, authConfig.SessionTTL)
	if err := authUC.EnsureAdmin(ctx, authConfig.AdminEmail, authConfig.AdminPassword); err != nil {
		logrus.WithError(err).Fatal("could not ensure admin account")
	}

	handler.RegisterRoutes(app, authUC, handler.Handlers{
		Jobs:         handler.NewJobHandler(usecase.NewJobUsecase(jobRepo, appRepo)),
		Applications: handler.NewApplicationHandler(usecase.NewApplicationUsecase(appRepo, jobRepo, storage), usecase.NewModerationUsecase(appRepo, jobRepo, storage)),
		Resumes:      handler.NewResumeHandler(usecase.NewResumeUsecase(storage, pdf, storageConfig.CacheControl)),
		Auth:         handler.NewAuthHandler(authUC),
		Stats:        handler.NewStatsHandler(usecase.NewStatsUsecase(appRepo, jobRepo)),
		Contact:      handler.NewContactHandler(usecase.NewContactUsecase(email, emailConfig.ContactTemplate, emailConfig.ContactRecipient)),
	})

	if sweeper := config.LoadSweeperConfig(); sweeper.Interval > 0 {
		logrus.WithFields(logrus.Fields{"interval": sweeper.Interval, "max_age": sweeper.MaxAge}).Info("orphan resume sweep enabled")
		go usecase.NewSweepUsecase(appRepo, storage, sweeper.MaxAge).Run(ctx, sweeper.Interval)
	}

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logrus.Debugf("Active goroutines: %d", runtime.NumGoroutine())
			}
		}
	}()

	go func() {
		<-ctx.Done()
		logrus.Info("shutting down")
		if err := app.ShutdownWithTimeout(appConfig.ShutdownTimeout); err != nil {
			logrus.WithError(err).Error("shutdown failed")
		}
	}()

	logrus.Infof("Server running on %s", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		logrus.WithError(err).Error("server stopped")
	}

	stop()
	closeSessions()
	if pgDB, err := db.DB(); err == nil {
		_ = pgDB.Close()
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(&model.Job{}, &model.Application{}, &model.Profile{})
	if err != nil {
		logrus.Fatal("migration failed: ", err)
	}
	return db
}

// NewSessionStore uses Redis when REDIS_ADDR is set and falls back to an
// in-process store otherwise. The returned func releases the connection.
func NewSessionStore(ctx context.Context, ttl time.Duration) (repository.SessionStore, func()) {
	redisConfig := config.LoadRedisConfig()
	if redisConfig.Addr == "" {
		logrus.Warn("REDIS_ADDR not set, keeping sessions in memory")
		return repository.NewMemorySessionStore(ttl), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("could not connect to redis")
	}
	return repository.NewRedisSessionStore(client), func() { _ = client.Close() }
}
