package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/KshitijChavan-Stack/authflow/config"
	"github.com/KshitijChavan-Stack/authflow/db"
	"github.com/KshitijChavan-Stack/authflow/internal/auth/handler"
	"github.com/KshitijChavan-Stack/authflow/internal/auth/repository/postgres"
	"github.com/KshitijChavan-Stack/authflow/internal/auth/repository/rediscache"
	"github.com/KshitijChavan-Stack/authflow/internal/auth/service"
	"github.com/KshitijChavan-Stack/authflow/internal/logger"
	"github.com/KshitijChavan-Stack/authflow/internal/mailer"
	"github.com/KshitijChavan-Stack/authflow/internal/password"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}

	log := logger.New(cfg.LogLevel)

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal("failed to initialize postgres", "error", err)
	}
	defer dbPool.Close()

	redisClient, err := db.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("failed to initialize redis", "error", err)
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	refreshRepo := postgres.NewRefreshTokenRepository(dbPool)
	ephemeralRepo := postgres.NewEphemeralTokenRepository(dbPool)
	revocationCache := rediscache.NewRevocationCache(redisClient, log)

	hasher := password.NewHasher(cfg.BcryptCost, cfg.HashWorkers)
	tokenService := service.NewTokenService(
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(),
	)
	guard := service.NewCredentialGuard(userRepo, hasher, cfg.Lockout.MaxAttempts, cfg.LockoutWindow(), log)
	ephemeralService := service.NewEphemeralTokenService(ephemeralRepo)

	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.EmailSenderEnable {
		sender, err = mailer.NewSMTPSender(cfg.SMTP, cfg.FrontendBaseURL)
		if err != nil {
			log.Fatal("failed to initialize smtp sender", "error", err)
		}
	}

	authService := service.NewAuthService(service.AuthServiceDeps{
		Users:           userRepo,
		Refresh:         refreshRepo,
		Ephemeral:       ephemeralService,
		Guard:           guard,
		Tokens:          tokenService,
		Cache:           revocationCache,
		Mail:            sender,
		Hasher:          hasher,
		Log:             log,
		VerificationTTL: cfg.VerificationTokenTTL(),
		ResetTTL:        cfg.ResetTokenTTL(),
	})

	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := handler.NewAuthMiddleware(tokenService, revocationCache, userRepo)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, authMiddleware)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := dbPool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "postgres": err.Error()})
		}

		if err := redisClient.Ping(c.UserContext()).Err(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "redis": err.Error()})
		}

		return c.JSON(fiber.Map{"status": "ok"})
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", "error", err)
		}
	}()

	log.Info("server started", "port", cfg.Port, "env", cfg.Env)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
