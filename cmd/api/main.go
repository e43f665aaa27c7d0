package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-trip-booking/internal/application/notify"
	"github.com/go-trip-booking/internal/config"
	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
	"github.com/go-trip-booking/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-trip-booking/internal/infrastructure/jwt"
	"github.com/go-trip-booking/internal/infrastructure/memory"
	"github.com/go-trip-booking/internal/infrastructure/redisrepo"
	s3infra "github.com/go-trip-booking/internal/infrastructure/s3"
	"github.com/go-trip-booking/internal/infrastructure/smtp"
	"github.com/go-trip-booking/internal/infrastructure/sns"
	transporthttp "github.com/go-trip-booking/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx := context.Background()

	var (
		tripRepo    domain.TripRepository
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
	)
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := redisrepo.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("redis connection failed", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		tripRepo = redisrepo.NewTripRepository(client)
		userRepo = redisrepo.NewUserRepository(client)
		sessionRepo = redisrepo.NewSessionRepository(client)
	case config.BackendDynamo:
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		tripRepo = dynamo.NewTripRepository(client, cfg.DynamoTables.Trips)
		userRepo = dynamo.NewUserRepository(client, cfg.DynamoTables.Users)
		sessionRepo = dynamo.NewSessionRepository(client, cfg.DynamoTables.Sessions)
	default:
		tripRepo = memory.NewTripRepository()
		userRepo = memory.NewUserRepository()
		sessionRepo = memory.NewSessionRepository()
		if cfg.SeedDemoData {
			seedDemoData(ctx, tripRepo, userRepo, logger)
		}
	}
	logger.Info("storage backend ready", "backend", cfg.StorageBackend)

	// JWT signing is optional; without keys, bearers are opaque session tokens.
	var signer transporthttp.TokenSigner
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		signer = p
	} else {
		logger.Warn("JWT provider not available, using opaque tokens", "err", err)
	}

	s3Store := s3infra.NewStore(s3infra.NewClient(cfg), cfg.S3BucketName)
	mailer := smtp.NewMailer(cfg)

	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		logger.Warn("SNS sender not available", "err", err)
	}

	bus := event.NewBus()
	bus.SubscribeAll(event.LogHandler(logger))
	notify.NewNotifier(notify.NotifierDeps{
		UserRepo:  userRepo,
		TripRepo:  tripRepo,
		Mailer:    mailer,
		SMSSender: smsSender,
		Logger:    logger,
	}).Register(bus)

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		TripRepo:    tripRepo,
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		ImageStore:  s3Store,
		Signer:      signer,
		Bus:         bus,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
