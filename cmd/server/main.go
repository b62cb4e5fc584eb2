package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/lessonhub-backend/internal/config"
	"github.com/AnshRaj112/lessonhub-backend/internal/database"
	"github.com/AnshRaj112/lessonhub-backend/internal/repository"
	"github.com/AnshRaj112/lessonhub-backend/internal/routes"
	"github.com/AnshRaj112/lessonhub-backend/internal/services"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	logger := newLogger(cfg)
	if envErr != nil {
		logger.Debug().Msg("no .env file found")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongo, err := database.Connect(ctx, &logger, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongo.Disconnect(); err != nil {
			logger.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := repository.NewUserMongoRepository(&logger, mongo.DB)
	lessons := repository.NewLessonMongoRepository(&logger, mongo.DB)
	sliders := repository.NewSliderMongoRepository(&logger, mongo.DB)
	if err := users.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := lessons.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure lesson indexes")
	}

	var rdb *redis.Client
	var locker services.Locker
	if cfg.RedisURI != "" {
		rdb, err = database.ConnectRedis(ctx, &logger, cfg.RedisURI)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		locker = services.NewRedisLocker(rdb, services.SeedLockKey, services.SeedLockTTL)
	} else {
		logger.Info().Msg("REDIS_URI not set; seed lock, catalog cache and shared rate limit disabled")
	}

	creds, err := services.NewCredentialService(services.CredentialConfig{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid credential configuration")
	}

	// Seeding must finish before the first request is served.
	if _, err := services.NewSeeder(&logger, lessons, sliders, locker).Seed(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	uploadDir := filepath.Join(cfg.PublicDir, "uploads")
	var storage services.AvatarStorage
	if cfg.CloudinaryEnabled() {
		storage, err = services.NewCloudinaryStorage(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Cloudinary")
		}
		logger.Info().Msg("avatars stored in Cloudinary")
	} else {
		storage, err = services.NewDiskStorage(uploadDir, cfg.Host+"/uploads")
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare upload directory")
		}
		logger.Info().Str("dir", uploadDir).Msg("avatars stored on disk")
	}

	catalog := services.NewCatalogService(&logger, lessons, sliders)
	if rdb != nil {
		catalog.WithCache(services.NewRedisCache(rdb), services.DefaultCacheTTL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := routes.NewRouter(routes.Deps{
		Logger:         logger,
		Auth:           services.NewAuthService(&logger, users, creds),
		Avatars:        services.NewAvatarService(&logger, users, storage),
		Catalog:        catalog,
		Redis:          rdb,
		Registry:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHost:    cfg.Hostname(),
		Production:     cfg.IsProduction(),
		TrustProxy:     cfg.TrustProxy,
		UploadDir:      uploadDir,
		UploadMaxBytes: cfg.UploadMaxBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Msg("lessonhub backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	production := false
	if cfg != nil {
		if l, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && l != zerolog.NoLevel {
			level = l
		}
		production = cfg.IsProduction()
	}

	var logger zerolog.Logger
	if production {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
