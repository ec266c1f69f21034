package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"designkit_backend/internal/app/di"
	"designkit_backend/internal/app/router"
	designhandler "designkit_backend/internal/feature/design/transport/handler"
	designusecase "designkit_backend/internal/feature/design/usecase"
	historyadapters "designkit_backend/internal/feature/history/adapters"
	historyhandler "designkit_backend/internal/feature/history/transport/handler"
	historyusecase "designkit_backend/internal/feature/history/usecase"
	"designkit_backend/internal/platform/config"
	platformdb "designkit_backend/internal/platform/db"
	platformhandler "designkit_backend/internal/platform/http/handler"
	"designkit_backend/internal/platform/metrics"
	platformredis "designkit_backend/internal/platform/redis"
)

const (
	sessionSweepInterval = time.Minute
	shutdownTimeout      = 10 * time.Second
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; /v1 routes will respond 500 until it is configured")
	}

	health := platformhandler.NewHealthHandler()

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable; running without cache", "addr", cfg.RedisAddr(), "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			health.Register("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}

	// db（生成履歴）
	var db *gorm.DB
	if cfg.DBEnabled() {
		db, err = platformdb.OpenDB(platformdb.Config{
			User:         cfg.DBUser,
			Password:     cfg.DBPassword,
			Name:         cfg.DBName,
			Host:         cfg.DBHost,
			Port:         cfg.DBPort,
			SSLMode:      cfg.DBSSLMode,
			InstanceName: cfg.DBInstance,
		}, cfg.RunMigrations, &historyadapters.GenerationModel{})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
		health.Register("database", sqlDB.PingContext)
	}

	// Metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// Gemini
	client := di.NewGeminiClient(ctx, cfg)
	health.Register("gemini", func(context.Context) error { return client.Ready() })

	detector, closer, err := di.NewDetector(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			slog.Error("failed to close object detector", "error", err)
		}
	}()

	// Repository
	var historyRepo historyusecase.GenerationRepository
	if db != nil {
		historyRepo = historyadapters.NewGenerationRepository(db)
	}

	// Usecase
	gen := di.NewGenerator(client, m, historyRepo, rdb, cfg.CacheTTL)
	designUC := designusecase.NewDesignUsecase(gen, designusecase.Options{
		Models:               di.ModelsFromConfig(cfg),
		Detector:             detector,
		VariationConcurrency: cfg.VariationConcurrency,
	})
	starter := di.NewChatStarter(client, m, historyRepo)
	sessions := designusecase.NewSessionRegistry(starter, di.NewTurnLog(rdb, cfg.SessionTTL), designUC.Models().ImagePro, cfg.SessionTTL)
	m.RegisterGauge("sessions", "active", "Number of open editing sessions.", func() float64 {
		return float64(sessions.Len())
	})
	go sessions.Run(ctx, sessionSweepInterval)

	// Handler
	handlers := router.Handlers{
		Health:   health,
		Design:   designhandler.NewDesignHandler(designUC),
		Images:   designhandler.NewImageHandler(designUC),
		Sessions: designhandler.NewSessionHandler(sessions),
	}
	if historyRepo != nil {
		handlers.History = historyhandler.NewHistoryHandler(historyusecase.NewHistoryUsecase(historyRepo))
	}

	// ルータ生成
	engine := router.NewRouter(handlers, router.Options{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "recognizer", cfg.RecognizerBackend,
			"redis", rdb != nil, "history", historyRepo != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
