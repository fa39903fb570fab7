package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidmatch/trust-engine/internal/fraud"
	"github.com/aidmatch/trust-engine/internal/matching"
	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/aidmatch/trust-engine/pkg/config"
	"github.com/aidmatch/trust-engine/pkg/database"
	"github.com/aidmatch/trust-engine/pkg/eventbus"
	"github.com/aidmatch/trust-engine/pkg/health"
	"github.com/aidmatch/trust-engine/pkg/logger"
	redisclient "github.com/aidmatch/trust-engine/pkg/redis"
	"github.com/aidmatch/trust-engine/pkg/tracing"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	serviceName    = "trust-engine"
	shutdownPeriod = 10 * time.Second
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Environment, serviceName); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, serviceName, cfg.Server.Version, cfg.Tracing)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Warn("failed to flush traces", zap.Error(err))
				}
			}()
			logger.Info("tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
		}
	}

	var extra []gin.HandlerFunc
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Environment,
			Release:     serviceName + "@" + cfg.Server.Version,
		}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			extra = append(extra, sentrygin.New(sentrygin.Options{Repanic: true}))
		}
	}

	// Snapshot stores
	var pool *pgxpool.Pool
	var providerRepo providers.RepositoryInterface
	var profileRepo preferences.RepositoryInterface
	var beneficiaryRepo matching.RepositoryInterface
	var fraudRepo fraud.RepositoryInterface
	if cfg.Database.Enabled {
		pool, err = database.NewPostgresPool(ctx, &cfg.Database)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer database.Close(pool)
		logger.Info("connected to snapshot stores", zap.String("database", cfg.Database.DBName))

		providerRepo = providers.NewRepository(pool)
		profileRepo = preferences.NewRepository(pool)
		beneficiaryRepo = matching.NewRepository(pool)
		fraudRepo = fraud.NewRepository(pool)
	}

	matchingService := matching.NewService(nil, providerRepo, profileRepo, beneficiaryRepo).
		WithTopNLimits(cfg.Matching.DefaultTopN, cfg.Matching.MaxTopN)
	fraudService := fraud.NewService(fraudRepo)

	healthChecks := map[string]func() error{
		"database": health.DatabaseChecker(pool),
		"redis":    nil,
	}

	if cfg.Cache.Enabled {
		rc, err := redisclient.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warn("result cache disabled, redis unavailable", zap.Error(err))
		} else {
			defer rc.Close()
			cache := redisclient.NewSnapshotCache(rc.Client, cfg.Cache.Prefix, cfg.Cache.TTL)
			matchingService.WithCache(cache)
			fraudService.WithCache(cache)
			healthChecks["redis"] = health.RedisChecker(rc.Client)
			logger.Info("result cache enabled", zap.String("redis", cfg.Redis.RedisAddr()), zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	if cfg.NATS.Enabled {
		publisher, err := eventbus.Connect(cfg.NATS.URL, serviceName)
		if err != nil {
			logger.Warn("ring alerts disabled, nats unavailable", zap.Error(err))
		} else {
			defer publisher.Close()
			fraudService.WithPublisher(publisher, cfg.NATS.Subject)
			logger.Info("ring alerts enabled", zap.String("subject", cfg.NATS.Subject))
		}
	}

	router := newRouter(cfg, routerDeps{
		matchingService: matchingService,
		fraudService:    fraudService,
		healthChecks:    healthChecks,
		extra:           extra,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("trust engine starting", zap.String("port", cfg.Server.Port), zap.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
