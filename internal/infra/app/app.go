package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/config"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/database"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/esign"
	kafkainfra "github.com/carlos18bp/gym-project-sub003/internal/infra/kafka"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/logger"
	redisinfra "github.com/carlos18bp/gym-project-sub003/internal/infra/redis"
	"github.com/carlos18bp/gym-project-sub003/internal/infra/telemetry"
	postgresrepo "github.com/carlos18bp/gym-project-sub003/internal/repository/postgres"
	redisrepo "github.com/carlos18bp/gym-project-sub003/internal/repository/redis"
	"github.com/carlos18bp/gym-project-sub003/internal/transport/http/middleware"
	"github.com/carlos18bp/gym-project-sub003/internal/transport/http/routes"
	"github.com/carlos18bp/gym-project-sub003/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics, err := telemetry.Attach(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	rosterCache := redisrepo.NewRosterCache(redisClient.Client(), cfg.Redis.RosterPrefix, cfg.Redis.RosterTTL)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: "portal:rate-limit",
		TTL:       rateLimitWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	var signingGateway port.SigningGateway = repos.Signatures
	if cfg.ESign.BaseURL != "" {
		signingGateway = esign.NewClient(cfg.ESign, log)
		log.Info("using external e-signature gateway", zap.String("base_url", cfg.ESign.BaseURL))
	}

	rosterService := usecase.NewRosterService(repos.Roster, rosterCache, log)
	documentService := usecase.NewDocumentService(repos.Documents, eventPublisher, log)
	permissionService := usecase.NewPermissionService(repos.Permissions, rosterService, eventPublisher, log).
		WithMetrics(metrics.PermissionSaves())
	signingService := usecase.NewSigningService(repos.Documents, signingGateway, eventPublisher, log).
		WithMetrics(metrics.DocumentsFullySigned())

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Metrics:     httpMetrics,
		Database:    pool,
		Cache:       redisClient,
		Services: routes.ServiceSet{
			Documents:   documentService,
			Permissions: permissionService,
			Signing:     signingService,
			Roster:      rosterService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting document engine API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
