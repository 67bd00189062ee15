package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	libraryserver "github.com/Apurer/go-gin-design-library/go"

	dashboardobs "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/adapters/observability"
	dashboardapp "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/application"
	designsmemory "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/memory"
	designsobs "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/observability"
	designspostgres "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/persistence/postgres"
	designsworkflows "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/workflows"
	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	designsports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	meetingsmemory "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/memory"
	meetingsobs "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/observability"
	meetingspostgres "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/persistence/postgres"
	meetingsapp "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application"
	meetingsports "github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
	platformmigrations "github.com/Apurer/go-gin-design-library/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-design-library/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-design-library/internal/platform/postgres"
)

const serviceName = "design-library-api"

type repositories struct {
	designs     designsports.Repository
	meetings    meetingsports.Repository
	idempotency meetingsports.IdempotencyStore
}

// Run boots the design library HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(platformobservability.LogLevel(cfg.LogLevel)))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	designService := designsobs.New(
		designsapp.NewService(repos.designs),
		designsobs.WithLogger(logger),
		designsobs.WithTracer(instruments.Tracer("internal.designs.application")),
		designsobs.WithMeter(instruments.Meter("internal.designs.application")),
	)
	meetingService := meetingsobs.New(
		meetingsapp.NewService(repos.meetings, repos.designs, meetingsapp.WithIdempotencyStore(repos.idempotency)),
		meetingsobs.WithLogger(logger),
		meetingsobs.WithTracer(instruments.Tracer("internal.meetings.application")),
		meetingsobs.WithMeter(instruments.Meter("internal.meetings.application")),
	)
	dashboardService := dashboardobs.New(
		dashboardapp.NewService(repos.meetings, repos.designs),
		dashboardobs.WithLogger(logger),
		dashboardobs.WithTracer(instruments.Tracer("internal.dashboard.application")),
		dashboardobs.WithMeter(instruments.Meter("internal.dashboard.application")),
	)

	var designWorkflows designsports.WorkflowOrchestrator = designsworkflows.NewInlineDesignWorkflows(designService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline design deletion", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		designWorkflows = designsworkflows.NewTemporalDesignWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := libraryserver.ApiHandleFunctions{
		DesignAPI:    libraryserver.NewDesignAPI(designService, designWorkflows),
		MeetingAPI:   libraryserver.NewMeetingAPI(meetingService),
		DashboardAPI: libraryserver.NewDashboardAPI(dashboardService),
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName))
	router := libraryserver.NewRouterWithGinEngine(engine, handlers)

	srv := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("design library API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("design library API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		logger.Info("shutting down design library API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	memory := func() (repositories, func()) {
		meetings := meetingsmemory.NewRepository()
		designs := designsmemory.NewRepository()
		designs.WithMeetingLookup(meetings.Exists)
		return repositories{
			designs:     designs,
			meetings:    meetings,
			idempotency: meetingsmemory.NewIdempotencyStore(),
		}, func() {}
	}
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memory()
	}
	connectOpts := []platformpostgres.Option{platformpostgres.WithPool(platformpostgres.PoolFromEnv())}
	if platformobservability.LogLevel(cfg.LogLevel) <= slog.LevelDebug {
		connectOpts = append(connectOpts, platformpostgres.WithSQLLogging())
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, connectOpts...)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memory()
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memory()
	}
	if cfg.AutoMigrate {
		if err := platformmigrations.Run(db.WithContext(ctx)); err != nil {
			logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
			_ = sqlDB.Close()
			return memory()
		}
	}
	logger.Info("repositories configured with postgres")
	return postgresRepositories(db), func() { _ = sqlDB.Close() }
}

func postgresRepositories(db *gorm.DB) repositories {
	return repositories{
		designs:     designspostgres.NewRepository(db),
		meetings:    meetingspostgres.NewRepository(db),
		idempotency: meetingspostgres.NewIdempotencyStore(db),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
