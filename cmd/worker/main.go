package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	designsmemory "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/memory"
	designsobs "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/observability"
	designspostgres "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/persistence/postgres"
	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	designsports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	platformobservability "github.com/Apurer/go-gin-design-library/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-design-library/internal/platform/postgres"
	designactivities "github.com/Apurer/go-gin-design-library/internal/platform/temporal/activities/designs"
	designworkflows "github.com/Apurer/go-gin-design-library/internal/platform/temporal/workflows/designs"
)

func main() {
	ctx := context.Background()
	const serviceName = "design-library-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	designRepo, cleanupRepo := buildDesignRepository(ctx, logger)
	defer cleanupRepo()
	designService := designsobs.New(
		designsapp.NewService(designRepo),
		designsobs.WithLogger(logger),
		designsobs.WithTracer(instruments.Tracer("internal.designs.application")),
		designsobs.WithMeter(instruments.Meter("internal.designs.application")),
	)
	activities := designactivities.NewActivities(designService)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, designworkflows.DesignDeletionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(designworkflows.DesignDeletionWorkflow, workflow.RegisterOptions{Name: designworkflows.DesignDeletionWorkflowName})
	w.RegisterActivityWithOptions(activities.DeleteDesign, activity.RegisterOptions{Name: designactivities.DeleteDesignActivityName})

	logger.Info("worker listening", slog.String("taskQueue", designworkflows.DesignDeletionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildDesignRepository(ctx context.Context, logger *slog.Logger) (designsports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return designsmemory.NewRepository(), cleanup
	}
	logger.Info("worker design repository configured with postgres")
	return designspostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
