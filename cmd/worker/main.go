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

	"github.com/Apurer/go-order-service/internal/app/api"
	orderworkflows "github.com/Apurer/go-order-service/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/go-order-service/internal/platform/observability"
	orderactivities "github.com/Apurer/go-order-service/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-pipeline-worker"
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

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	_, topic, bus := api.BuildMessaging(ctx, cfg, logger)
	announceActivities := orderactivities.NewActivities(topic, bus)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.AnnounceTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.AnnounceWorkflow, workflow.RegisterOptions{Name: orderworkflows.AnnounceWorkflowName})
	w.RegisterActivityWithOptions(announceActivities.PublishOrderCreated, activity.RegisterOptions{Name: orderactivities.PublishOrderCreatedActivityName})
	w.RegisterActivityWithOptions(announceActivities.EmitOrderCreated, activity.RegisterOptions{Name: orderactivities.EmitOrderCreatedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.AnnounceTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
