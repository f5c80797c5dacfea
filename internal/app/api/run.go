package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	httpapi "github.com/Apurer/go-order-service/internal/domains/orders/adapters/http"
	ordersmemory "github.com/Apurer/go-order-service/internal/domains/orders/adapters/memory"
	eventbridgeadapter "github.com/Apurer/go-order-service/internal/domains/orders/adapters/messaging/eventbridge"
	snsadapter "github.com/Apurer/go-order-service/internal/domains/orders/adapters/messaging/sns"
	sqsadapter "github.com/Apurer/go-order-service/internal/domains/orders/adapters/messaging/sqs"
	ordersobs "github.com/Apurer/go-order-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-order-service/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-order-service/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-order-service/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-order-service/internal/domains/orders/ports"
	platformawsmsg "github.com/Apurer/go-order-service/internal/platform/awsmsg"
	platformobservability "github.com/Apurer/go-order-service/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-order-service/internal/platform/postgres"
)

// Run boots the order pipeline HTTP API with observability, messaging,
// persistence, and the announce orchestrator wired.
func Run(ctx context.Context) error {
	const serviceName = "order-pipeline-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repo, cleanupRepo := BuildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	queue, topic, bus := BuildMessaging(ctx, cfg, logger)

	var announcer ordersports.Announcer = ordersapp.NewInlineAnnouncer(topic, bus)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, announcing inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		announcer = ordersworkflows.NewTemporalAnnouncer(temporalClient)
		logger.Info("durable announce workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreService := ordersapp.NewService(repo, queue, announcer,
		ordersapp.WithLogger(logger),
		ordersapp.WithPolling(cfg.PollMaxMessages, cfg.PollWait),
	)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := httpapi.NewRouter(httpapi.NewOrderAPI(orderService))
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("order pipeline API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order pipeline API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// BuildRepository wires the Postgres repository, falling back to memory when
// no DSN is configured or the connection fails.
func BuildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectWithFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

// BuildMessaging wires the AWS-backed queue, topic, and bus adapters. When any
// channel identifier is missing, all three fall back to a single in-process
// loopback broker so the create-to-consume flow still works locally.
func BuildMessaging(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Queue, ordersports.Topic, ordersports.EventBus) {
	if !cfg.MessagingConfigured() {
		logger.Warn("queue/topic/bus not fully configured, falling back to in-memory loopback broker")
		broker := ordersmemory.NewBroker()
		return broker, broker, broker
	}
	clients, err := platformawsmsg.Load(ctx, cfg.AWSRegion)
	if err != nil {
		logger.Warn("failed to load AWS configuration, falling back to in-memory loopback broker",
			slog.String("error", err.Error()))
		broker := ordersmemory.NewBroker()
		return broker, broker, broker
	}
	logger.Info("messaging configured with AWS backend",
		slog.String("queue", cfg.QueueURL),
		slog.String("topic", cfg.TopicARN),
		slog.String("bus", cfg.EventBusName))
	return sqsadapter.NewQueue(clients.SQS, cfg.QueueURL),
		snsadapter.NewTopic(clients.SNS, cfg.TopicARN),
		eventbridgeadapter.NewBus(clients.EventBridge, cfg.EventBusName)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
