// The consumer daemon drains the order notification queue continuously,
// supplementing the request-triggered poll exposed over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Apurer/go-order-service/internal/app/api"
	ordersapp "github.com/Apurer/go-order-service/internal/domains/orders/application"
	platformobservability "github.com/Apurer/go-order-service/internal/platform/observability"
)

const transportBackoff = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	const serviceName = "order-pipeline-consumer"
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
		return
	}

	repo, cleanupRepo := api.BuildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	queue, topic, bus := api.BuildMessaging(ctx, cfg, logger)

	service := ordersapp.NewService(repo, queue, ordersapp.NewInlineAnnouncer(topic, bus),
		ordersapp.WithLogger(logger),
		ordersapp.WithPolling(cfg.PollMaxMessages, cfg.PollWait),
	)

	logger.Info("consumer loop started")
	for {
		result, err := service.PollOrders(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				break
			}
			logger.Error("poll cycle failed, backing off", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
			case <-time.After(transportBackoff):
				continue
			}
			break
		}
		if result.Received > 0 {
			logger.Info("poll cycle complete",
				slog.Int("received", result.Received), slog.Int("processed", result.Processed))
		}
		if ctx.Err() != nil {
			break
		}
	}
	logger.Info("consumer loop stopped")
}
