package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-order-service/internal/durable/temporal/workflows/orders"
)

var _ ports.Announcer = (*TemporalAnnouncer)(nil)

// TemporalAnnouncer runs the announce fan-out as a durable workflow so each
// broadcast sink retries independently.
type TemporalAnnouncer struct {
	client    client.Client
	taskQueue string
}

// NewTemporalAnnouncer wires a Temporal client into the announcer.
func NewTemporalAnnouncer(c client.Client) *TemporalAnnouncer {
	return &TemporalAnnouncer{client: c, taskQueue: orderworkflows.AnnounceTaskQueue}
}

// AnnounceCreated starts the announce workflow and waits for its completion so
// the HTTP caller still observes a definitive success or failure.
func (a *TemporalAnnouncer) AnnounceCreated(ctx context.Context, payload string) error {
	if a == nil || a.client == nil {
		return errors.New("temporal announcer not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildAnnounceWorkflowID(payload, traceComponent),
		TaskQueue: a.taskQueue,
	}
	run, err := a.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.AnnounceWorkflow,
		orderworkflows.AnnounceWorkflowInput{Payload: payload, TraceID: traceComponent},
	)
	if err != nil {
		return err
	}
	return run.Get(ctx, nil)
}

func buildAnnounceWorkflowID(payload, traceComponent string) string {
	sum := sha256.Sum256([]byte(payload))
	// First 16 hex chars keep workflow IDs readable while remaining deterministic.
	return fmt.Sprintf("order-announce-%s-%s", hex.EncodeToString(sum[:8]), traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
