package orders

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/Apurer/go-order-service/internal/platform/temporal/activities/orders"
)

const (
	// AnnounceWorkflowName is the public identifier for registering the workflow.
	AnnounceWorkflowName = "orders.workflows.Announce"
	// AnnounceTaskQueue is the queue consumed by the worker processing announce workflows.
	AnnounceTaskQueue = "ORDER_ANNOUNCE"
)

// AnnounceWorkflowInput carries the already-serialized order payload to fan out.
type AnnounceWorkflowInput struct {
	Payload string
	TraceID string
}

// AnnounceWorkflow delivers the order-created payload to both broadcast
// channels as two independent activities. Each activity retries on its own
// schedule, so a transient failure on one sink cannot leave the channels
// permanently inconsistent the way a single-shot fan-out can.
func AnnounceWorkflow(ctx workflow.Context, input AnnounceWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("announce workflow started", withTraceID(input.TraceID)...)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	topicFuture := workflow.ExecuteActivity(ctx, orderactivities.PublishOrderCreatedActivityName, input.Payload)
	busFuture := workflow.ExecuteActivity(ctx, orderactivities.EmitOrderCreatedActivityName, input.Payload)

	var joined error
	if err := topicFuture.Get(ctx, nil); err != nil {
		logger.Error("topic publish exhausted retries", withTraceID(input.TraceID, "error", err)...)
		joined = errors.Join(joined, err)
	}
	if err := busFuture.Get(ctx, nil); err != nil {
		logger.Error("event bus emit exhausted retries", withTraceID(input.TraceID, "error", err)...)
		joined = errors.Join(joined, err)
	}
	if joined != nil {
		return joined
	}
	logger.Info("announce workflow completed", withTraceID(input.TraceID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
