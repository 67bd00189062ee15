package workflows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	designactivities "github.com/Apurer/go-gin-design-library/internal/platform/temporal/activities/designs"
	designworkflows "github.com/Apurer/go-gin-design-library/internal/platform/temporal/workflows/designs"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalDesignWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineDesignWorkflows)(nil)
)

// TemporalDesignWorkflows runs design deletions on a Temporal cluster.
type TemporalDesignWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalDesignWorkflows wires a Temporal client into the orchestrator.
func NewTemporalDesignWorkflows(c client.Client) *TemporalDesignWorkflows {
	return &TemporalDesignWorkflows{client: c, taskQueue: designworkflows.DesignDeletionTaskQueue}
}

// DeleteDesign starts the deletion workflow and waits for it to finish.
// A deletion already running for the same id yields ports.ErrDeletionInProgress.
func (o *TemporalDesignWorkflows) DeleteDesign(ctx context.Context, id int64) error {
	if o == nil || o.client == nil {
		return errors.New("temporal design workflows not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        DeletionWorkflowID(id),
		TaskQueue: o.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		designworkflows.DesignDeletionWorkflow,
		designworkflows.DesignDeletionWorkflowInput{DesignID: id, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return ports.ErrDeletionInProgress
		}
		return err
	}
	return translateWorkflowError(run.Get(ctx, nil))
}

// InlineDesignWorkflows deletes through the service directly, for tests and dev fallbacks.
// It still refuses overlapping deletions of the same design.
type InlineDesignWorkflows struct {
	service  ports.Service
	mu       sync.Mutex
	inFlight map[int64]struct{}
}

// NewInlineDesignWorkflows wraps the designs service for synchronous execution.
func NewInlineDesignWorkflows(service ports.Service) *InlineDesignWorkflows {
	return &InlineDesignWorkflows{service: service, inFlight: map[int64]struct{}{}}
}

// DeleteDesign delegates to the application service without durable orchestration.
func (o *InlineDesignWorkflows) DeleteDesign(ctx context.Context, id int64) error {
	if o == nil || o.service == nil {
		return errors.New("inline design workflows not configured")
	}
	o.mu.Lock()
	if _, busy := o.inFlight[id]; busy {
		o.mu.Unlock()
		return ports.ErrDeletionInProgress
	}
	o.inFlight[id] = struct{}{}
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		delete(o.inFlight, id)
		o.mu.Unlock()
	}()
	return o.service.Delete(ctx, id)
}

// DeletionWorkflowID is deterministic so Temporal rejects concurrent runs for one design.
func DeletionWorkflowID(id int64) string {
	return fmt.Sprintf("design-deletion-%d", id)
}

func translateWorkflowError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case designactivities.NotFoundErrorType:
			return fmt.Errorf("%w: %s", ports.ErrNotFound, appErr.Error())
		case designactivities.InvalidInputErrorType:
			return fmt.Errorf("%w: %s", designsapp.ErrInvalidInput, appErr.Error())
		}
	}
	return err
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
