package designs

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-design-library/internal/platform/temporal/sequences"
)

const (
	// DesignDeletionTaskQueue is polled by the worker that removes designs.
	DesignDeletionTaskQueue = "design-deletion"
	// DesignDeletionWorkflowName is the registered workflow type.
	DesignDeletionWorkflowName = "designs.workflows.DesignDeletion"
)

// DesignDeletionWorkflowInput is the payload of one deletion run.
type DesignDeletionWorkflowInput struct {
	DesignID int64
	TraceID  string
}

// DesignDeletionWorkflow removes a single design. One run per design id may be open at a time.
func DesignDeletionWorkflow(ctx workflow.Context, input DesignDeletionWorkflowInput) error {
	workflow.GetLogger(ctx).Info("design deletion workflow started", "designId", input.DesignID, "traceId", input.TraceID)
	return sequences.RunDesignRemovalSequence(ctx, input.DesignID)
}
