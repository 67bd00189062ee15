package ports

import (
	"context"
	"errors"
)

// ErrDeletionInProgress indicates another deletion of the same design has not finished yet.
var ErrDeletionInProgress = errors.New("design deletion already in progress")

// WorkflowOrchestrator runs design deletions, durably when a workflow engine is configured.
type WorkflowOrchestrator interface {
	DeleteDesign(ctx context.Context, id int64) error
}
