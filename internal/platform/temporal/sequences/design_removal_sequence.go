package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	designactivities "github.com/Apurer/go-gin-design-library/internal/platform/temporal/activities/designs"
)

// RunDesignRemovalSequence executes the activities that remove a design from the library.
func RunDesignRemovalSequence(ctx workflow.Context, designID int64) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("design removal sequence started", "designId", designID)
	deleteOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	input := designactivities.DeleteDesignInput{DesignID: designID}
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, deleteOptions), designactivities.DeleteDesignActivityName, input).Get(ctx, nil)
	if err != nil {
		logger.Error("design removal sequence failed", "designId", designID, "error", err)
		return err
	}
	logger.Info("design removal sequence completed", "designId", designID)
	return nil
}
