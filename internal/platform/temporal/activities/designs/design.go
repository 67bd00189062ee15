package designs

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	designsports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
)

const (
	// DeleteDesignActivityName removes a design from the library.
	DeleteDesignActivityName = "designs.activities.DeleteDesign"

	// NotFoundErrorType marks a deletion that targeted an unknown design.
	NotFoundErrorType = "DesignNotFound"
	// InvalidInputErrorType marks a deletion rejected by validation.
	InvalidInputErrorType = "InvalidDesignInput"
)

// DeleteDesignInput identifies the design to delete.
type DeleteDesignInput struct {
	DesignID int64
}

// Activities groups activities that operate on the designs bounded context.
type Activities struct {
	service designsports.Service
}

// NewActivities wires the designs service into the Temporal activities bundle.
func NewActivities(service designsports.Service) *Activities {
	return &Activities{service: service}
}

// DeleteDesign removes a design. Missing designs and invalid ids fail without retry.
func (a *Activities) DeleteDesign(ctx context.Context, input DeleteDesignInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("design delete activity not initialized", "designId", input.DesignID)
		return errors.New("design delete activity not initialized")
	}
	logger.Info("DeleteDesign activity started", "designId", input.DesignID)
	err := a.service.Delete(ctx, input.DesignID)
	switch {
	case err == nil:
		logger.Info("DeleteDesign activity completed", "designId", input.DesignID)
		return nil
	case errors.Is(err, designsports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), NotFoundErrorType, err)
	case errors.Is(err, designsapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), InvalidInputErrorType, err)
	default:
		logger.Error("DeleteDesign activity failed", "designId", input.DesignID, "error", err)
		return err
	}
}
