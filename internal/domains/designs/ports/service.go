package ports

import (
	"context"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

// DesignProjection is a design plus its persistence metadata.
type DesignProjection = projection.Projection[*domain.Design]

// Service defines the designs use cases exposed to adapters (inbound/driving port).
type Service interface {
	List(ctx context.Context) ([]*DesignProjection, error)
	GetByID(ctx context.Context, id int64) (*DesignProjection, error)
	Delete(ctx context.Context, id int64) error
}
