package ports

import (
	"context"

	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
)

// Counter reports the size of one collection. Meetings and designs repositories satisfy it.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Service computes dashboard figures.
type Service interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}
