package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/domain"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

var ErrNotFound = errors.New("meeting not found")

// Repository persists meetings. List returns the most recent meeting first.
type Repository interface {
	Save(ctx context.Context, meeting *domain.Meeting) (*projection.Projection[*domain.Meeting], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Meeting], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Meeting], error)
	Count(ctx context.Context) (int64, error)
}
