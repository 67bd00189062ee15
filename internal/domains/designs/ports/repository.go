package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

var ErrNotFound = errors.New("design not found")

// Repository persists designs. List preserves the store's order (most recent first).
type Repository interface {
	Save(ctx context.Context, design *domain.Design) (*projection.Projection[*domain.Design], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Design], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Design], error)
	ListByMeeting(ctx context.Context, meetingID int64) ([]*projection.Projection[*domain.Design], error)
	CountByMeeting(ctx context.Context, meetingIDs []int64) (map[int64]int64, error)
	Count(ctx context.Context) (int64, error)
}
