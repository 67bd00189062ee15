package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/ports"
)

// Service derives dashboard stats from the meeting and design stores.
type Service struct {
	meetings ports.Counter
	designs  ports.Counter
}

// NewService wires the dashboard service with its counters.
func NewService(meetings, designs ports.Counter) *Service {
	return &Service{meetings: meetings, designs: designs}
}

// Stats counts meetings and designs concurrently.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.meetings.Count(gctx)
		if err != nil {
			return fmt.Errorf("count meetings: %w", err)
		}
		stats.TotalMeetings = n
		return nil
	})
	g.Go(func() error {
		n, err := s.designs.Count(gctx)
		if err != nil {
			return fmt.Errorf("count designs: %w", err)
		}
		stats.TotalDesigns = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

var _ ports.Service = (*Service)(nil)
