package application

import (
	"context"
	"fmt"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
)

// Service orchestrates the designs library use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the designs service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// List returns every design in store order.
func (s *Service) List(ctx context.Context) ([]*ports.DesignProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetByID loads a single design.
func (s *Service) GetByID(ctx context.Context, id int64) (*ports.DesignProjection, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: design id must be positive", ErrInvalidInput)
	}
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Delete removes a design. Deleting an unknown or already deleted id returns ports.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: design id must be positive", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
