package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	designdomain "github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	designports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	meetingtypes "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application/types"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
)

// Service orchestrates the meetings bounded context use cases.
type Service struct {
	repo        ports.Repository
	designs     designports.Repository
	idempotency ports.IdempotencyStore
	now         func() time.Time
}

// Option customizes the meetings service.
type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key replay for RecordMeeting.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithClock overrides the time source used when a meeting has no explicit date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the meetings service with its dependencies.
func NewService(repo ports.Repository, designs designports.Repository, opts ...Option) *Service {
	svc := &Service{repo: repo, designs: designs, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RecordMeeting persists a meeting and the designs captured during it.
// A repeated idempotency key with the same payload replays the original meeting.
func (s *Service) RecordMeeting(ctx context.Context, input meetingtypes.RecordMeetingInput) (*meetingtypes.MeetingDetail, error) {
	heldAt := s.now()
	if input.HeldAt != nil {
		heldAt = *input.HeldAt
	}
	meeting, err := domain.NewMeeting(0, input.VendorName, input.Location, heldAt)
	if err != nil {
		return nil, mapError(err)
	}
	meeting.Annotate(input.Notes)
	drafts, err := buildDrafts(input.Designs)
	if err != nil {
		return nil, mapError(err)
	}

	var fingerprint string
	if s.idempotency != nil && input.IdempotencyKey != "" {
		fingerprint, err = FingerprintRecordMeeting(input)
		if err != nil {
			return nil, err
		}
		existing, err := s.idempotency.Get(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.GetByID(ctx, existing.MeetingID)
		}
	}

	saved, err := s.repo.Save(ctx, meeting)
	if err != nil {
		return nil, mapError(err)
	}
	ref := designdomain.MeetingRef{
		ID:         saved.Entity.ID,
		VendorName: saved.Entity.VendorName,
		Location:   saved.Entity.Location,
	}
	detail := &meetingtypes.MeetingDetail{
		Meeting: saved,
		Designs: make([]*designports.DesignProjection, 0, len(drafts)),
	}
	for _, draft := range drafts {
		if err := draft.AttachMeeting(ref); err != nil {
			return nil, mapError(err)
		}
		design, err := s.designs.Save(ctx, draft)
		if err != nil {
			return nil, mapError(err)
		}
		detail.Designs = append(detail.Designs, design)
	}

	if fingerprint != "" {
		stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: fingerprint,
			MeetingID:   saved.Entity.ID,
		})
		if err != nil {
			if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil && stored.RequestHash == fingerprint {
				return s.GetByID(ctx, stored.MeetingID)
			}
			return nil, err
		}
	}
	return detail, nil
}

// List returns every meeting, most recent first, with its design count.
func (s *Service) List(ctx context.Context) ([]*meetingtypes.MeetingSummary, error) {
	meetings, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]int64, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.Entity.ID)
	}
	counts := map[int64]int64{}
	if len(ids) > 0 {
		counts, err = s.designs.CountByMeeting(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	result := make([]*meetingtypes.MeetingSummary, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, &meetingtypes.MeetingSummary{Meeting: m, DesignCount: counts[m.Entity.ID]})
	}
	return result, nil
}

// GetByID loads a meeting with its designs.
func (s *Service) GetByID(ctx context.Context, id int64) (*meetingtypes.MeetingDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: meeting id must be positive", ErrInvalidInput)
	}
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	designs, err := s.designs.ListByMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	return &meetingtypes.MeetingDetail{Meeting: meeting, Designs: designs}, nil
}

// buildDrafts validates every design before anything is written.
func buildDrafts(inputs []meetingtypes.DesignDraftInput) ([]*designdomain.Design, error) {
	drafts := make([]*designdomain.Design, 0, len(inputs))
	for i, input := range inputs {
		draft := &designdomain.Design{}
		if err := draft.ReplaceImage(input.ImageURL); err != nil {
			return nil, fmt.Errorf("design %d: %w", i, err)
		}
		if err := draft.Reprice(input.FinalPrice); err != nil {
			return nil, fmt.Errorf("design %d: %w", i, err)
		}
		draft.Categorize(designdomain.CategoryFromPtr(input.Category))
		draft.Shortlist(input.Shortlisted)
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

var _ ports.Service = (*Service)(nil)
