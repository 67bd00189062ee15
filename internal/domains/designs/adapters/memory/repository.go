package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu      sync.RWMutex
	designs map[int64]*storedDesign
	nextID  int64
	now     func() time.Time
	meeting MeetingLookup
}

// MeetingLookup reports whether a meeting exists.
type MeetingLookup func(ctx context.Context, id int64) (bool, error)

type storedDesign struct {
	design   *domain.Design
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		designs: map[int64]*storedDesign{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// WithMeetingLookup makes Save reject designs whose meeting does not exist, the way the
// postgres foreign key does. Without it any meeting id is accepted.
func (r *Repository) WithMeetingLookup(lookup MeetingLookup) {
	r.meeting = lookup
}

// Save inserts or replaces a design, assigning an id when it has none.
func (r *Repository) Save(ctx context.Context, design *domain.Design) (*projection.Projection[*domain.Design], error) {
	if design == nil {
		return nil, errors.New("cannot save nil design")
	}
	if r.meeting != nil {
		ok, err := r.meeting(ctx, design.Meeting.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("meeting %d: %w", design.Meeting.ID, domain.ErrMissingMeeting)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := design.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.designs[clone.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedDesign{design: clone, metadata: metadata}
	r.designs[clone.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a design if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Design], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.designs[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a design.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.designs[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.designs, id)
	return nil
}

// List returns all designs, most recent first.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Design], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(*storedDesign) bool { return true }), nil
}

// ListByMeeting returns the designs recorded during one meeting.
func (r *Repository) ListByMeeting(_ context.Context, meetingID int64) ([]*projection.Projection[*domain.Design], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(entry *storedDesign) bool { return entry.design.Meeting.ID == meetingID }), nil
}

// CountByMeeting returns design counts keyed by meeting id; meetings without designs are omitted.
func (r *Repository) CountByMeeting(_ context.Context, meetingIDs []int64) (map[int64]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[int64]struct{}, len(meetingIDs))
	for _, id := range meetingIDs {
		wanted[id] = struct{}{}
	}
	counts := map[int64]int64{}
	for _, entry := range r.designs {
		if _, ok := wanted[entry.design.Meeting.ID]; ok {
			counts[entry.design.Meeting.ID]++
		}
	}
	return counts, nil
}

// Count returns the number of stored designs.
func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.designs)), nil
}

func (r *Repository) sorted(keep func(*storedDesign) bool) []*projection.Projection[*domain.Design] {
	entries := make([]*storedDesign, 0, len(r.designs))
	for _, entry := range r.designs {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].metadata.CreatedAt, entries[j].metadata.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return entries[i].design.ID > entries[j].design.ID
	})
	list := make([]*projection.Projection[*domain.Design], 0, len(entries))
	for _, entry := range entries {
		list = append(list, projectionCopy(entry))
	}
	return list
}

func projectionCopy(entry *storedDesign) *projection.Projection[*domain.Design] {
	return projection.New(entry.design.Clone(), entry.metadata.CreatedAt, entry.metadata.UpdatedAt)
}
