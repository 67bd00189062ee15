package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu       sync.RWMutex
	meetings map[int64]*storedMeeting
	nextID   int64
	now      func() time.Time
}

type storedMeeting struct {
	meeting  *domain.Meeting
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		meetings: map[int64]*storedMeeting{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a meeting, assigning an id when it has none.
func (r *Repository) Save(_ context.Context, meeting *domain.Meeting) (*projection.Projection[*domain.Meeting], error) {
	if meeting == nil {
		return nil, errors.New("cannot save nil meeting")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := meeting.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.meetings[clone.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedMeeting{meeting: clone, metadata: metadata}
	r.meetings[clone.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a meeting if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Meeting], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.meetings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Exists reports whether a meeting with the id is stored.
func (r *Repository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.meetings[id]
	return ok, nil
}

// List returns all meetings ordered by meeting date, latest first.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Meeting], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*storedMeeting, 0, len(r.meetings))
	for _, entry := range r.meetings {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].meeting.HeldAt, entries[j].meeting.HeldAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return entries[i].meeting.ID > entries[j].meeting.ID
	})
	list := make([]*projection.Projection[*domain.Meeting], 0, len(entries))
	for _, entry := range entries {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

// Count returns the number of stored meetings.
func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.meetings)), nil
}

func projectionCopy(entry *storedMeeting) *projection.Projection[*domain.Meeting] {
	return projection.New(entry.meeting.Clone(), entry.metadata.CreatedAt, entry.metadata.UpdatedAt)
}
