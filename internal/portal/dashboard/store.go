// Package dashboard holds the process-wide stats cache the portal pages share.
package dashboard

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
)

// DefaultFetchTimeout bounds one shared stats pull.
const DefaultFetchTimeout = 10 * time.Second

// FetchFunc pulls fresh stats from the API.
type FetchFunc func(ctx context.Context) (domain.Stats, error)

// Store caches dashboard stats until they are invalidated. Concurrent Gets for the same
// generation share one fetch.
type Store struct {
	fetch        FetchFunc
	fetchTimeout time.Duration
	group        singleflight.Group

	mu        sync.Mutex
	gen       uint64
	value     domain.Stats
	hasValue  bool
	loadedGen uint64
	subs      map[int]chan struct{}
	nextSub   int
}

type Option func(*Store)

// WithFetchTimeout overrides DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

func NewStore(fetch FetchFunc, opts ...Option) *Store {
	s := &Store{fetch: fetch, fetchTimeout: DefaultFetchTimeout, subs: map[int]chan struct{}{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns cached stats when they are current, otherwise pulls them.
func (s *Store) Get(ctx context.Context) (domain.Stats, error) {
	s.mu.Lock()
	if s.hasValue && s.loadedGen == s.gen {
		v := s.value
		s.mu.Unlock()
		return v, nil
	}
	startGen := s.gen
	s.mu.Unlock()

	// Shared by every caller of this generation. A caller whose context ends stops waiting
	// and the pull still lands in the cache.
	ch := s.group.DoChan(strconv.FormatUint(startGen, 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		fetched, err := s.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		return s.store(startGen, fetched), nil
	})
	select {
	case <-ctx.Done():
		return domain.Stats{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Stats{}, res.Err
		}
		return res.Val.(domain.Stats), nil
	}
}

func (s *Store) store(startGen uint64, fetched domain.Stats) domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasValue || startGen >= s.loadedGen {
		s.value = fetched
		s.hasValue = true
		s.loadedGen = startGen
		return fetched
	}
	// A fetch started after ours already landed; it is at least as fresh.
	return s.value
}

// Peek returns the last loaded stats and whether they are still current.
func (s *Store) Peek() (domain.Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue && s.loadedGen == s.gen
}

// Invalidate marks the cached stats stale and signals subscribers.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.gen++
	subs := make([]chan struct{}, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Refresh invalidates and pulls fresh stats.
func (s *Store) Refresh(ctx context.Context) (domain.Stats, error) {
	s.Invalidate()
	return s.Get(ctx)
}

// Subscribe returns a channel signalled after invalidations. Signals coalesce while unread.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
