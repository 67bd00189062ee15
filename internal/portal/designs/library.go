// Package designs keeps the portal's view of the design library and drives deletions.
package designs

import (
	"context"
	"io"
	"log/slog"
	"sync"

	dashboarddomain "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
	designports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	"github.com/Apurer/go-gin-design-library/internal/portal/notify"
)

const (
	loadFailedMessage   = "Failed to load designs. Please refresh the page."
	deleteFailedMessage = "Failed to delete design. Please try again."
	deletedTitle        = "Design deleted!"
	deletedMessage      = "The design has been removed from your library."
)

// Client is the slice of the library API the portal needs.
type Client interface {
	ListDesigns(ctx context.Context) ([]*designports.DesignProjection, error)
	DeleteDesign(ctx context.Context, id int64) error
}

// StatsRefresher invalidates and recomputes the shared dashboard stats.
type StatsRefresher interface {
	Refresh(ctx context.Context) (dashboarddomain.Stats, error)
}

// Library holds the last successfully fetched design list.
type Library struct {
	client   Client
	stats    StatsRefresher
	notifier notify.Notifier
	logger   *slog.Logger

	mu      sync.RWMutex
	designs []*designports.DesignProjection
	loaded  bool
	flows   map[int64]*DeletionFlow

	// gen advances on every fetch start and every successful delete. A fetch result is kept
	// only when it started after both the last stored fetch and the last delete.
	gen       uint64
	storedGen uint64
	deleteGen uint64
}

type Option func(*Library)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLibrary wires the list fetcher with its collaborators.
func NewLibrary(client Client, stats StatsRefresher, notifier notify.Notifier, opts ...Option) *Library {
	l := &Library{
		client:   client,
		stats:    stats,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		flows:    map[int64]*DeletionFlow{},
	}
	if l.notifier == nil {
		l.notifier = notify.NotifierFunc(func(notify.Notification) {})
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the list and replaces the current one. On failure the user is notified once
// and the previous list stays in place.
func (l *Library) Load(ctx context.Context) error {
	if err := l.reload(ctx); err != nil {
		l.notifier.Notify(notify.Error(loadFailedMessage))
		return err
	}
	return nil
}

func (l *Library) reload(ctx context.Context) error {
	l.mu.Lock()
	l.gen++
	startGen := l.gen
	l.mu.Unlock()

	list, err := l.client.ListDesigns(ctx)
	if err != nil {
		l.logger.LogAttrs(ctx, slog.LevelError, "failed to load designs", slog.String("error", err.Error()))
		return err
	}

	l.mu.Lock()
	stale := startGen < l.deleteGen || startGen < l.storedGen
	if !stale {
		l.designs = list
		l.loaded = true
		l.storedGen = startGen
	}
	l.mu.Unlock()
	if stale {
		l.logger.LogAttrs(ctx, slog.LevelDebug, "dropped stale design list", slog.Uint64("fetch.gen", startGen))
		return nil
	}
	l.logger.LogAttrs(ctx, slog.LevelDebug, "designs loaded", slog.Int("count", len(list)))
	return nil
}

// deleted records an acknowledged delete: fetches already in flight can no longer land and the
// design leaves the held list right away.
func (l *Library) deleted(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.deleteGen = l.gen
	kept := make([]*designports.DesignProjection, 0, len(l.designs))
	for _, d := range l.designs {
		if d.Entity == nil || d.Entity.ID != id {
			kept = append(kept, d)
		}
	}
	l.designs = kept
}

// Designs returns the current list in server order.
func (l *Library) Designs() []*designports.DesignProjection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*designports.DesignProjection(nil), l.designs...)
}

// Loaded reports whether any fetch has succeeded.
func (l *Library) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// DeletionFlow returns the flow for one design, creating it on first use.
func (l *Library) DeletionFlow(id int64) *DeletionFlow {
	l.mu.Lock()
	defer l.mu.Unlock()
	flow, ok := l.flows[id]
	if !ok {
		flow = &DeletionFlow{id: id, library: l}
		l.flows[id] = flow
	}
	return flow
}
