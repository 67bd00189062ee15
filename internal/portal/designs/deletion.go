package designs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-design-library/internal/portal/notify"
)

// State is the position of a DeletionFlow.
type State int

const (
	StateIdle State = iota
	StateConfirming
	StateDeleting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateDeleting:
		return "deleting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrFlowBusy is returned by RequestDelete outside the idle state.
	ErrFlowBusy = errors.New("deletion already requested")
	// ErrNotConfirming is returned by Confirm and Cancel outside the confirming state.
	ErrNotConfirming = errors.New("deletion not awaiting confirmation")
)

// Outcome describes a finished Confirm. RefreshErr collects failures of the follow-up
// stats and list refreshes; they never turn a deletion into a failure.
type Outcome struct {
	State      State
	Err        error
	RefreshErr error
}

// DeletionFlow serializes deletion of one design: at most one request is in flight.
type DeletionFlow struct {
	id      int64
	library *Library

	mu    sync.Mutex
	state State
}

// ID is the design this flow deletes.
func (f *DeletionFlow) ID() int64 { return f.id }

// State reports the current state.
func (f *DeletionFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// RequestDelete opens the confirmation step.
func (f *DeletionFlow) RequestDelete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return ErrFlowBusy
	}
	f.state = StateConfirming
	return nil
}

// Cancel closes the confirmation step without deleting.
func (f *DeletionFlow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateConfirming {
		return ErrNotConfirming
	}
	f.state = StateIdle
	return nil
}

// Confirm issues the delete request. On success the user is notified, then the shared stats
// and the list are refreshed concurrently. On failure the user gets one error notification and
// nothing is invalidated. The flow is idle again when Confirm returns.
func (f *DeletionFlow) Confirm(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.state != StateConfirming {
		f.mu.Unlock()
		return Outcome{}, ErrNotConfirming
	}
	f.state = StateDeleting
	f.mu.Unlock()
	defer f.reset()

	l := f.library
	if err := l.client.DeleteDesign(ctx, f.id); err != nil {
		l.logger.LogAttrs(ctx, slog.LevelError, "failed to delete design", slog.Int64("design.id", f.id), slog.String("error", err.Error()))
		l.notifier.Notify(notify.Error(deleteFailedMessage))
		return Outcome{State: StateFailed, Err: err}, nil
	}
	l.deleted(f.id)
	l.notifier.Notify(notify.Success(deletedTitle, deletedMessage))

	var statsErr, listErr error
	var g errgroup.Group
	g.Go(func() error {
		if l.stats == nil {
			return nil
		}
		if _, err := l.stats.Refresh(ctx); err != nil {
			statsErr = fmt.Errorf("refresh stats: %w", err)
		}
		return statsErr
	})
	g.Go(func() error {
		if err := l.reload(ctx); err != nil {
			listErr = fmt.Errorf("reload designs: %w", err)
		}
		return listErr
	})

	outcome := Outcome{State: StateDone}
	if err := g.Wait(); err != nil {
		outcome.RefreshErr = errors.Join(statsErr, listErr)
		l.logger.LogAttrs(ctx, slog.LevelWarn, "design deleted but refresh failed",
			slog.Int64("design.id", f.id), slog.String("error", outcome.RefreshErr.Error()))
	}
	return outcome, nil
}

func (f *DeletionFlow) reset() {
	f.mu.Lock()
	f.state = StateIdle
	f.mu.Unlock()
}
