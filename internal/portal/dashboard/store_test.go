package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
)

func countingFetch(total *atomic.Int64, calls *atomic.Int32) FetchFunc {
	return func(context.Context) (domain.Stats, error) {
		calls.Add(1)
		return domain.Stats{TotalMeetings: 1, TotalDesigns: total.Load()}, nil
	}
}

func TestGetCachesUntilInvalidated(t *testing.T) {
	var total atomic.Int64
	var calls atomic.Int32
	total.Store(2)
	store := NewStore(countingFetch(&total, &calls))

	first, err := store.Get(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, first.TotalDesigns)
	_, err = store.Get(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, calls.Load())

	total.Store(1)
	stale, current := store.Peek()
	require.True(t, current)
	require.EqualValues(t, 2, stale.TotalDesigns)

	refreshed, err := store.Refresh(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, refreshed.TotalDesigns)
	require.EqualValues(t, 2, calls.Load())
}

func TestFetchErrorKeepsPreviousValue(t *testing.T) {
	boom := errors.New("offline")
	fail := false
	store := NewStore(func(context.Context) (domain.Stats, error) {
		if fail {
			return domain.Stats{}, boom
		}
		return domain.Stats{TotalDesigns: 5}, nil
	})
	_, err := store.Get(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = store.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	last, current := store.Peek()
	require.False(t, current)
	require.EqualValues(t, 5, last.TotalDesigns)
}

func TestSlowOldFetchDoesNotOverwriteNewerValue(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var n atomic.Int32
	store := NewStore(func(context.Context) (domain.Stats, error) {
		if n.Add(1) == 1 {
			close(started)
			<-release
			return domain.Stats{TotalDesigns: 10}, nil
		}
		return domain.Stats{TotalDesigns: 9}, nil
	})

	var wg sync.WaitGroup
	var old domain.Stats
	wg.Add(1)
	go func() {
		defer wg.Done()
		old, _ = store.Get(context.Background())
	}()
	<-started

	fresh, err := store.Refresh(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 9, fresh.TotalDesigns)

	close(release)
	wg.Wait()
	require.EqualValues(t, 9, old.TotalDesigns)
	cached, current := store.Peek()
	require.True(t, current)
	require.EqualValues(t, 9, cached.TotalDesigns)
}

func TestSubscribeCoalescesSignals(t *testing.T) {
	store := NewStore(func(context.Context) (domain.Stats, error) { return domain.Stats{}, nil })
	ch, unsubscribe := store.Subscribe()

	store.Invalidate()
	store.Invalidate()
	require.Len(t, ch, 1)
	<-ch

	unsubscribe()
	unsubscribe()
	store.Invalidate()
	require.Len(t, ch, 0)
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetchErr := make(chan error, 1)
	store := NewStore(func(ctx context.Context) (domain.Stats, error) {
		close(started)
		<-release
		fetchErr <- ctx.Err()
		return domain.Stats{TotalMeetings: 3, TotalDesigns: 4}, nil
	})

	impatient, cancel := context.WithCancel(context.Background())
	impatientErr := make(chan error, 1)
	go func() {
		_, err := store.Get(impatient)
		impatientErr <- err
	}()
	<-started

	patient := make(chan domain.Stats, 1)
	go func() {
		stats, err := store.Get(context.Background())
		if err == nil {
			patient <- stats
		}
	}()

	cancel()
	require.ErrorIs(t, <-impatientErr, context.Canceled)

	close(release)
	require.NoError(t, <-fetchErr)
	select {
	case stats := <-patient:
		require.EqualValues(t, 4, stats.TotalDesigns)
	case <-time.After(time.Second):
		t.Fatal("second caller never received the shared stats")
	}
	cached, current := store.Peek()
	require.True(t, current)
	require.EqualValues(t, 3, cached.TotalMeetings)
}

func TestFetchTimeoutBoundsSharedPull(t *testing.T) {
	store := NewStore(func(ctx context.Context) (domain.Stats, error) {
		<-ctx.Done()
		return domain.Stats{}, ctx.Err()
	}, WithFetchTimeout(10*time.Millisecond))

	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
