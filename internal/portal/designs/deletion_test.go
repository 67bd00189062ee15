package designs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libraryserver "github.com/Apurer/go-gin-design-library/go"
	libraryclient "github.com/Apurer/go-gin-design-library/internal/clients/http/library"
	dashboardapp "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/application"
	dashboarddomain "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
	designsmemory "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/memory"
	designsworkflows "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/workflows"
	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	designdomain "github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	designports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	meetingsmemory "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/memory"
	meetingsapp "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application"
	meetingtypes "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application/types"
	"github.com/Apurer/go-gin-design-library/internal/portal/dashboard"
	"github.com/Apurer/go-gin-design-library/internal/portal/notify"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

type fixture struct {
	library  *Library
	stats    *dashboard.Store
	recorder *notify.Recorder
	ids      []int64
}

// newFixture serves the real API over httptest with two designs A and B recorded.
// failDelete makes DELETE requests for that id answer 500 before reaching the API.
func newFixture(t *testing.T, failDelete string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	designRepo := designsmemory.NewRepository()
	meetingRepo := meetingsmemory.NewRepository()
	designService := designsapp.NewService(designRepo)
	meetingService := meetingsapp.NewService(meetingRepo, designRepo)
	router := libraryserver.NewRouterWithGinEngine(gin.New(), libraryserver.ApiHandleFunctions{
		DesignAPI:    libraryserver.NewDesignAPI(designService, designsworkflows.NewInlineDesignWorkflows(designService)),
		MeetingAPI:   libraryserver.NewMeetingAPI(meetingService),
		DashboardAPI: libraryserver.NewDashboardAPI(dashboardapp.NewService(meetingRepo, designRepo)),
	})

	heldAt := time.Date(2024, 2, 14, 11, 0, 0, 0, time.UTC)
	detail, err := meetingService.RecordMeeting(context.Background(), meetingtypes.RecordMeetingInput{
		VendorName: "Silk House",
		Location:   "Jaipur",
		HeldAt:     &heldAt,
		Designs: []meetingtypes.DesignDraftInput{
			{ImageURL: "https://img.example.com/a.jpg", FinalPrice: 1250000},
			{ImageURL: "https://img.example.com/b.jpg", FinalPrice: 480000},
		},
	})
	require.NoError(t, err)
	ids := make([]int64, 0, len(detail.Designs))
	for _, d := range detail.Designs {
		ids = append(ids, d.Entity.ID)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failDelete != "" && r.Method == http.MethodDelete && r.URL.Path == "/api/designs/"+failDelete {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := libraryclient.NewClient(srv.URL, libraryclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	stats := dashboard.NewStore(client.Stats)
	recorder := &notify.Recorder{}
	return &fixture{
		library:  NewLibrary(client, stats, recorder),
		stats:    stats,
		recorder: recorder,
		ids:      ids,
	}
}

func designIDs(list []*designports.DesignProjection) []int64 {
	ids := make([]int64, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.Entity.ID)
	}
	return ids
}

func TestConfirmedDeleteRemovesDesignAndRefreshesStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	require.NoError(t, f.library.Load(ctx))
	require.ElementsMatch(t, f.ids, designIDs(f.library.Designs()))

	before, err := f.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, dashboarddomain.Stats{TotalMeetings: 1, TotalDesigns: 2}, before)

	flow := f.library.DeletionFlow(f.ids[0])
	require.NoError(t, flow.RequestDelete())
	assert.Equal(t, StateConfirming, flow.State())

	outcome, err := flow.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateDone, outcome.State)
	assert.NoError(t, outcome.Err)
	assert.NoError(t, outcome.RefreshErr)
	assert.Equal(t, StateIdle, flow.State())

	assert.Equal(t, []int64{f.ids[1]}, designIDs(f.library.Designs()))
	after, ok := f.stats.Peek()
	require.True(t, ok)
	assert.Equal(t, before.TotalDesigns-1, after.TotalDesigns)
	assert.Equal(t, before.TotalMeetings, after.TotalMeetings)

	notes := f.recorder.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.SeveritySuccess, notes[0].Severity)
	assert.Equal(t, "Design deleted!", notes[0].Title)
}

func TestFailedDeleteKeepsListAndNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2")
	require.Equal(t, int64(2), f.ids[1], "memory repository assigns sequential ids")
	require.NoError(t, f.library.Load(ctx))
	before, err := f.stats.Get(ctx)
	require.NoError(t, err)
	listBefore := designIDs(f.library.Designs())

	flow := f.library.DeletionFlow(2)
	require.NoError(t, flow.RequestDelete())
	outcome, err := flow.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, outcome.State)

	var serverErr *libraryclient.ServerError
	require.ErrorAs(t, outcome.Err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.Status)
	assert.Equal(t, StateIdle, flow.State())

	assert.Equal(t, listBefore, designIDs(f.library.Designs()))
	cached, ok := f.stats.Peek()
	require.True(t, ok)
	assert.Equal(t, before, cached)

	assert.Equal(t, 1, f.recorder.Count(notify.SeverityError))
	assert.Len(t, f.recorder.Notifications(), 1)
	assert.Equal(t, "Failed to delete design. Please try again.", f.recorder.Notifications()[0].Description)
}

func TestDeletingUnknownDesignFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	require.NoError(t, f.library.Load(ctx))

	flow := f.library.DeletionFlow(999)
	require.NoError(t, flow.RequestDelete())
	outcome, err := flow.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, outcome.State)

	var serverErr *libraryclient.ServerError
	require.ErrorAs(t, outcome.Err, &serverErr)
	assert.Equal(t, http.StatusNotFound, serverErr.Status)
	assert.Len(t, f.library.Designs(), 2)
}

func TestEmptyLibraryLoads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	designRepo := designsmemory.NewRepository()
	meetingRepo := meetingsmemory.NewRepository()
	designService := designsapp.NewService(designRepo)
	router := libraryserver.NewRouterWithGinEngine(gin.New(), libraryserver.ApiHandleFunctions{
		DesignAPI:    libraryserver.NewDesignAPI(designService, nil),
		DashboardAPI: libraryserver.NewDashboardAPI(dashboardapp.NewService(meetingRepo, designRepo)),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	client, err := libraryclient.NewClient(srv.URL, libraryclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	lib := NewLibrary(client, nil, nil)
	require.NoError(t, lib.Load(context.Background()))
	assert.True(t, lib.Loaded())
	assert.Empty(t, lib.Designs())
}

type stubClient struct {
	list      []*designports.DesignProjection
	listErr   error
	deleteErr error
	release   chan struct{}
	entered   chan struct{}
}

func (s *stubClient) ListDesigns(context.Context) ([]*designports.DesignProjection, error) {
	return s.list, s.listErr
}

func (s *stubClient) DeleteDesign(context.Context, int64) error {
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	return s.deleteErr
}

type stubStats struct {
	err   error
	calls int
}

func (s *stubStats) Refresh(context.Context) (dashboarddomain.Stats, error) {
	s.calls++
	return dashboarddomain.Stats{}, s.err
}

func TestLoadFailureNotifiesAndKeepsPreviousList(t *testing.T) {
	client := &stubClient{list: []*designports.DesignProjection{}}
	recorder := &notify.Recorder{}
	lib := NewLibrary(client, nil, recorder)
	require.NoError(t, lib.Load(context.Background()))

	client.listErr = &libraryclient.TransportError{Op: "list designs", Err: errors.New("connection refused")}
	err := lib.Load(context.Background())
	var transportErr *libraryclient.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, lib.Loaded())

	notes := recorder.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.Error("Failed to load designs. Please refresh the page."), notes[0])
}

func TestRefreshFailuresAreReportedButDeletionSucceeds(t *testing.T) {
	client := &stubClient{listErr: errors.New("list down")}
	stats := &stubStats{err: errors.New("stats down")}
	recorder := &notify.Recorder{}
	lib := NewLibrary(client, stats, recorder)

	flow := lib.DeletionFlow(7)
	require.NoError(t, flow.RequestDelete())
	outcome, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, outcome.State)
	assert.ErrorContains(t, outcome.RefreshErr, "stats down")
	assert.ErrorContains(t, outcome.RefreshErr, "list down")
	assert.Equal(t, 1, stats.calls)

	assert.Equal(t, 1, recorder.Count(notify.SeveritySuccess))
	assert.Zero(t, recorder.Count(notify.SeverityError))
}

func TestFlowTransitions(t *testing.T) {
	lib := NewLibrary(&stubClient{}, nil, nil)
	flow := lib.DeletionFlow(3)
	assert.Same(t, flow, lib.DeletionFlow(3))
	assert.Equal(t, int64(3), flow.ID())

	_, err := flow.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNotConfirming)
	assert.ErrorIs(t, flow.Cancel(), ErrNotConfirming)

	require.NoError(t, flow.RequestDelete())
	assert.ErrorIs(t, flow.RequestDelete(), ErrFlowBusy)
	require.NoError(t, flow.Cancel())
	assert.Equal(t, StateIdle, flow.State())
	assert.Equal(t, "confirming", StateConfirming.String())
}

func TestOnlyOneDeleteInFlight(t *testing.T) {
	client := &stubClient{release: make(chan struct{}), entered: make(chan struct{})}
	lib := NewLibrary(client, nil, nil)
	flow := lib.DeletionFlow(5)
	require.NoError(t, flow.RequestDelete())

	done := make(chan Outcome, 1)
	go func() {
		outcome, err := flow.Confirm(context.Background())
		assert.NoError(t, err)
		done <- outcome
	}()
	<-client.entered

	assert.Equal(t, StateDeleting, flow.State())
	assert.ErrorIs(t, flow.RequestDelete(), ErrFlowBusy)
	_, err := flow.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNotConfirming)

	close(client.release)
	outcome := <-done
	assert.Equal(t, StateDone, outcome.State)
	assert.Equal(t, StateIdle, flow.State())
}

func stubDesigns(ids ...int64) []*designports.DesignProjection {
	at := time.Date(2024, 2, 14, 11, 0, 0, 0, time.UTC)
	list := make([]*designports.DesignProjection, 0, len(ids))
	for _, id := range ids {
		list = append(list, projection.New(&designdomain.Design{ID: id, ImageURL: "https://img.example.com/x.jpg"}, at, at))
	}
	return list
}

// gatedClient serves a mutable list; when gate is set the next ListDesigns takes its
// snapshot and then waits for the gate to close.
type gatedClient struct {
	mu      sync.Mutex
	ids     []int64
	gate    chan struct{}
	entered chan struct{}
}

func (c *gatedClient) ListDesigns(context.Context) ([]*designports.DesignProjection, error) {
	c.mu.Lock()
	snapshot := stubDesigns(c.ids...)
	gate, entered := c.gate, c.entered
	c.gate, c.entered = nil, nil
	c.mu.Unlock()
	if gate != nil {
		close(entered)
		<-gate
	}
	return snapshot, nil
}

func (c *gatedClient) DeleteDesign(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.ids[:0]
	for _, existing := range c.ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	c.ids = kept
	return nil
}

func TestLoadStartedBeforeDeleteCannotRestoreDeletedDesign(t *testing.T) {
	ctx := context.Background()
	client := &gatedClient{ids: []int64{1, 2}}
	lib := NewLibrary(client, nil, nil)
	require.NoError(t, lib.Load(ctx))

	client.mu.Lock()
	client.gate = make(chan struct{})
	client.entered = make(chan struct{})
	gate, entered := client.gate, client.entered
	client.mu.Unlock()

	loaded := make(chan error, 1)
	go func() { loaded <- lib.Load(ctx) }()
	<-entered

	flow := lib.DeletionFlow(1)
	require.NoError(t, flow.RequestDelete())
	outcome, err := flow.Confirm(ctx)
	require.NoError(t, err)
	require.Equal(t, StateDone, outcome.State)
	require.Equal(t, []int64{2}, designIDs(lib.Designs()))

	close(gate)
	require.NoError(t, <-loaded)
	assert.NotContains(t, designIDs(lib.Designs()), int64(1))
	assert.Equal(t, []int64{2}, designIDs(lib.Designs()))
}

func TestConfirmedDeleteDropsDesignEvenWhenReloadFails(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{list: stubDesigns(1, 2)}
	lib := NewLibrary(client, &stubStats{}, nil)
	require.NoError(t, lib.Load(ctx))

	client.listErr = errors.New("list down")
	flow := lib.DeletionFlow(1)
	require.NoError(t, flow.RequestDelete())
	outcome, err := flow.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateDone, outcome.State)
	assert.ErrorContains(t, outcome.RefreshErr, "reload designs: list down")
	assert.NotContains(t, outcome.RefreshErr.Error(), "refresh stats")
	assert.Equal(t, []int64{2}, designIDs(lib.Designs()))
}
