package libraryserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboardapp "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/application"
	designhttpmapper "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/http/mapper"
	designsmemory "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/memory"
	designsworkflows "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/workflows"
	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	designsports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	dashboardmapper "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/adapters/http/mapper"
	meetinghttpmapper "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/http/mapper"
	meetingsmemory "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/memory"
	meetingsapp "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application"
	apierrors "github.com/Apurer/go-gin-design-library/internal/shared/errors"
)

type busyOrchestrator struct{}

func (busyOrchestrator) DeleteDesign(context.Context, int64) error {
	return designsports.ErrDeletionInProgress
}

func newTestRouter(t *testing.T, workflows designsports.WorkflowOrchestrator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	designRepo := designsmemory.NewRepository()
	meetingRepo := meetingsmemory.NewRepository()
	designService := designsapp.NewService(designRepo)
	if workflows == nil {
		workflows = designsworkflows.NewInlineDesignWorkflows(designService)
	}
	handlers := ApiHandleFunctions{
		DesignAPI:    NewDesignAPI(designService, workflows),
		MeetingAPI:   NewMeetingAPI(meetingsapp.NewService(meetingRepo, designRepo, meetingsapp.WithIdempotencyStore(meetingsmemory.NewIdempotencyStore()))),
		DashboardAPI: NewDashboardAPI(dashboardapp.NewService(meetingRepo, designRepo)),
	}
	return NewRouterWithGinEngine(gin.New(), handlers)
}

func do(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const meetingPayload = `{
	"vendorName": "Silk House",
	"location": "Jaipur",
	"heldAt": "2024-02-14T11:00:00Z",
	"designs": [
		{"imageUrl": "https://img.example.com/a.jpg", "finalPrice": 1250000, "category": "Bridal", "isShortlisted": true},
		{"imageUrl": "https://img.example.com/b.jpg", "finalPrice": 480000}
	]
}`

func listDesigns(t *testing.T, router http.Handler) []designhttpmapper.Design {
	t.Helper()
	rec := do(router, http.MethodGet, "/api/designs?t=1700000000000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body Envelope[[]designhttpmapper.Design]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Data
}

func stats(t *testing.T, router http.Handler) dashboardmapper.Stats {
	t.Helper()
	rec := do(router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body Envelope[dashboardmapper.Stats]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func TestListDesigns_EmptyLibrary(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := do(router, http.MethodGet, "/api/designs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
	assert.Equal(t, "no-store, no-cache, must-revalidate, max-age=0", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	assert.Equal(t, "0", rec.Header().Get("Expires"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := do(router, http.MethodGet, "/healthz", "", RequestIDHeader, "abc-123")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	require.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestDeleteDesign_RemovesFromListAndStats(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := do(router, http.MethodPost, "/api/meetings", meetingPayload)
	require.Equal(t, http.StatusCreated, rec.Code)

	designs := listDesigns(t, router)
	require.Len(t, designs, 2)
	before := stats(t, router)
	require.EqualValues(t, 1, before.TotalMeetings)
	require.EqualValues(t, 2, before.TotalDesigns)

	target := designs[0].ID
	rec = do(router, http.MethodDelete, "/api/designs/"+itoa(target), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())

	after := listDesigns(t, router)
	require.Len(t, after, 1)
	require.NotEqual(t, target, after[0].ID)
	require.Equal(t, before.TotalDesigns-1, stats(t, router).TotalDesigns)

	rec = do(router, http.MethodDelete, "/api/designs/"+itoa(target), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, apierrors.TypeNotFound, problem.Type)
}

func TestDeleteDesign_BadID(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := do(router, http.MethodDelete, "/api/designs/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodDelete, "/api/designs/0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteDesign_InProgress(t *testing.T) {
	router := newTestRouter(t, busyOrchestrator{})
	rec := do(router, http.MethodDelete, "/api/designs/1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetDesignById(t *testing.T) {
	router := newTestRouter(t, nil)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/meetings", meetingPayload).Code)
	id := listDesigns(t, router)[0].ID

	rec := do(router, http.MethodGet, "/api/designs/"+itoa(id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body Envelope[designhttpmapper.Design]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Silk House", body.Data.Meeting.VendorName)

	require.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/designs/999", "").Code)
}

func TestRecordMeeting_ValidationAndIdempotency(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/api/meetings", `{"vendorName":"","designs":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, apierrors.TypeValidation, problem.Type)

	require.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/meetings", `{`).Code)

	first := do(router, http.MethodPost, "/api/meetings", meetingPayload, IdempotencyKeyHeader, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	second := do(router, http.MethodPost, "/api/meetings", meetingPayload, IdempotencyKeyHeader, "key-1")
	require.Equal(t, http.StatusCreated, second.Code)

	var a, b Envelope[meetinghttpmapper.MeetingDetail]
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	require.Equal(t, a.Data.ID, b.Data.ID)
	require.Len(t, listDesigns(t, router), 2)

	changed := strings.Replace(meetingPayload, "Jaipur", "Surat", 1)
	require.Equal(t, http.StatusConflict, do(router, http.MethodPost, "/api/meetings", changed, IdempotencyKeyHeader, "key-1").Code)
}

func TestListAndGetMeetings(t *testing.T) {
	router := newTestRouter(t, nil)
	created := do(router, http.MethodPost, "/api/meetings", meetingPayload)
	require.Equal(t, http.StatusCreated, created.Code)
	var detail Envelope[meetinghttpmapper.MeetingDetail]
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &detail))

	rec := do(router, http.MethodGet, "/api/meetings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list Envelope[[]meetinghttpmapper.MeetingSummary]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	require.EqualValues(t, 2, list.Data[0].DesignCount)

	rec = do(router, http.MethodGet, "/api/meetings/"+itoa(detail.Data.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/meetings/77", "").Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
