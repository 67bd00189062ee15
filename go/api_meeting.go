package libraryserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	meetinghttpmapper "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/http/mapper"
	meetingsports "github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
)

// IdempotencyKeyHeader lets clients retry RecordMeeting safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// MeetingAPI wires HTTP transport with the meetings bounded context service.
type MeetingAPI struct {
	service meetingsports.Service
}

// NewMeetingAPI creates a MeetingAPI backed by the provided service.
func NewMeetingAPI(service meetingsports.Service) MeetingAPI {
	return MeetingAPI{service: service}
}

// Get /api/meetings
// Recent meetings with their design counts
func (api *MeetingAPI) ListMeetings(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok(meetinghttpmapper.FromSummaries(result)))
}

// Get /api/meetings/:meetingId
// Find a meeting by ID
func (api *MeetingAPI) GetMeetingById(c *gin.Context) {
	id, valid := parseIDParam(c, "meetingId")
	if !valid {
		return
	}
	detail, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok(meetinghttpmapper.FromDetail(detail)))
}

// Post /api/meetings
// Record a new meeting together with the designs shown
func (api *MeetingAPI) RecordMeeting(c *gin.Context) {
	var payload meetinghttpmapper.RecordMeetingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	detail, err := api.service.RecordMeeting(c.Request.Context(), meetinghttpmapper.ToRecordMeetingInput(payload, key))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ok(meetinghttpmapper.FromDetail(detail)))
}
