package types

import (
	"time"

	designports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/domain"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

// MeetingProjection is a meeting plus its persistence metadata.
type MeetingProjection = projection.Projection[*domain.Meeting]

// DesignDraftInput describes one design captured while recording a meeting.
type DesignDraftInput struct {
	ImageURL    string
	FinalPrice  int64
	Category    *string
	Shortlisted bool
}

// RecordMeetingInput carries a new meeting and the designs shown during it.
type RecordMeetingInput struct {
	IdempotencyKey string
	VendorName     string
	Location       string
	HeldAt         *time.Time
	Notes          string
	Designs        []DesignDraftInput
}

// MeetingDetail is a meeting with all of its designs.
type MeetingDetail struct {
	Meeting *MeetingProjection
	Designs []*designports.DesignProjection
}

// MeetingSummary is a meeting with its current design count.
type MeetingSummary struct {
	Meeting     *MeetingProjection
	DesignCount int64
}
