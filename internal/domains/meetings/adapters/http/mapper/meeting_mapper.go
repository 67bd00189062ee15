package mapper

import (
	"time"

	designmapper "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/http/mapper"
	meetingtypes "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application/types"
)

// Meeting is the HTTP representation of a vendor meeting.
type Meeting struct {
	ID         int64     `json:"id"`
	VendorName string    `json:"vendorName"`
	Location   string    `json:"location"`
	HeldAt     time.Time `json:"heldAt"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// MeetingSummary is a meeting row in the recent-meetings listing.
type MeetingSummary struct {
	Meeting
	DesignCount int64 `json:"designCount"`
}

// MeetingDetail is a meeting with its designs.
type MeetingDetail struct {
	Meeting
	Designs []designmapper.Design `json:"designs"`
}

// DesignDraft is one design submitted while recording a meeting.
type DesignDraft struct {
	ImageURL      string  `json:"imageUrl"`
	FinalPrice    int64   `json:"finalPrice"`
	Category      *string `json:"category,omitempty"`
	IsShortlisted bool    `json:"isShortlisted,omitempty"`
}

// RecordMeetingRequest is the POST /api/meetings payload.
type RecordMeetingRequest struct {
	VendorName string        `json:"vendorName"`
	Location   string        `json:"location,omitempty"`
	HeldAt     *time.Time    `json:"heldAt,omitempty"`
	Notes      string        `json:"notes,omitempty"`
	Designs    []DesignDraft `json:"designs,omitempty"`
}

// ToRecordMeetingInput maps the request payload into the application input.
func ToRecordMeetingInput(req RecordMeetingRequest, idempotencyKey string) meetingtypes.RecordMeetingInput {
	input := meetingtypes.RecordMeetingInput{
		IdempotencyKey: idempotencyKey,
		VendorName:     req.VendorName,
		Location:       req.Location,
		HeldAt:         req.HeldAt,
		Notes:          req.Notes,
		Designs:        make([]meetingtypes.DesignDraftInput, 0, len(req.Designs)),
	}
	for _, d := range req.Designs {
		input.Designs = append(input.Designs, meetingtypes.DesignDraftInput{
			ImageURL:    d.ImageURL,
			FinalPrice:  d.FinalPrice,
			Category:    d.Category,
			Shortlisted: d.IsShortlisted,
		})
	}
	return input
}

func fromMeetingProjection(p *meetingtypes.MeetingProjection) Meeting {
	if p == nil || p.Entity == nil {
		return Meeting{}
	}
	return Meeting{
		ID:         p.Entity.ID,
		VendorName: p.Entity.VendorName,
		Location:   p.Entity.Location,
		HeldAt:     p.Entity.HeldAt,
		Notes:      p.Entity.Notes,
		CreatedAt:  p.Metadata.CreatedAt,
		UpdatedAt:  p.Metadata.UpdatedAt,
	}
}

// FromDetail maps a meeting with its designs.
func FromDetail(detail *meetingtypes.MeetingDetail) MeetingDetail {
	if detail == nil {
		return MeetingDetail{Designs: []designmapper.Design{}}
	}
	return MeetingDetail{
		Meeting: fromMeetingProjection(detail.Meeting),
		Designs: designmapper.FromProjectionList(detail.Designs),
	}
}

// FromSummaries maps the recent-meetings listing.
func FromSummaries(list []*meetingtypes.MeetingSummary) []MeetingSummary {
	result := make([]MeetingSummary, 0, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		result = append(result, MeetingSummary{Meeting: fromMeetingProjection(s.Meeting), DesignCount: s.DesignCount})
	}
	return result
}
