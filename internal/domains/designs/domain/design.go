package domain

import (
	"errors"
	"net/url"
	"strings"
)

// MeetingRef is the read-only projection of the meeting a design originated from.
type MeetingRef struct {
	ID         int64
	VendorName string
	Location   string
}

// Design is a persisted image plus pricing metadata for one garment option.
type Design struct {
	ID          int64
	ImageURL    string
	FinalPrice  int64 // minor currency units
	Category    Category
	Shortlisted bool
	Meeting     MeetingRef
}

var (
	ErrEmptyImage     = errors.New("design image url is required")
	ErrInvalidImage   = errors.New("design image url must be an absolute http(s) url")
	ErrNegativePrice  = errors.New("design final price must be greater or equal to zero")
	ErrMissingMeeting = errors.New("design must belong to a meeting")
)

// NewDesign validates the invariants and builds a Design.
func NewDesign(id int64, imageURL string, finalPrice int64, meeting MeetingRef) (*Design, error) {
	d := &Design{ID: id}
	if err := d.ReplaceImage(imageURL); err != nil {
		return nil, err
	}
	if err := d.Reprice(finalPrice); err != nil {
		return nil, err
	}
	if err := d.AttachMeeting(meeting); err != nil {
		return nil, err
	}
	return d, nil
}

// ReplaceImage stores a new image reference.
func (d *Design) ReplaceImage(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyImage
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ErrInvalidImage
	}
	d.ImageURL = raw
	return nil
}

// Reprice sets the final price in minor units.
func (d *Design) Reprice(minor int64) error {
	if minor < 0 {
		return ErrNegativePrice
	}
	d.FinalPrice = minor
	return nil
}

// Categorize replaces the optional category.
func (d *Design) Categorize(c Category) {
	d.Category = c
}

// Shortlist flags or unflags the design.
func (d *Design) Shortlist(on bool) {
	d.Shortlisted = on
}

// AttachMeeting links the design to its originating meeting.
func (d *Design) AttachMeeting(ref MeetingRef) error {
	if ref.ID <= 0 {
		return ErrMissingMeeting
	}
	d.Meeting = ref
	return nil
}

// Clone returns a copy safe to hand across adapter boundaries.
func (d *Design) Clone() *Design {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}
