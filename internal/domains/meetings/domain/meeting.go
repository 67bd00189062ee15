package domain

import (
	"errors"
	"strings"
	"time"
)

// Meeting is a recorded interaction with a vendor; designs hang off it.
type Meeting struct {
	ID         int64
	VendorName string
	Location   string
	HeldAt     time.Time
	Notes      string
}

var (
	ErrEmptyVendor   = errors.New("meeting vendor name is required")
	ErrMissingHeldAt = errors.New("meeting date is required")
)

// NewMeeting validates the invariants and builds a Meeting.
func NewMeeting(id int64, vendorName, location string, heldAt time.Time) (*Meeting, error) {
	m := &Meeting{ID: id, Location: strings.TrimSpace(location)}
	if err := m.RenameVendor(vendorName); err != nil {
		return nil, err
	}
	if err := m.Reschedule(heldAt); err != nil {
		return nil, err
	}
	return m, nil
}

// RenameVendor sets the vendor name.
func (m *Meeting) RenameVendor(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyVendor
	}
	m.VendorName = name
	return nil
}

// Reschedule sets when the meeting took place.
func (m *Meeting) Reschedule(at time.Time) error {
	if at.IsZero() {
		return ErrMissingHeldAt
	}
	m.HeldAt = at.UTC()
	return nil
}

// Annotate replaces the free-form notes.
func (m *Meeting) Annotate(notes string) {
	m.Notes = strings.TrimSpace(notes)
}

// Clone returns a copy safe to hand across adapter boundaries.
func (m *Meeting) Clone() *Meeting {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}
