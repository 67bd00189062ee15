package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMeeting(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 0, 0, 0, time.FixedZone("IST", 19800))

	m, err := NewMeeting(0, "  Silk House ", " Jaipur ", at)
	require.NoError(t, err)
	require.Equal(t, "Silk House", m.VendorName)
	require.Equal(t, "Jaipur", m.Location)
	require.Equal(t, time.UTC, m.HeldAt.Location())

	_, err = NewMeeting(0, " ", "Jaipur", at)
	require.ErrorIs(t, err, ErrEmptyVendor)

	_, err = NewMeeting(0, "Silk House", "Jaipur", time.Time{})
	require.ErrorIs(t, err, ErrMissingHeldAt)
}
