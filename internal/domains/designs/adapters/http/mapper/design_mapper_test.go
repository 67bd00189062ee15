package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

func TestDesignJSONShape(t *testing.T) {
	d, err := domain.NewDesign(3, "https://img.example.com/3.jpg", 99900, domain.MeetingRef{ID: 9, VendorName: "Loom Co", Location: "Surat"})
	require.NoError(t, err)
	at := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	body, err := json.Marshal(FromProjection(projection.New(d, at, at)))
	require.NoError(t, err)

	require.JSONEq(t, `{
		"id": 3,
		"imageUrl": "https://img.example.com/3.jpg",
		"finalPrice": 99900,
		"category": null,
		"isShortlisted": false,
		"meeting": {"id": 9, "vendorName": "Loom Co", "location": "Surat"},
		"createdAt": "2024-04-02T10:00:00Z",
		"updatedAt": "2024-04-02T10:00:00Z"
	}`, string(body))
}

func TestToProjectionValidates(t *testing.T) {
	var payload Design
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"imageUrl":"https://img.example.com/1.jpg","finalPrice":5,"category":"Lehenga","isShortlisted":true,"meeting":{"id":2,"vendorName":"A","location":"B"}}`), &payload))

	p, err := ToProjection(payload)
	require.NoError(t, err)
	label, ok := p.Entity.Category.Get()
	require.True(t, ok)
	require.Equal(t, "Lehenga", label)
	require.True(t, p.Entity.Shortlisted)

	payload.FinalPrice = -1
	_, err = ToProjection(payload)
	require.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestFromProjectionListNeverNil(t *testing.T) {
	list := FromProjectionList([]*ports.DesignProjection(nil))
	require.NotNil(t, list)
	require.Empty(t, list)
}
