package mapper

import (
	"time"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

// MeetingRef is the HTTP representation of the meeting a design came from.
type MeetingRef struct {
	ID         int64  `json:"id"`
	VendorName string `json:"vendorName"`
	Location   string `json:"location"`
}

// Design is the HTTP representation of a library design.
type Design struct {
	ID            int64           `json:"id"`
	ImageURL      string          `json:"imageUrl"`
	FinalPrice    int64           `json:"finalPrice"`
	Category      domain.Category `json:"category"`
	IsShortlisted bool            `json:"isShortlisted"`
	Meeting       MeetingRef      `json:"meeting"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt,omitempty"`
}

// FromProjection maps a stored design into its transport shape.
func FromProjection(p *ports.DesignProjection) Design {
	if p == nil || p.Entity == nil {
		return Design{}
	}
	d := p.Entity
	return Design{
		ID:            d.ID,
		ImageURL:      d.ImageURL,
		FinalPrice:    d.FinalPrice,
		Category:      d.Category,
		IsShortlisted: d.Shortlisted,
		Meeting: MeetingRef{
			ID:         d.Meeting.ID,
			VendorName: d.Meeting.VendorName,
			Location:   d.Meeting.Location,
		},
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a list, never returning nil so it encodes as [].
func FromProjectionList(list []*ports.DesignProjection) []Design {
	result := make([]Design, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

// ToProjection validates a transport design and rebuilds its projection.
func ToProjection(input Design) (*ports.DesignProjection, error) {
	d, err := domain.NewDesign(input.ID, input.ImageURL, input.FinalPrice, domain.MeetingRef{
		ID:         input.Meeting.ID,
		VendorName: input.Meeting.VendorName,
		Location:   input.Meeting.Location,
	})
	if err != nil {
		return nil, err
	}
	d.Categorize(input.Category)
	d.Shortlist(input.IsShortlisted)
	return projection.New(d, input.CreatedAt, input.UpdatedAt), nil
}
