package mapper

import "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"

// Stats is the HTTP representation of the dashboard summary.
type Stats struct {
	TotalMeetings int64 `json:"totalMeetings"`
	TotalDesigns  int64 `json:"totalDesigns"`
}

func FromDomain(s *domain.Stats) Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{TotalMeetings: s.TotalMeetings, TotalDesigns: s.TotalDesigns}
}

func (s Stats) ToDomain() domain.Stats {
	return domain.Stats{TotalMeetings: s.TotalMeetings, TotalDesigns: s.TotalDesigns}
}
