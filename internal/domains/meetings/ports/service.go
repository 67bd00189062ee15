package ports

import (
	"context"

	meetingtypes "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application/types"
)

// Service defines the meeting use cases exposed to adapters.
type Service interface {
	RecordMeeting(ctx context.Context, input meetingtypes.RecordMeetingInput) (*meetingtypes.MeetingDetail, error)
	List(ctx context.Context) ([]*meetingtypes.MeetingSummary, error)
	GetByID(ctx context.Context, id int64) (*meetingtypes.MeetingDetail, error)
}
