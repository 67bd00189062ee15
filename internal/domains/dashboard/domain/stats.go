package domain

// Stats is the headline summary shown above the design library.
type Stats struct {
	TotalMeetings int64
	TotalDesigns  int64
}
