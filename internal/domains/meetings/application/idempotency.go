package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	meetingtypes "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application/types"
)

type normalizedRecordMeetingInput struct {
	VendorName string                 `json:"vendorName"`
	Location   string                 `json:"location"`
	HeldAt     *string                `json:"heldAt"`
	Notes      string                 `json:"notes"`
	Designs    []normalizedDesignDraft `json:"designs"`
}

type normalizedDesignDraft struct {
	ImageURL    string  `json:"imageUrl"`
	FinalPrice  int64   `json:"finalPrice"`
	Category    *string `json:"category"`
	Shortlisted bool    `json:"isShortlisted"`
}

// FingerprintRecordMeeting builds a deterministic hash of the record-meeting payload (excluding the idempotency key).
func FingerprintRecordMeeting(input meetingtypes.RecordMeetingInput) (string, error) {
	payload, err := json.Marshal(normalizeRecordMeetingInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeRecordMeetingInput(input meetingtypes.RecordMeetingInput) normalizedRecordMeetingInput {
	normalized := normalizedRecordMeetingInput{
		VendorName: strings.TrimSpace(input.VendorName),
		Location:   strings.TrimSpace(input.Location),
		Notes:      strings.TrimSpace(input.Notes),
		Designs:    make([]normalizedDesignDraft, 0, len(input.Designs)),
	}
	if input.HeldAt != nil {
		at := input.HeldAt.UTC().Format(time.RFC3339Nano)
		normalized.HeldAt = &at
	}
	for _, draft := range input.Designs {
		entry := normalizedDesignDraft{
			ImageURL:    strings.TrimSpace(draft.ImageURL),
			FinalPrice:  draft.FinalPrice,
			Shortlisted: draft.Shortlisted,
		}
		if draft.Category != nil {
			if label := strings.TrimSpace(*draft.Category); label != "" {
				entry.Category = &label
			}
		}
		normalized.Designs = append(normalized.Designs, entry)
	}
	return normalized
}
