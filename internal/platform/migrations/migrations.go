package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&meetingRecord{},
		&designRecord{},
		&meetingIdempotencyRecord{},
	)
}

// Meeting schema mirrors the meetings Postgres adapter.
type meetingRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	VendorName string    `gorm:"column:vendor_name;not null"`
	Location   string    `gorm:"column:location"`
	HeldAt     time.Time `gorm:"column:held_at;not null;index"`
	Notes      string    `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (meetingRecord) TableName() string { return "meetings" }

// Design schema mirrors the designs Postgres adapter. Designs go away with their meeting.
type designRecord struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;column:id"`
	MeetingID     int64          `gorm:"column:meeting_id;not null;index"`
	Meeting       *meetingRecord `gorm:"foreignKey:MeetingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ImageURL      string         `gorm:"column:image_url;not null"`
	FinalPrice    int64          `gorm:"column:final_price;not null;check:chk_designs_final_price,final_price >= 0"`
	Category      *string        `gorm:"column:category;size:64"`
	IsShortlisted bool           `gorm:"column:is_shortlisted;not null;default:false"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (designRecord) TableName() string { return "designs" }

// Idempotency schema mirrors the meetings idempotency store.
type meetingIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	MeetingID   int64     `gorm:"column:meeting_id;index"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (meetingIdempotencyRecord) TableName() string { return "meeting_idempotency_keys" }
