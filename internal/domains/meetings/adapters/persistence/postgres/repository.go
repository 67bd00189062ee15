package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists meetings in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

// Save upserts the meeting; a zero id lets the database assign one.
func (r *Repository) Save(ctx context.Context, meeting *domain.Meeting) (*projection.Projection[*domain.Meeting], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, errors.New("cannot save nil meeting")
	}
	record := meetingRecord{
		ID:         meeting.ID,
		VendorName: meeting.VendorName,
		Location:   meeting.Location,
		HeldAt:     meeting.HeldAt,
		Notes:      meeting.Notes,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vendor_name", "location", "held_at", "notes", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID loads a meeting.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Meeting], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record meetingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// List returns meetings ordered by meeting date, latest first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Meeting], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []meetingRecord
	if err := r.db.WithContext(ctx).Order("held_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Meeting], 0, len(records))
	for i := range records {
		result = append(result, toProjection(&records[i]))
	}
	return result, nil
}

// Count returns the number of stored meetings.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&meetingRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres meeting repository not configured")
	}
	return nil
}

func toProjection(record *meetingRecord) *projection.Projection[*domain.Meeting] {
	meeting := &domain.Meeting{
		ID:         record.ID,
		VendorName: record.VendorName,
		Location:   record.Location,
		HeldAt:     record.HeldAt.UTC(),
		Notes:      record.Notes,
	}
	return projection.New(meeting, record.CreatedAt, record.UpdatedAt)
}
