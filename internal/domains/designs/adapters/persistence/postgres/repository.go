package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	"github.com/Apurer/go-gin-design-library/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists designs in PostgreSQL using GORM-mapped columns.
// The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type designRecord struct {
	ID            int64      `gorm:"primaryKey;autoIncrement;column:id"`
	MeetingID     int64      `gorm:"column:meeting_id;not null;index"`
	ImageURL      string     `gorm:"column:image_url;not null"`
	FinalPrice    int64      `gorm:"column:final_price;not null"`
	Category      *string    `gorm:"column:category;size:64"`
	IsShortlisted bool       `gorm:"column:is_shortlisted;not null;default:false"`
	CreatedAt     time.Time  `gorm:"column:created_at;index"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	Meeting       meetingRow `gorm:"foreignKey:MeetingID;references:ID"`
}

func (designRecord) TableName() string { return "designs" }

// meetingRow is the read-only slice of the meetings table joined into design projections.
type meetingRow struct {
	ID         int64  `gorm:"primaryKey;column:id"`
	VendorName string `gorm:"column:vendor_name"`
	Location   string `gorm:"column:location"`
}

func (meetingRow) TableName() string { return "meetings" }

func newDesignRecord(d *domain.Design) designRecord {
	return designRecord{
		ID:            d.ID,
		MeetingID:     d.Meeting.ID,
		ImageURL:      d.ImageURL,
		FinalPrice:    d.FinalPrice,
		Category:      d.Category.Ptr(),
		IsShortlisted: d.Shortlisted,
	}
}

// Save inserts or updates a design; a zero id lets the database assign one.
func (r *Repository) Save(ctx context.Context, design *domain.Design) (*projection.Projection[*domain.Design], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if design == nil {
		return nil, errors.New("cannot save nil design")
	}
	record := newDesignRecord(design)
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"meeting_id":     record.MeetingID,
				"image_url":      record.ImageURL,
				"final_price":    record.FinalPrice,
				"category":       record.Category,
				"is_shortlisted": record.IsShortlisted,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("meeting %d: %w", record.MeetingID, domain.ErrMissingMeeting)
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a design with its meeting projection.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Design], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record designRecord
	if err := r.db.WithContext(ctx).Preload("Meeting").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Delete removes a design by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&designRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns every design, most recent first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Design], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []designRecord
	if err := r.ordered(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// ListByMeeting returns the designs of a single meeting.
func (r *Repository) ListByMeeting(ctx context.Context, meetingID int64) ([]*projection.Projection[*domain.Design], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []designRecord
	if err := r.ordered(ctx).Where("meeting_id = ?", meetingID).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// CountByMeeting aggregates design counts for the provided meetings in one query.
func (r *Repository) CountByMeeting(ctx context.Context, meetingIDs []int64) (map[int64]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	counts := map[int64]int64{}
	if len(meetingIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		MeetingID int64
		Total     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&designRecord{}).
		Select("meeting_id, COUNT(*) AS total").
		Where("meeting_id = ANY(?)", pq.Array(meetingIDs)).
		Group("meeting_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.MeetingID] = row.Total
	}
	return counts, nil
}

// Count returns the number of persisted designs.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&designRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Meeting").Order("created_at DESC").Order("id DESC")
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres design repository not configured")
	}
	return nil
}

func recordsToProjections(records []designRecord) []*projection.Projection[*domain.Design] {
	list := make([]*projection.Projection[*domain.Design], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *designRecord) *projection.Projection[*domain.Design] {
	return projection.New(record.toDomain(), record.CreatedAt, record.UpdatedAt)
}

func (r *designRecord) toDomain() *domain.Design {
	return &domain.Design{
		ID:          r.ID,
		ImageURL:    r.ImageURL,
		FinalPrice:  r.FinalPrice,
		Category:    domain.CategoryFromPtr(r.Category),
		Shortlisted: r.IsShortlisted,
		Meeting: domain.MeetingRef{
			ID:         r.MeetingID,
			VendorName: r.Meeting.VendorName,
			Location:   r.Meeting.Location,
		},
	}
}
