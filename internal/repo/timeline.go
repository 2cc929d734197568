package repo

import (
	"fmt"
	"time"

	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TimelineRepo struct {
	db *gorm.DB
}

type TimelineRepoInterface interface {
	ReplaceCache(eventID uuid.UUID, timeline datatypes.JSON) (*models.EventTimeline, error)
	GetCache(eventID uuid.UUID) (*models.EventTimeline, error)
	CreateEntry(entry *models.TimelineEntry) error
	ListEntries(eventID uuid.UUID) ([]models.TimelineEntry, error)
	CountShowsBetween(eventIDs []uuid.UUID, from, to time.Time) (int64, error)
}

func NewTimelineRepository(db *gorm.DB) TimelineRepoInterface {
	return &TimelineRepo{db: db}
}

// ReplaceCache clears the event's cached timeline rows and inserts the new
// one. When the clear fails nothing is inserted, so duplicate live caches
// cannot appear. A failed insert after a successful clear leaves the event
// with no cache until the next generation succeeds.
func (r *TimelineRepo) ReplaceCache(eventID uuid.UUID, timeline datatypes.JSON) (*models.EventTimeline, error) {
	if err := r.db.Where("event_uuid = ?", eventID).Delete(&models.EventTimeline{}).Error; err != nil {
		return nil, fmt.Errorf("clear cached timeline: %w", err)
	}
	row := &models.EventTimeline{
		UUID:      uuid.New(),
		EventUUID: eventID,
		Timeline:  timeline,
		UpdatedAt: time.Now(),
	}
	if err := r.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert cached timeline: %w", err)
	}
	return row, nil
}

// GetCache returns the newest cached timeline for the event.
func (r *TimelineRepo) GetCache(eventID uuid.UUID) (*models.EventTimeline, error) {
	var row models.EventTimeline
	err := r.db.Where("event_uuid = ?", eventID).Order("updated_at DESC").First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *TimelineRepo) CreateEntry(entry *models.TimelineEntry) error {
	if entry.UUID == uuid.Nil {
		entry.UUID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	return r.db.Create(entry).Error
}

func (r *TimelineRepo) ListEntries(eventID uuid.UUID) ([]models.TimelineEntry, error) {
	var entries []models.TimelineEntry
	err := r.db.Where("event_uuid = ?", eventID).Order("time ASC").Find(&entries).Error
	return entries, err
}

func (r *TimelineRepo) CountShowsBetween(eventIDs []uuid.UUID, from, to time.Time) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.TimelineEntry{}).
		Where("event_uuid IN ? AND type = ? AND time BETWEEN ? AND ?", eventIDs, models.EntryShow, from, to).
		Count(&count).Error
	return count, err
}
