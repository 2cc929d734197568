package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TimelineEntryType string

const (
	EntryRehearsal  TimelineEntryType = "rehearsal"
	EntrySoundcheck TimelineEntryType = "soundcheck"
	EntryLogistics  TimelineEntryType = "logistics"
	EntryShow       TimelineEntryType = "show"
	EntryMeeting    TimelineEntryType = "meeting"
)

// ValidEntryType reports whether t is a known run-of-show entry type.
func ValidEntryType(t TimelineEntryType) bool {
	switch t {
	case EntryRehearsal, EntrySoundcheck, EntryLogistics, EntryShow, EntryMeeting:
		return true
	}
	return false
}

// TimelineEntry is a manually created run-of-show item.
type TimelineEntry struct {
	UUID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"uuid"`
	EventUUID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"event_uuid"`
	Time        time.Time         `gorm:"not null" json:"time"`
	Description string            `gorm:"not null" json:"description"`
	Type        TimelineEntryType `gorm:"not null" json:"type"`
	Location    string            `json:"location,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedBy   uuid.UUID         `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// EventTimeline holds the cached AI-extracted schedule for one event.
// The cache is fully replaced on each regeneration; at most one live row
// per event, enforced by delete-then-insert.
type EventTimeline struct {
	UUID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"uuid"`
	EventUUID uuid.UUID      `gorm:"type:uuid;not null;index" json:"event_uuid"`
	Timeline  datatypes.JSON `gorm:"not null" json:"timeline"`
	UpdatedAt time.Time      `json:"updated_at"`
}
