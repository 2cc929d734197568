package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the per-event role of a user. Ranks: ADMIN > MANAGER > STAFF.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleStaff   UserRole = "STAFF"
)

var roleRanks = map[UserRole]int{
	RoleAdmin:   3,
	RoleManager: 2,
	RoleStaff:   1,
}

// HasAtLeast reports whether role meets the required threshold.
// An unknown or empty role never passes.
func (r UserRole) HasAtLeast(threshold UserRole) bool {
	return roleRanks[r] >= roleRanks[threshold] && roleRanks[r] > 0
}

// Valid reports whether r is one of the three known roles.
func (r UserRole) Valid() bool {
	return roleRanks[r] > 0
}

type Event struct {
	UUID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"uuid"`
	Name        string    `gorm:"not null" json:"name"`
	Date        time.Time `gorm:"not null" json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	IsArchived  bool      `gorm:"default:false" json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUser assigns one role to a user on one event.
type EventUser struct {
	UUID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"uuid"`
	EventUUID uuid.UUID  `gorm:"type:uuid;not null;index:idx_event_user,unique" json:"event_uuid"`
	UserUUID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_event_user,unique" json:"user_uuid"`
	Role      UserRole   `gorm:"not null" json:"role"`
	AddedBy   *uuid.UUID `gorm:"type:uuid" json:"added_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
