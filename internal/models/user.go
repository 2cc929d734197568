package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UUID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"uuid"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
