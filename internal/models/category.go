package models

import (
	"time"

	"github.com/google/uuid"
)

// Category labels the kind of document an upload belongs to.
type Category struct {
	UUID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"uuid"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCategories are seeded at startup when the table is empty.
var DefaultCategories = []string{"Horarios", "Técnica", "Legales", "Personal", "Marketing"}
