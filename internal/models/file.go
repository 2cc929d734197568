package models

import (
	"time"

	"github.com/google/uuid"
)

// Media types accepted on upload.
const (
	FileTypePDF  = "application/pdf"
	FileTypeText = "text/plain"
)

// AllowedFileType reports whether the declared media type is accepted.
func AllowedFileType(contentType string) bool {
	return contentType == FileTypePDF || contentType == FileTypeText
}

// EventFile is the metadata row for an uploaded document. ExtractedText is
// the plain-text body cached at upload time; it may be empty for documents
// whose content could not be parsed.
type EventFile struct {
	UUID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"uuid"`
	EventUUID     uuid.UUID `gorm:"type:uuid;not null;index" json:"event_uuid"`
	FileName      string    `gorm:"not null" json:"file_name"`
	FilePath      string    `gorm:"not null" json:"file_path"`
	FileSize      int64     `json:"file_size"`
	FileType      string    `gorm:"not null" json:"file_type"`
	Category      string    `gorm:"not null" json:"category"`
	ExtractedText string    `gorm:"type:text" json:"-"`
	UploadedBy    uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
