package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// ChatMessage is one half of a chat turn. Messages are immutable once
// created and ordered by CreatedAt ascending. EventUUID scopes a message to
// its event directly; SourceFileUUID is only a provenance hint (the first
// document of the corpus that grounded the turn), not the event association.
type ChatMessage struct {
	UUID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"uuid"`
	UserUUID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_uuid"`
	EventUUID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"event_uuid"`
	Role               MessageRole `gorm:"not null" json:"role"`
	Content            string      `gorm:"not null" json:"content"`
	SourceFileUUID     *uuid.UUID  `gorm:"type:uuid" json:"source_file_uuid,omitempty"`
	SourceDocumentName string      `json:"source_document_name,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}
