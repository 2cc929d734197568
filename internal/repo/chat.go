package repo

import (
	"time"

	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepo struct {
	db *gorm.DB
}

type ChatRepoInterface interface {
	CreateMessage(msg *models.ChatMessage) error
	ListForUserEvent(userID, eventID uuid.UUID) ([]models.ChatMessage, error)
}

func NewChatRepository(db *gorm.DB) ChatRepoInterface {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) CreateMessage(msg *models.ChatMessage) error {
	if msg.UUID == uuid.Nil {
		msg.UUID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	return r.db.Create(msg).Error
}

// ListForUserEvent replays the caller's conversation on one event, oldest
// first. Scoping is on the message's own event column, so turns grounded on
// zero documents stay visible.
func (r *ChatRepo) ListForUserEvent(userID, eventID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("user_uuid = ? AND event_uuid = ?", userID, eventID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
