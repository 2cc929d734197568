package repo

import (
	"errors"
	"time"

	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventWithRole is an event joined with the caller's role on it.
type EventWithRole struct {
	models.Event
	UserRole models.UserRole `json:"userRole"`
}

type EventRepo struct {
	db *gorm.DB
}

type EventRepoInterface interface {
	CreateWithAdmin(event *models.Event, creator uuid.UUID) error
	ListForUser(userID uuid.UUID, search string) ([]EventWithRole, error)
	GetByID(eventID uuid.UUID) (*models.Event, error)
	Update(event *models.Event) error
	Archive(eventID uuid.UUID) error
	RoleFor(userID, eventID uuid.UUID) (models.UserRole, bool, error)
}

func NewEventRepository(db *gorm.DB) EventRepoInterface {
	return &EventRepo{db: db}
}

// CreateWithAdmin inserts the event and its creator's ADMIN assignment in
// one transaction.
func (r *EventRepo) CreateWithAdmin(event *models.Event, creator uuid.UUID) error {
	if event.UUID == uuid.Nil {
		event.UUID = uuid.New()
	}
	event.CreatedBy = creator
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Create(&models.EventUser{
			UUID:      uuid.New(),
			EventUUID: event.UUID,
			UserUUID:  creator,
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
	})
}

// ListForUser returns the caller's non-archived events with their role,
// ordered by date ascending. Search filters on name or description.
func (r *EventRepo) ListForUser(userID uuid.UUID, search string) ([]EventWithRole, error) {
	var assignments []models.EventUser
	if err := r.db.Where("user_uuid = ?", userID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []EventWithRole{}, nil
	}

	roleByEvent := make(map[uuid.UUID]models.UserRole, len(assignments))
	eventIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		roleByEvent[a.EventUUID] = a.Role
		eventIDs = append(eventIDs, a.EventUUID)
	}

	query := r.db.Where("uuid IN ? AND is_archived = false", eventIDs).Order("date ASC")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	out := make([]EventWithRole, 0, len(events))
	for _, e := range events {
		out = append(out, EventWithRole{Event: e, UserRole: roleByEvent[e.UUID]})
	}
	return out, nil
}

// GetByID returns the event unless it is archived or missing.
func (r *EventRepo) GetByID(eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("uuid = ? AND is_archived = false", eventID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepo) Update(event *models.Event) error {
	event.UpdatedAt = time.Now()
	return r.db.Save(event).Error
}

// Archive soft-deletes the event. Rows are never physically removed.
func (r *EventRepo) Archive(eventID uuid.UUID) error {
	return r.db.Model(&models.Event{}).
		Where("uuid = ?", eventID).
		Updates(map[string]interface{}{"is_archived": true, "updated_at": time.Now()}).Error
}

// RoleFor resolves the caller's role on an event. The second return is
// false when no assignment exists.
func (r *EventRepo) RoleFor(userID, eventID uuid.UUID) (models.UserRole, bool, error) {
	var assignment models.EventUser
	err := r.db.Where("user_uuid = ? AND event_uuid = ?", userID, eventID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return assignment.Role, true, nil
}
