package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EventHandler struct {
	events repo.EventRepoInterface
}

func NewEventHandler(events repo.EventRepoInterface) *EventHandler {
	return &EventHandler{events: events}
}

type eventDTO struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (dto *eventDTO) validate() (time.Time, string) {
	if strings.TrimSpace(dto.Name) == "" {
		return time.Time{}, "Missing required field: name"
	}
	if strings.TrimSpace(dto.Location) == "" {
		return time.Time{}, "Missing required field: location"
	}
	date, err := time.Parse(time.RFC3339, dto.Date)
	if err != nil {
		return time.Time{}, "Invalid date: expected RFC 3339 format"
	}
	return date, ""
}

// ListEvents returns the caller's non-archived events with their role.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}

	events, err := h.events.ListForUser(userID, c.Query("search"))
	if err != nil {
		log.Println(err, "Error fetching events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"events": events,
	})
}

// CreateEvent creates an event; the creator becomes its ADMIN.
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}

	var dto eventDTO
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	date, problem := dto.validate()
	if problem != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": problem,
		})
	}

	event := &models.Event{
		Name:        strings.TrimSpace(dto.Name),
		Date:        date,
		Location:    strings.TrimSpace(dto.Location),
		Description: dto.Description,
	}
	if err := h.events.CreateWithAdmin(event, userID); err != nil {
		log.Println(err, "Error creating event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create event",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"event": repo.EventWithRole{Event: *event, UserRole: models.RoleAdmin},
	})
}

// GetEvent returns one event with the caller's role. Archived and missing
// events are both 404.
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	role, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff)
	if !ok {
		return nil
	}

	event, err := h.events.GetByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}
	if err != nil {
		log.Println(err, "Error fetching event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"event": repo.EventWithRole{Event: *event, UserRole: role},
	})
}

// UpdateEvent mutates event attributes. Requires MANAGER or above.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleManager); !ok {
		return nil
	}

	var dto eventDTO
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	date, problem := dto.validate()
	if problem != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": problem,
		})
	}

	event, err := h.events.GetByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}
	if err != nil {
		log.Println(err, "Error fetching event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	event.Name = strings.TrimSpace(dto.Name)
	event.Date = date
	event.Location = strings.TrimSpace(dto.Location)
	event.Description = dto.Description

	if err := h.events.Update(event); err != nil {
		log.Println(err, "Error updating event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update event",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"event": event,
	})
}

// ArchiveEvent soft-deletes the event. Requires ADMIN.
func (h *EventHandler) ArchiveEvent(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleAdmin); !ok {
		return nil
	}

	if _, err := h.events.GetByID(eventID); errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	} else if err != nil {
		log.Println(err, "Error fetching event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	if err := h.events.Archive(eventID); err != nil {
		log.Println(err, "Error archiving event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive event",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
