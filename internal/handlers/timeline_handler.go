package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/ratelimit"
	"backstage-brain-backend/internal/repo"
	"backstage-brain-backend/internal/timeline"

	"github.com/gofiber/fiber/v2"
)

const timelineTimeout = 60 * time.Second

type TimelineHandler struct {
	events    repo.EventRepoInterface
	timelines repo.TimelineRepoInterface
	engine    *timeline.Engine
	limiter   *ratelimit.FixedWindowLimiter
}

func NewTimelineHandler(events repo.EventRepoInterface, timelines repo.TimelineRepoInterface, engine *timeline.Engine, limiter *ratelimit.FixedWindowLimiter) *TimelineHandler {
	return &TimelineHandler{events: events, timelines: timelines, engine: engine, limiter: limiter}
}

// ListEntries returns the event's manual run-of-show entries, earliest first.
func (h *TimelineHandler) ListEntries(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff); !ok {
		return nil
	}

	entries, err := h.timelines.ListEntries(eventID)
	if err != nil {
		log.Println(err, "Error fetching timeline entries")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch timeline entries",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"timeline": entries,
	})
}

// CreateEntry adds a manual run-of-show entry. Requires MANAGER or above.
func (h *TimelineHandler) CreateEntry(c *fiber.Ctx) error {
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

	var dto struct {
		Time        string `json:"time"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Location    string `json:"location"`
		Notes       string `json:"notes"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(dto.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required field: description",
		})
	}
	entryTime, err := time.Parse(time.RFC3339, dto.Time)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid time: expected RFC 3339 format",
		})
	}
	entryType := models.TimelineEntryType(dto.Type)
	if !models.ValidEntryType(entryType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid entry type",
		})
	}

	entry := &models.TimelineEntry{
		EventUUID:   eventID,
		Time:        entryTime,
		Description: strings.TrimSpace(dto.Description),
		Type:        entryType,
		Location:    dto.Location,
		Notes:       dto.Notes,
		CreatedBy:   userID,
	}
	if err := h.timelines.CreateEntry(entry); err != nil {
		log.Println(err, "Error creating timeline entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create timeline entry",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entry": entry,
	})
}

// GenerateTimeline extracts a fresh schedule from the event's documents and
// replaces the cached copy.
func (h *TimelineHandler) GenerateTimeline(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff); !ok {
		return nil
	}

	if !h.limiter.Allow(userID.String()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests. Please try again later.",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), timelineTimeout)
	defer cancel()

	categories, row, err := h.engine.Generate(ctx, eventID)
	switch {
	case errors.Is(err, timeline.ErrNoDocuments):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No documents found for this event to generate a timeline.",
		})
	case errors.Is(err, timeline.ErrNoReadableContent):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not read content from any of the event files",
		})
	case errors.Is(err, timeline.ErrParse):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse AI response",
		})
	case err != nil:
		log.Println(err, "Error generating timeline")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate timeline",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"timelines":  categories,
		"updated_at": row.UpdatedAt,
	})
}

// GetCachedTimeline serves the stored extraction without touching the model.
func (h *TimelineHandler) GetCachedTimeline(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff); !ok {
		return nil
	}

	row, err := h.engine.FetchCached(c.Context(), eventID)
	switch {
	case errors.Is(err, timeline.ErrNoDocuments):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No documents found for this event to generate a timeline.",
		})
	case errors.Is(err, timeline.ErrNoCache):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No cached timeline found for this event",
		})
	case err != nil:
		log.Println(err, "Error fetching cached timeline")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cached timeline",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"event_id":   row.EventUUID,
		"timeline":   row.Timeline,
		"updated_at": row.UpdatedAt,
	})
}
