package handlers

import (
	"log"
	"time"

	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	events    repo.EventRepoInterface
	files     repo.FileRepoInterface
	timelines repo.TimelineRepoInterface
}

func NewDashboardHandler(events repo.EventRepoInterface, files repo.FileRepoInterface, timelines repo.TimelineRepoInterface) *DashboardHandler {
	return &DashboardHandler{events: events, files: files, timelines: timelines}
}

// GetStats aggregates today's activity across all events the caller belongs
// to: total documents, documents uploaded today, shows scheduled today and
// the most recent upload time.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}

	events, err := h.events.ListForUser(userID, "")
	if err != nil {
		log.Println(err, "Error fetching events for dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	eventIDs := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.UUID)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	totalFiles, err := h.files.CountByEvents(eventIDs)
	if err != nil {
		log.Println(err, "Error counting files for dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}
	filesToday, err := h.files.CountUploadedBetween(eventIDs, startOfDay, endOfDay)
	if err != nil {
		log.Println(err, "Error counting today's uploads for dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}
	showsToday, err := h.timelines.CountShowsBetween(eventIDs, startOfDay, endOfDay)
	if err != nil {
		log.Println(err, "Error counting today's shows for dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}
	lastUpdate, err := h.files.LatestUploadTime(eventIDs)
	if err != nil {
		log.Println(err, "Error fetching latest upload for dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"totalFiles": totalFiles,
		"filesToday": filesToday,
		"showsToday": showsToday,
		"lastUpdate": lastUpdate,
	})
}
