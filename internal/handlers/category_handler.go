package handlers

import (
	"log"

	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categories repo.CategoryRepoInterface
}

func NewCategoryHandler(categories repo.CategoryRepoInterface) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories returns the document categories, alphabetically.
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	if _, ok := requireCaller(c); !ok {
		return nil
	}

	categories, err := h.categories.ListCategories()
	if err != nil {
		log.Println(err, "Error fetching categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"categories": categories,
	})
}
