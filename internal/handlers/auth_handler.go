package handlers

import (
	"errors"
	"log"
	"strings"

	"backstage-brain-backend/internal/auth"
	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	users  repo.UserRepoInterface
	tokens *auth.TokenManager
}

func NewAuthHandler(users repo.UserRepoInterface, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var dto struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))
	if dto.Email == "" || dto.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	if _, err := h.users.GetByEmail(dto.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		log.Println(err, "Error hashing password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	user := &models.User{
		Email:        dto.Email,
		PasswordHash: hash,
		FullName:     dto.FullName,
	}
	if err := h.users.CreateUser(user); err != nil {
		log.Println(err, "Error creating user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	token, err := h.tokens.Issue(user.UUID)
	if err != nil {
		log.Println(err, "Error issuing token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var dto struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))
	if dto.Email == "" || dto.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, err := h.users.GetByEmail(dto.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !auth.CheckPassword(dto.Password, user.PasswordHash)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}
	if err != nil {
		log.Println(err, "Error fetching user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	token, err := h.tokens.Issue(user.UUID)
	if err != nil {
		log.Println(err, "Error issuing token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	roles, err := h.users.RolesForUser(user.UUID)
	if err != nil {
		// Roles on the login payload are a convenience; failure to load
		// them does not block the login.
		log.Println(err, "Error fetching user roles")
		roles = []models.EventUser{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":  user,
		"token": token,
		"roles": roles,
	})
}
