package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"resume-reviewer/internal/auth"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

type AuthHandler struct {
	userRepo     repositories.UserRepository
	tokenService auth.TokenService
	adminEmail   string
}

func NewAuthHandler(
	userRepo repositories.UserRepository,
	tokenService auth.TokenService,
	adminEmail string,
) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
		adminEmail:   adminEmail,
	}
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	if _, err := h.userRepo.FindByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register user",
		})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register user",
		})
	}

	role := models.RoleUser
	if h.adminEmail != "" && req.Email == h.adminEmail {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:          req.Email,
		HashedPassword: hashed,
		IsActive:       true,
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.userRepo.Create(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	user, err := h.userRepo.FindByEmail(req.Email)
	if err != nil || !auth.VerifyPassword(user.HashedPassword, req.Password) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := h.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	return c.JSON(models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// HandleLogout handles POST /auth/logout. Tokens are stateless; the client
// just discards its copy.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
