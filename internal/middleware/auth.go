package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-reviewer/internal/auth"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

const currentUserKey = "currentUser"

type AuthMiddleware struct {
	tokenService auth.TokenService
	userRepo     repositories.UserRepository
}

func NewAuthMiddleware(tokenService auth.TokenService, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// RequireUser resolves the bearer token to a persisted user. Decoding
// failure, a missing subject, or an unknown user all yield the same 401.
func (m *AuthMiddleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Could not validate credentials",
			})
		}

		claims, err := m.tokenService.Parse(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Could not validate credentials",
			})
		}

		user, err := m.userRepo.FindByEmail(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Could not validate credentials",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// RequireAdmin rejects non-admin users; must run after RequireUser.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Not enough permissions",
			})
		}

		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser, nil outside it.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
