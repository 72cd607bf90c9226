package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-reviewer/internal/middleware"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

type AdminHandler struct {
	userRepo   repositories.UserRepository
	resumeRepo repositories.ResumeRepository
	reviewRepo repositories.ReviewRepository
}

func NewAdminHandler(
	userRepo repositories.UserRepository,
	resumeRepo repositories.ResumeRepository,
	reviewRepo repositories.ReviewRepository,
) *AdminHandler {
	return &AdminHandler{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		reviewRepo: reviewRepo,
	}
}

// HandleStats handles GET /admin/stats
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	reviewCount, err := h.reviewRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect stats",
		})
	}

	userCount, err := h.userRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect stats",
		})
	}

	resumeCount, err := h.resumeRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect stats",
		})
	}

	return c.JSON(models.AdminStats{
		ReviewCount: reviewCount,
		UserCount:   userCount,
		ResumeCount: resumeCount,
	})
}

// HandleAllReviews handles GET /admin/reviews
func (h *AdminHandler) HandleAllReviews(c *fiber.Ctx) error {
	reviews, err := h.reviewRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list reviews",
		})
	}

	if len(reviews) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No reviews found",
		})
	}

	return c.JSON(reviews)
}

// HandleAllUsers handles GET /admin/users. The requesting admin is excluded
// from the listing.
func (h *AdminHandler) HandleAllUsers(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	users, err := h.userRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	if len(users) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No users found",
		})
	}

	filtered := make([]models.User, 0, len(users))
	for _, user := range users {
		if user.ID == admin.ID {
			continue
		}
		filtered = append(filtered, user)
	}

	return c.JSON(filtered)
}

// HandleAllResumes handles GET /admin/resumes
func (h *AdminHandler) HandleAllResumes(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	if len(resumes) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No resumes found",
		})
	}

	return c.JSON(resumes)
}

// HandleUserResumes handles GET /admin/user/:user_id/resumes
func (h *AdminHandler) HandleUserResumes(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID format",
		})
	}

	resumes, err := h.resumeRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	if len(resumes) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No resumes found for this user",
		})
	}

	return c.JSON(resumes)
}

// HandleUserReviews handles GET /admin/user/:user_id/reviews
func (h *AdminHandler) HandleUserReviews(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID format",
		})
	}

	reviews, err := h.reviewRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list reviews",
		})
	}

	if len(reviews) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No reviews found for this user",
		})
	}

	return c.JSON(reviews)
}

// HandleResumeReviews handles GET /admin/resume/:resume_id/reviews
func (h *AdminHandler) HandleResumeReviews(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("resume_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	reviews, err := h.reviewRepo.FindByResume(resumeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list reviews",
		})
	}

	if len(reviews) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No reviews found for this resume",
		})
	}

	return c.JSON(reviews)
}
