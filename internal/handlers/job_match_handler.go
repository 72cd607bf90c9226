package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-reviewer/internal/middleware"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
	"resume-reviewer/internal/services"
)

type JobMatchHandler struct {
	matcherService services.MatcherService
	matchRepo      repositories.JobMatchRepository
}

func NewJobMatchHandler(
	matcherService services.MatcherService,
	matchRepo repositories.JobMatchRepository,
) *JobMatchHandler {
	return &JobMatchHandler{
		matcherService: matcherService,
		matchRepo:      matchRepo,
	}
}

// HandleMatch handles POST /job_match/:resume_id/match
func (h *JobMatchHandler) HandleMatch(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumeID, err := uuid.Parse(c.Params("resume_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	var req models.JobMatchRequest
	if err := c.BodyParser(&req); err != nil || req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	result, err := h.matcherService.Match(c.Context(), resumeID, user.ID, req.JobDescription)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to match resume",
		})
	}

	return c.JSON(result)
}

// HandleListMatches handles GET /job_match/:resume_id/matches
func (h *JobMatchHandler) HandleListMatches(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumeID, err := uuid.Parse(c.Params("resume_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	matches, err := h.matchRepo.FindByResumeAndUser(resumeID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list job matches",
		})
	}

	items := make([]models.JobMatchItem, 0, len(matches))
	for _, match := range matches {
		parsed := map[string]any{}
		if err := json.Unmarshal([]byte(match.AIResponse), &parsed); err != nil {
			parsed = map[string]any{"raw_feedback": match.AIResponse}
		}

		items = append(items, models.JobMatchItem{
			ID:             match.ID.String(),
			JobDescription: match.JobDescription,
			AIResponse:     parsed,
			CreatedAt:      match.CreatedAt,
		})
	}

	return c.JSON(items)
}
