package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-reviewer/internal/middleware"
	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
	"resume-reviewer/internal/services"
)

type ResumeHandler struct {
	resumeRepo  repositories.ResumeRepository
	reviewRepo  repositories.ReviewRepository
	parser      services.DocumentParser
	worker      services.Worker
	reports     services.ReportStorage
	dailyLimit  int
	maxFileSize int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	reviewRepo repositories.ReviewRepository,
	parser services.DocumentParser,
	worker services.Worker,
	reports services.ReportStorage,
	dailyLimit int,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:  resumeRepo,
		reviewRepo:  reviewRepo,
		parser:      parser,
		worker:      worker,
		reports:     reports,
		dailyLimit:  dailyLimit,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /resume/upload
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	if len(content) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is empty",
		})
	}

	text, err := h.parser.ExtractText(fileHeader.Filename, content)
	if err != nil || strings.TrimSpace(text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from resume",
		})
	}

	resume := &models.Resume{
		ID:         uuid.New(),
		UserID:     user.ID,
		Filename:   fileHeader.Filename,
		Content:    text,
		UploadedAt: time.Now().UTC(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ResumeID: resume.ID.String(),
	})
}

// HandleListResumes handles GET /resume/resumes
func (h *ResumeHandler) HandleListResumes(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumes, err := h.resumeRepo.FindByUser(user.ID)
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

	items := make([]models.ResumeSummary, 0, len(resumes))
	for _, resume := range resumes {
		items = append(items, models.ResumeSummary{
			ID:         resume.ID.String(),
			Filename:   resume.Filename,
			UploadedAt: resume.UploadedAt,
		})
	}

	return c.JSON(items)
}

// HandleGetResume handles GET /resume/:id
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindByIDAndUser(resumeID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	return c.JSON(resume)
}

// HandleRequestReview handles GET /resume/:id/review. The rate-limit check
// runs synchronously against the request's own clock before any background
// work is scheduled.
func (h *ResumeHandler) HandleRequestReview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	start, end := services.DayWindowUTC(time.Now())
	count, err := h.reviewRepo.CountForUserBetween(user.ID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check review limit",
		})
	}

	if count >= int64(h.dailyLimit) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Daily review limit reached",
		})
	}

	resume, err := h.resumeRepo.FindByIDAndUser(resumeID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	h.worker.EnqueueJob(services.ReviewJob{
		ResumeID: resume.ID,
		UserID:   user.ID,
	})

	return c.JSON(fiber.Map{
		"message": "Review is being processed in the background. Check /resume/{resume_id}/reviews for results.",
	})
}

// HandleListReviews handles GET /resume/:id/reviews
func (h *ResumeHandler) HandleListReviews(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	reviews, err := h.reviewRepo.FindByResumeAndUser(resumeID, user.ID)
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

	items := make([]models.ReviewItem, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, buildReviewItem(review))
	}

	return c.JSON(items)
}

// HandleDownloadReview handles GET /resume/:id/review/:review_id/download
func (h *ResumeHandler) HandleDownloadReview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	reviewID, err := uuid.Parse(c.Params("review_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID format",
		})
	}

	review, err := h.reviewRepo.FindScoped(reviewID, resumeID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	if !h.reports.Exists(review.ID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "PDF not generated yet",
		})
	}

	return c.Download(h.reports.PathFor(review.ID), fmt.Sprintf("resume_review_%s.pdf", review.ID))
}

// buildReviewItem re-parses the stored feedback payload. A raw fallback
// payload yields the score column and empty structured fields.
func buildReviewItem(review models.Review) models.ReviewItem {
	item := models.ReviewItem{
		ID:          review.ID.String(),
		Score:       review.Score,
		CreatedAt:   review.CreatedAt,
		Suggestions: []string{},
	}

	var feedback services.ReviewFeedback
	if err := json.Unmarshal([]byte(review.Feedback), &feedback); err == nil {
		item.Score = feedback.Score
		item.Summary = string(feedback.Summary)
		if feedback.Suggestions != nil {
			item.Suggestions = feedback.Suggestions
		}
	}

	return item
}
