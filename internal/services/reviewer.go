package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

// ReviewJob identifies a deferred unit of review work. The owning user id
// travels with the job so the resume re-fetch stays ownership-scoped.
type ReviewJob struct {
	ResumeID uuid.UUID
	UserID   uuid.UUID
}

type ReviewerService interface {
	ProcessReview(ctx context.Context, job ReviewJob) error
}

type reviewerService struct {
	resumeRepo    repositories.ResumeRepository
	reviewRepo    repositories.ReviewRepository
	geminiService GeminiService
	renderer      ReportRenderer
	reports       ReportStorage
	promptBuilder *PromptBuilder
}

func NewReviewerService(
	resumeRepo repositories.ResumeRepository,
	reviewRepo repositories.ReviewRepository,
	geminiService GeminiService,
	renderer ReportRenderer,
	reports ReportStorage,
) ReviewerService {
	return &reviewerService{
		resumeRepo:    resumeRepo,
		reviewRepo:    reviewRepo,
		geminiService: geminiService,
		renderer:      renderer,
		reports:       reports,
		promptBuilder: NewPromptBuilder(),
	}
}

// ProcessReview runs the deferred review pipeline: re-fetch the resume, call
// the model, parse with fallback, persist the review, render the PDF. It runs
// after the originating request has returned; failures surface only in logs.
func (s *reviewerService) ProcessReview(ctx context.Context, job ReviewJob) error {
	// Re-fetch under the job's own scope; the resume may have vanished
	// between admission and execution.
	resume, err := s.resumeRepo.FindByIDAndUser(job.ResumeID, job.UserID)
	if err != nil {
		log.Printf("⚠️  Review skipped, resume %s unavailable: %v\n", job.ResumeID, err)
		return fmt.Errorf("resume unavailable: %w", err)
	}

	log.Printf("🤖 Requesting AI review for resume %s\n", resume.ID)
	prompt := s.promptBuilder.BuildReviewPrompt(resume.Content, "")
	response, err := s.geminiService.GenerateText(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to generate review: %w", err)
	}

	result := ParseReviewResponse(response)
	if result.Structured == nil {
		log.Printf("⚠️  AI response for resume %s was not valid JSON, storing raw fallback\n", resume.ID)
	}

	review := &models.Review{
		ID:        uuid.New(),
		ResumeID:  resume.ID,
		UserID:    job.UserID,
		Feedback:  result.FeedbackPayload(),
		Score:     result.Score(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}

	if err := s.reports.EnsureDir(); err != nil {
		return fmt.Errorf("failed to prepare report directory: %w", err)
	}

	pdfPath := s.reports.PathFor(review.ID)
	if err := s.renderer.Render(resume.Filename, result.Score(), result.Suggestions(), result.Summary(), pdfPath); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	log.Printf("✅ Review %s completed for resume %s\n", review.ID, resume.ID)
	return nil
}

// DayWindowUTC returns the inclusive bounds of the UTC calendar day
// containing now, used as the rate-limit admission window.
func DayWindowUTC(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Microsecond)
	return start, end
}
