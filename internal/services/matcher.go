package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

// MatcherService compares a resume against a job description. Unlike the
// review pipeline this runs synchronously inside the request.
type MatcherService interface {
	Match(ctx context.Context, resumeID, userID uuid.UUID, jobDescription string) (map[string]any, error)
}

type matcherService struct {
	resumeRepo    repositories.ResumeRepository
	matchRepo     repositories.JobMatchRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewMatcherService(
	resumeRepo repositories.ResumeRepository,
	matchRepo repositories.JobMatchRepository,
	geminiService GeminiService,
) MatcherService {
	return &matcherService{
		resumeRepo:    resumeRepo,
		matchRepo:     matchRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Match implements MatcherService. The raw response is parsed as-is, no
// fence stripping; a non-JSON reply is wrapped under "raw_feedback" instead
// of failing.
func (s *matcherService) Match(ctx context.Context, resumeID, userID uuid.UUID, jobDescription string) (map[string]any, error) {
	resume, err := s.resumeRepo.FindByIDAndUser(resumeID, userID)
	if err != nil {
		return nil, err
	}

	prompt := s.promptBuilder.BuildJobMatchPrompt(resume.Content, jobDescription)
	response, err := s.geminiService.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate job match: %w", err)
	}

	stored := response
	var result map[string]any
	// A JSON "null" unmarshals cleanly into a nil map; treat it as raw too.
	if err := json.Unmarshal([]byte(response), &result); err != nil || result == nil {
		result = map[string]any{"raw_feedback": response}
	} else if compact, err := json.Marshal(result); err == nil {
		stored = string(compact)
	}

	match := &models.JobMatch{
		ID:             uuid.New(),
		ResumeID:       resume.ID,
		UserID:         userID,
		JobDescription: jobDescription,
		AIResponse:     stored,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.matchRepo.Create(match); err != nil {
		return nil, err
	}

	result["job_match_id"] = match.ID.String()
	return result, nil
}
