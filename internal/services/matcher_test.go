package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

type fakeJobMatchRepo struct {
	matches []*models.JobMatch
}

func (f *fakeJobMatchRepo) Create(match *models.JobMatch) error {
	f.matches = append(f.matches, match)
	return nil
}

func (f *fakeJobMatchRepo) FindByResumeAndUser(resumeID, userID uuid.UUID) ([]models.JobMatch, error) {
	var out []models.JobMatch
	for _, m := range f.matches {
		if m.ResumeID == resumeID && m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func TestMatchStructuredResponse(t *testing.T) {
	userID := uuid.New()
	resume := &models.Resume{ID: uuid.New(), UserID: userID, Filename: "resume.pdf", Content: "golang, docker"}

	resumeRepo := newFakeResumeRepo(resume)
	matchRepo := &fakeJobMatchRepo{}
	gemini := &fakeGemini{response: `{"matching_keywords": ["golang"], "missing_keywords": ["aws"], "suggestions": ["Add AWS experience."]}`}

	matcher := NewMatcherService(resumeRepo, matchRepo, gemini)
	result, err := matcher.Match(context.Background(), resume.ID, userID, "backend role")
	require.NoError(t, err)

	assert.Equal(t, []any{"golang"}, result["matching_keywords"])
	require.Len(t, matchRepo.matches, 1)

	match := matchRepo.matches[0]
	assert.Equal(t, match.ID.String(), result["job_match_id"])
	assert.Equal(t, "backend role", match.JobDescription)

	// Stored payload is the re-marshaled JSON, parseable as-is.
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(match.AIResponse), &stored))
	assert.Equal(t, []any{"aws"}, stored["missing_keywords"])
}

func TestMatchRawFallback(t *testing.T) {
	userID := uuid.New()
	resume := &models.Resume{ID: uuid.New(), UserID: userID, Filename: "resume.pdf", Content: "text"}

	resumeRepo := newFakeResumeRepo(resume)
	matchRepo := &fakeJobMatchRepo{}
	raw := "The resume matches reasonably well."
	gemini := &fakeGemini{response: raw}

	matcher := NewMatcherService(resumeRepo, matchRepo, gemini)
	result, err := matcher.Match(context.Background(), resume.ID, userID, "backend role")
	require.NoError(t, err)

	assert.Equal(t, raw, result["raw_feedback"])
	require.Len(t, matchRepo.matches, 1)
	assert.Equal(t, raw, matchRepo.matches[0].AIResponse)
}

func TestMatchNullResponse(t *testing.T) {
	userID := uuid.New()
	resume := &models.Resume{ID: uuid.New(), UserID: userID, Filename: "resume.pdf", Content: "text"}

	resumeRepo := newFakeResumeRepo(resume)
	matchRepo := &fakeJobMatchRepo{}
	gemini := &fakeGemini{response: "null"}

	matcher := NewMatcherService(resumeRepo, matchRepo, gemini)
	result, err := matcher.Match(context.Background(), resume.ID, userID, "backend role")
	require.NoError(t, err)

	assert.Equal(t, "null", result["raw_feedback"])
	require.Len(t, matchRepo.matches, 1)
	assert.Equal(t, matchRepo.matches[0].ID.String(), result["job_match_id"])
	assert.Equal(t, "null", matchRepo.matches[0].AIResponse)
}

func TestMatchResumeNotOwned(t *testing.T) {
	resume := &models.Resume{ID: uuid.New(), UserID: uuid.New(), Filename: "resume.pdf", Content: "text"}

	resumeRepo := newFakeResumeRepo(resume)
	matchRepo := &fakeJobMatchRepo{}
	gemini := &fakeGemini{response: "{}"}

	matcher := NewMatcherService(resumeRepo, matchRepo, gemini)
	_, err := matcher.Match(context.Background(), resume.ID, uuid.New(), "backend role")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, matchRepo.matches)
	assert.Empty(t, gemini.prompts)
}
