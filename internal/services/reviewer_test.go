package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/models"
	"resume-reviewer/internal/repositories"
)

type fakeResumeRepo struct {
	resumes map[uuid.UUID]*models.Resume
}

func newFakeResumeRepo(resumes ...*models.Resume) *fakeResumeRepo {
	repo := &fakeResumeRepo{resumes: make(map[uuid.UUID]*models.Resume)}
	for _, r := range resumes {
		repo.resumes[r.ID] = r
	}
	return repo
}

func (f *fakeResumeRepo) Create(resume *models.Resume) error {
	f.resumes[resume.ID] = resume
	return nil
}

func (f *fakeResumeRepo) FindByIDAndUser(id, userID uuid.UUID) (*models.Resume, error) {
	resume, ok := f.resumes[id]
	if !ok || resume.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return resume, nil
}

func (f *fakeResumeRepo) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) FindAll() ([]models.Resume, error) {
	var out []models.Resume
	for _, r := range f.resumes {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResumeRepo) Count() (int64, error) {
	return int64(len(f.resumes)), nil
}

type fakeReviewRepo struct {
	reviews []*models.Review
}

func (f *fakeReviewRepo) Create(review *models.Review) error {
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindScoped(id, resumeID, userID uuid.UUID) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id && r.ResumeID == resumeID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReviewRepo) FindByResumeAndUser(resumeID, userID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ResumeID == resumeID && r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUser(userID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByResume(resumeID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ResumeID == resumeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindAll() ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviewRepo) CountForUserBetween(userID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	for _, r := range f.reviews {
		if r.UserID == userID && !r.CreatedAt.Before(start) && !r.CreatedAt.After(end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewRepo) Count() (int64, error) {
	return int64(len(f.reviews)), nil
}

type fakeGemini struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestProcessReviewStructured(t *testing.T) {
	userID := uuid.New()
	resume := &models.Resume{
		ID:       uuid.New(),
		UserID:   userID,
		Filename: "resume.pdf",
		Content:  "experienced gopher",
	}

	resumeRepo := newFakeResumeRepo(resume)
	reviewRepo := &fakeReviewRepo{}
	gemini := &fakeGemini{response: "```json\n{\"score\": 85, \"suggestions\": [\"Add metrics\"], \"summary\": \"Strong.\"}\n```"}
	reports := NewReportStorage(t.TempDir())

	reviewer := NewReviewerService(resumeRepo, reviewRepo, gemini, NewReportRenderer(), reports)
	err := reviewer.ProcessReview(context.Background(), ReviewJob{ResumeID: resume.ID, UserID: userID})
	require.NoError(t, err)

	require.Len(t, reviewRepo.reviews, 1)
	review := reviewRepo.reviews[0]
	require.NotNil(t, review.Score)
	assert.Equal(t, 85, *review.Score)

	var feedback ReviewFeedback
	require.NoError(t, json.Unmarshal([]byte(review.Feedback), &feedback))
	assert.Equal(t, SuggestionList{"Add metrics"}, feedback.Suggestions)
	assert.Equal(t, JoinedString("Strong."), feedback.Summary)

	// The prompt carries the full resume text.
	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "experienced gopher")

	// The report lands next to the review id.
	assert.True(t, reports.Exists(review.ID))
}

func TestProcessReviewMalformedResponse(t *testing.T) {
	userID := uuid.New()
	resume := &models.Resume{ID: uuid.New(), UserID: userID, Filename: "resume.pdf", Content: "text"}

	resumeRepo := newFakeResumeRepo(resume)
	reviewRepo := &fakeReviewRepo{}
	raw := "The resume is pretty good, I would say around 80 out of 100."
	gemini := &fakeGemini{response: raw}
	reports := NewReportStorage(t.TempDir())

	reviewer := NewReviewerService(resumeRepo, reviewRepo, gemini, NewReportRenderer(), reports)
	err := reviewer.ProcessReview(context.Background(), ReviewJob{ResumeID: resume.ID, UserID: userID})
	require.NoError(t, err)

	require.Len(t, reviewRepo.reviews, 1)
	review := reviewRepo.reviews[0]
	assert.Nil(t, review.Score)
	assert.Equal(t, raw, review.Feedback)
	assert.True(t, reports.Exists(review.ID))
}

func TestProcessReviewResumeGone(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	reviewRepo := &fakeReviewRepo{}
	gemini := &fakeGemini{response: "{}"}

	reviewer := NewReviewerService(resumeRepo, reviewRepo, gemini, NewReportRenderer(), NewReportStorage(t.TempDir()))
	err := reviewer.ProcessReview(context.Background(), ReviewJob{ResumeID: uuid.New(), UserID: uuid.New()})

	assert.Error(t, err)
	assert.Empty(t, reviewRepo.reviews)
	assert.Empty(t, gemini.prompts)
}

func TestProcessReviewOwnershipEnforced(t *testing.T) {
	resume := &models.Resume{ID: uuid.New(), UserID: uuid.New(), Filename: "resume.pdf", Content: "text"}

	resumeRepo := newFakeResumeRepo(resume)
	reviewRepo := &fakeReviewRepo{}
	gemini := &fakeGemini{response: "{}"}

	reviewer := NewReviewerService(resumeRepo, reviewRepo, gemini, NewReportRenderer(), NewReportStorage(t.TempDir()))
	err := reviewer.ProcessReview(context.Background(), ReviewJob{ResumeID: resume.ID, UserID: uuid.New()})

	assert.Error(t, err)
	assert.Empty(t, reviewRepo.reviews)
}

func TestDayWindowUTC(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	start, end := DayWindowUTC(now)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 15, 23, 59, 59, 999999000, time.UTC), end)
}

func TestDayWindowUTCNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on June 16 in UTC+5 is still June 15 in UTC.
	now := time.Date(2025, 6, 16, 2, 30, 0, 0, zone)

	start, _ := DayWindowUTC(now)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
}
