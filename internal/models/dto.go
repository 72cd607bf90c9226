package models

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UploadResponse struct {
	ResumeID string `json:"resume_id"`
}

type ResumeSummary struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ReviewItem struct {
	ID          string    `json:"id"`
	Score       *int      `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	Suggestions []string  `json:"suggestions"`
	Summary     string    `json:"summary"`
}

type JobMatchRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

type JobMatchItem struct {
	ID             string         `json:"id"`
	JobDescription string         `json:"job_description"`
	AIResponse     map[string]any `json:"ai_response"`
	CreatedAt      time.Time      `json:"created_at"`
}

type AdminStats struct {
	ReviewCount int64 `json:"review_count"`
	UserCount   int64 `json:"user_count"`
	ResumeCount int64 `json:"resume_count"`
}
