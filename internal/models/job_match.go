package models

import (
	"time"

	"github.com/google/uuid"
)

type JobMatch struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID       uuid.UUID `gorm:"type:uuid;not null;index" json:"resume_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	JobDescription string    `gorm:"type:text;not null" json:"job_description"`
	AIResponse     string    `gorm:"type:text;not null" json:"ai_response"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (j *JobMatch) TableName() string {
	return "job_matches"
}
