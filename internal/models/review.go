package models

import (
	"time"

	"github.com/google/uuid"
)

// Review holds the structured AI critique for a resume. Feedback is the
// normalized JSON payload, or the raw model output when parsing failed.
// Score is duplicated into its own column for querying.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"resume_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Feedback  string    `gorm:"type:text;not null" json:"feedback"`
	Score     *int      `gorm:"type:integer" json:"score,omitempty"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (r *Review) TableName() string {
	return "reviews"
}
