package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename   string    `gorm:"type:text;not null" json:"filename"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UploadedAt time.Time `gorm:"type:timestamp;default:now()" json:"uploaded_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
