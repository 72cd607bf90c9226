package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resume-reviewer/internal/models"
)

type JobMatchRepository interface {
	Create(match *models.JobMatch) error
	FindByResumeAndUser(resumeID, userID uuid.UUID) ([]models.JobMatch, error)
}

type jobMatchRepository struct {
	db *gorm.DB
}

func NewJobMatchRepository(db *gorm.DB) JobMatchRepository {
	return &jobMatchRepository{db: db}
}

// Create implements JobMatchRepository.
func (r *jobMatchRepository) Create(match *models.JobMatch) error {
	if err := r.db.Create(match).Error; err != nil {
		return fmt.Errorf("failed to create job match: %w", err)
	}

	return nil
}

// FindByResumeAndUser implements JobMatchRepository.
func (r *jobMatchRepository) FindByResumeAndUser(resumeID, userID uuid.UUID) ([]models.JobMatch, error) {
	var matches []models.JobMatch
	err := r.db.
		Where("resume_id = ? AND user_id = ?", resumeID, userID).
		Order("created_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job matches: %w", err)
	}

	return matches, nil
}
