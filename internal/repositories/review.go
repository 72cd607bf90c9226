package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resume-reviewer/internal/models"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindScoped(id, resumeID, userID uuid.UUID) (*models.Review, error)
	FindByResumeAndUser(resumeID, userID uuid.UUID) ([]models.Review, error)
	FindByUser(userID uuid.UUID) ([]models.Review, error)
	FindByResume(resumeID uuid.UUID) ([]models.Review, error)
	FindAll() ([]models.Review, error)
	CountForUserBetween(userID uuid.UUID, start, end time.Time) (int64, error)
	Count() (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create implements ReviewRepository.
func (r *reviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// FindScoped implements ReviewRepository. All three identifiers participate
// in the query so ownership is enforced by the database, not the caller.
func (r *reviewRepository) FindScoped(id, resumeID, userID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.
		Where("id = ? AND resume_id = ? AND user_id = ?", id, resumeID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	return &review, nil
}

// FindByResumeAndUser implements ReviewRepository.
func (r *reviewRepository) FindByResumeAndUser(resumeID, userID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Where("resume_id = ? AND user_id = ?", resumeID, userID).
		Order("created_at ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// FindByUser implements ReviewRepository.
func (r *reviewRepository) FindByUser(userID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// FindByResume implements ReviewRepository.
func (r *reviewRepository) FindByResume(resumeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("resume_id = ?", resumeID).Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// FindAll implements ReviewRepository.
func (r *reviewRepository) FindAll() ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// CountForUserBetween implements ReviewRepository. Bounds are inclusive on
// both ends; callers pass the UTC calendar-day window.
func (r *reviewRepository) CountForUserBetween(userID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}

// Count implements ReviewRepository.
func (r *reviewRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}
