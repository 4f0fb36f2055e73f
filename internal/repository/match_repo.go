package repository

import (
	"previa-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(userID, id uuid.UUID) (*models.Match, error) {
	var m models.Match
	err := r.db.First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListApproved returns the user's approved matches, newest review first.
func (r *MatchRepository) ListApproved(userID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.MatchStatusApproved).
		Order("reviewed_at DESC").
		Find(&matches).Error
	return matches, err
}
