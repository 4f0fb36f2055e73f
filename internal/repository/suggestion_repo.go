package repository

import (
	"previa-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

func (r *SuggestionRepository) GetByID(userID, id uuid.UUID) (*models.Suggestion, error) {
	var s models.Suggestion
	err := r.db.First(&s, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns suggestions in descending confidence order with a
// deterministic tie-break. When scoped to a single transaction the result is
// capped at the per-transaction suggestion limit.
func (r *SuggestionRepository) List(userID uuid.UUID, status string, transactionID *uuid.UUID, limit int) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	query := r.db.
		Where("user_id = ?", userID).
		Order("confidence DESC, created_at ASC, id ASC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if transactionID != nil {
		query = query.Where("transaction_id = ?", *transactionID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&suggestions).Error
	return suggestions, err
}

// HasPending reports whether a suggested-status row already exists for the
// transaction/receipt pair, so the generator does not duplicate candidates.
func (r *SuggestionRepository) HasPending(userID, transactionID, receiptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Suggestion{}).
		Where("user_id = ? AND transaction_id = ? AND receipt_id = ? AND status = ?",
			userID, transactionID, receiptID, models.SuggestionStatusSuggested).
		Count(&count).Error
	return count > 0, err
}
