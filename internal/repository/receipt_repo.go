package repository

import (
	"previa-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) GetByID(userID, id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.First(&receipt, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListUnmatched returns the user's receipts that no approved match consumes.
func (r *ReceiptRepository) ListUnmatched(userID uuid.UUID) ([]models.Receipt, error) {
	var receipts []models.Receipt
	sub := r.db.Model(&models.Match{}).
		Select("receipt_id").
		Where("user_id = ? AND status = ?", userID, models.MatchStatusApproved)
	err := r.db.
		Where("user_id = ? AND id NOT IN (?)", userID, sub).
		Order("created_at DESC").
		Find(&receipts).Error
	return receipts, err
}
