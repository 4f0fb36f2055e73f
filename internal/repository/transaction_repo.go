package repository

import (
	"strings"

	"previa-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a single transaction scoped to its owner.
func (r *TransactionRepository) GetByID(userID, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.First(&tx, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListUnreconciled returns the user's unreconciled transactions, newest first.
func (r *TransactionRepository) ListUnreconciled(userID uuid.UUID) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusUnreconciled).
		Order("date DESC").
		Find(&txs).Error
	return txs, err
}

// List returns a cursor-paginated page of the user's transactions with
// optional status and description filters.
func (r *TransactionRepository) List(
	userID uuid.UUID,
	status string,
	cursor string,
	limit int,
	search string,
) ([]models.Transaction, string, bool, error) {

	var txs []models.Transaction
	query := r.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		Limit(limit + 1)

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if cursor != "" {
		query = query.Where("id > ?", cursor)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(description) LIKE ?", like)
	}

	if err := query.Find(&txs).Error; err != nil {
		return nil, "", false, err
	}

	hasMore := false
	var nextCursor string
	if len(txs) > limit {
		hasMore = true
		nextCursor = txs[limit-1].ID.String()
		txs = txs[:limit]
	}
	return txs, nextCursor, hasMore, nil
}
