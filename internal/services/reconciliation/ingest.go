package reconciliation

import (
	"fmt"
	"time"

	"previa-reconciliation-backend/internal/models"
	"previa-reconciliation-backend/internal/services/matching"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateImport records a new statement upload before background parsing starts.
func (s *Service) CreateImport(userID uuid.UUID, filename string) (*models.StatementImport, error) {
	imp := &models.StatementImport{
		ID:        uuid.New(),
		UserID:    userID,
		Filename:  filename,
		Status:    models.ImportStatusProcessing,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(imp).Error; err != nil {
		return nil, fmt.Errorf("create import: %w", err)
	}
	return imp, nil
}

// ImportTransaction inserts one statement row as an unreconciled transaction.
func (s *Service) ImportTransaction(importID, userID uuid.UUID, date time.Time, description string, amountCents int64) (*models.Transaction, error) {
	txn := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		ImportID:    &importID,
		Date:        date,
		Description: description,
		AmountCents: amountCents,
		Status:      models.TransactionStatusUnreconciled,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(txn).Error; err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return txn, nil
}

// UpdateImportProgress persists the running row counts for an import.
func (s *Service) UpdateImportProgress(importID uuid.UUID, processed, skipped int) error {
	return s.db.Model(&models.StatementImport{}).
		Where("id = ?", importID).
		Updates(map[string]interface{}{
			"processed_count": processed,
			"skipped_count":   skipped,
		}).Error
}

// MarkImportCompleted finalizes an import's counters and status.
func (s *Service) MarkImportCompleted(importID uuid.UUID, processed, skipped int) error {
	now := time.Now()
	return s.db.Model(&models.StatementImport{}).
		Where("id = ?", importID).
		Updates(map[string]interface{}{
			"processed_count": processed,
			"skipped_count":   skipped,
			"total_rows":      processed + skipped,
			"status":          models.ImportStatusCompleted,
			"completed_at":    now,
		}).Error
}

// GetImport fetches an import scoped to its owner.
func (s *Service) GetImport(userID, importID uuid.UUID) (*models.StatementImport, error) {
	var imp models.StatementImport
	err := s.db.First(&imp, "id = ? AND user_id = ?", importID, userID).Error
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// ReceiptInput carries OCR-extracted fields as they arrive at the boundary:
// major-unit float amounts, optional everything. Amounts are normalized to
// cents here and nowhere else.
type ReceiptInput struct {
	Merchant             *string
	Date                 *time.Time
	Amount               *float64
	Tax                  *float64
	ExtractionConfidence float64
	Extraction           []byte
}

// CreateReceipt stores an OCR extraction result as a receipt.
func (s *Service) CreateReceipt(userID uuid.UUID, in ReceiptInput) (*models.Receipt, error) {
	receipt := &models.Receipt{
		ID:                   uuid.New(),
		UserID:               userID,
		Merchant:             in.Merchant,
		Date:                 in.Date,
		ExtractionConfidence: clampUnit(in.ExtractionConfidence),
		CreatedAt:            time.Now(),
	}
	if in.Amount != nil {
		cents := models.CentsFromFloat(*in.Amount)
		receipt.AmountCents = &cents
	}
	if in.Tax != nil {
		cents := models.CentsFromFloat(*in.Tax)
		receipt.TaxCents = &cents
	}
	if len(in.Extraction) > 0 {
		receipt.Extraction = datatypes.JSON(in.Extraction)
	}

	if err := s.db.Create(receipt).Error; err != nil {
		return nil, fmt.Errorf("insert receipt: %w", err)
	}
	return receipt, nil
}

// IngestSuggestion stores a candidate pairing from the external matcher.
// The external scale is a 0-1 float; it is converted to the canonical 0-100
// integer scale at this boundary only.
func (s *Service) IngestSuggestion(userID, transactionID, receiptID uuid.UUID, unitConfidence float64, reason string) (*models.Suggestion, error) {
	if _, err := s.transactionRepo.GetByID(userID, transactionID); err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if _, err := s.receiptRepo.GetByID(userID, receiptID); err != nil {
		return nil, fmt.Errorf("load receipt: %w", err)
	}

	sg := &models.Suggestion{
		ID:            uuid.New(),
		UserID:        userID,
		TransactionID: transactionID,
		ReceiptID:     receiptID,
		Confidence:    matching.ConfidenceFromUnit(unitConfidence),
		Reason:        reason,
		Status:        models.SuggestionStatusSuggested,
		CreatedAt:     time.Now(),
	}
	if err := s.db.Create(sg).Error; err != nil {
		return nil, fmt.Errorf("insert suggestion: %w", err)
	}
	return sg, nil
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
