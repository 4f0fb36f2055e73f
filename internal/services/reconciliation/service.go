package reconciliation

import (
	"encoding/json"
	"fmt"
	"time"

	"previa-reconciliation-backend/internal/models"
	"previa-reconciliation-backend/internal/repository"
	"previa-reconciliation-backend/internal/services/matching"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Points awarded for reconciliation actions. Awards are best-effort and
// never block the action that triggered them.
const (
	pointsMatchApproved     = 10
	pointsSuggestionCleared = 2
)

// Service owns the match lifecycle: it is the only writer of Match rows and
// of Transaction.Status, and it always updates the two inside one database
// transaction so they cannot drift apart.
type Service struct {
	db              *gorm.DB
	transactionRepo *repository.TransactionRepository
	receiptRepo     *repository.ReceiptRepository
	suggestionRepo  *repository.SuggestionRepository
	matchRepo       *repository.MatchRepository
	scorer          matching.Config
	log             *logrus.Entry
}

func NewService(
	db *gorm.DB,
	transactionRepo *repository.TransactionRepository,
	receiptRepo *repository.ReceiptRepository,
	suggestionRepo *repository.SuggestionRepository,
	matchRepo *repository.MatchRepository,
) *Service {
	return &Service{
		db:              db,
		transactionRepo: transactionRepo,
		receiptRepo:     receiptRepo,
		suggestionRepo:  suggestionRepo,
		matchRepo:       matchRepo,
		scorer:          matching.DefaultConfig(),
		log:             logrus.WithField("component", "reconciliation"),
	}
}

func (s *Service) TransactionRepo() *repository.TransactionRepository {
	return s.transactionRepo
}

func (s *Service) ReceiptRepo() *repository.ReceiptRepository {
	return s.receiptRepo
}

func (s *Service) SuggestionRepo() *repository.SuggestionRepository {
	return s.suggestionRepo
}

func (s *Service) MatchRepo() *repository.MatchRepository {
	return s.matchRepo
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

// CreateMatch pairs a transaction with a receipt. The match insert and the
// transaction status flip are one unit: both happen or neither does.
func (s *Service) CreateMatch(userID, transactionID, receiptID uuid.UUID, confidence int, reviewedBy string) (*models.Match, error) {
	confidence = matching.ClampConfidence(confidence)

	var match *models.Match
	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.createMatchTx(tx, userID, transactionID, receiptID, confidence, reviewedBy)
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(userID, transactionID, &match.ID, models.AuditActionMatchCreated, reviewedBy, "")
	s.awardPoints(userID, pointsMatchApproved, "match approved")
	return match, nil
}

// createMatchTx runs inside an open database transaction so suggestion
// approval can share it.
func (s *Service) createMatchTx(tx *gorm.DB, userID, transactionID, receiptID uuid.UUID, confidence int, reviewedBy string) (*models.Match, error) {
	var txn models.Transaction
	if err := tx.First(&txn, "id = ? AND user_id = ?", transactionID, userID).Error; err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if txn.Status == models.TransactionStatusMatched {
		return nil, ErrTransactionMatched
	}

	var receipt models.Receipt
	if err := tx.First(&receipt, "id = ? AND user_id = ?", receiptID, userID).Error; err != nil {
		return nil, fmt.Errorf("load receipt: %w", err)
	}

	var consumed int64
	err := tx.Model(&models.Match{}).
		Where("receipt_id = ? AND status = ?", receiptID, models.MatchStatusApproved).
		Count(&consumed).Error
	if err != nil {
		return nil, err
	}
	if consumed > 0 {
		return nil, ErrReceiptConsumed
	}

	breakdown := s.scorer.ScoreBreakdown(&txn, &receipt)
	details, _ := json.Marshal(breakdown)

	match := &models.Match{
		ID:            uuid.New(),
		UserID:        userID,
		TransactionID: transactionID,
		ReceiptID:     receiptID,
		Confidence:    confidence,
		Status:        models.MatchStatusApproved,
		ReviewedBy:    reviewedBy,
		ReviewedAt:    time.Now(),
		Details:       datatypes.JSON(details),
		CreatedAt:     time.Now(),
	}
	if err := tx.Create(match).Error; err != nil {
		return nil, fmt.Errorf("insert match: %w", err)
	}

	err = tx.Model(&models.Transaction{}).
		Where("id = ?", transactionID).
		Update("status", models.TransactionStatusMatched).Error
	if err != nil {
		return nil, fmt.Errorf("mark transaction matched: %w", err)
	}

	return match, nil
}

// DeleteMatch undoes an approved match: the match row is removed and the
// transaction returns to unreconciled, again as one unit.
func (s *Service) DeleteMatch(userID, matchID uuid.UUID) (*models.Transaction, error) {
	var restored *models.Transaction
	var transactionID uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.First(&match, "id = ? AND user_id = ?", matchID, userID).Error; err != nil {
			return fmt.Errorf("load match: %w", err)
		}
		transactionID = match.TransactionID

		if err := tx.Delete(&models.Match{}, "id = ?", matchID).Error; err != nil {
			return fmt.Errorf("delete match: %w", err)
		}

		err := tx.Model(&models.Transaction{}).
			Where("id = ?", match.TransactionID).
			Update("status", models.TransactionStatusUnreconciled).Error
		if err != nil {
			return fmt.Errorf("restore transaction: %w", err)
		}

		var txn models.Transaction
		if err := tx.First(&txn, "id = ?", match.TransactionID).Error; err != nil {
			return err
		}
		restored = &txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(userID, transactionID, &matchID, models.AuditActionMatchDeleted, "", "match undone")
	return restored, nil
}

// ApproveSuggestion flips the suggestion to approved and creates the match
// it describes, all inside one database transaction.
func (s *Service) ApproveSuggestion(userID, suggestionID uuid.UUID, reviewedBy string) (*models.Match, error) {
	var match *models.Match
	var transactionID uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sg models.Suggestion
		if err := tx.First(&sg, "id = ? AND user_id = ?", suggestionID, userID).Error; err != nil {
			return fmt.Errorf("load suggestion: %w", err)
		}
		if sg.Status != models.SuggestionStatusSuggested {
			return ErrSuggestionResolved
		}
		transactionID = sg.TransactionID

		now := time.Now()
		err := tx.Model(&models.Suggestion{}).
			Where("id = ?", suggestionID).
			Updates(map[string]interface{}{
				"status":      models.SuggestionStatusApproved,
				"reviewed_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("approve suggestion: %w", err)
		}

		m, err := s.createMatchTx(tx, userID, sg.TransactionID, sg.ReceiptID, sg.Confidence, reviewedBy)
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(userID, transactionID, &match.ID, models.AuditActionSuggestionApproved, reviewedBy, "")
	s.awardPoints(userID, pointsMatchApproved, "suggestion approved")
	return match, nil
}

// RejectSuggestion marks the suggestion rejected. Rejecting an already
// rejected suggestion is a no-op, not an error.
func (s *Service) RejectSuggestion(userID, suggestionID uuid.UUID, reviewedBy string) (*models.Suggestion, error) {
	sg, err := s.suggestionRepo.GetByID(userID, suggestionID)
	if err != nil {
		return nil, fmt.Errorf("load suggestion: %w", err)
	}
	if sg.Status == models.SuggestionStatusRejected {
		return sg, nil
	}
	if sg.Status == models.SuggestionStatusApproved {
		return nil, ErrSuggestionResolved
	}

	now := time.Now()
	err = s.db.Model(&models.Suggestion{}).
		Where("id = ?", suggestionID).
		Updates(map[string]interface{}{
			"status":      models.SuggestionStatusRejected,
			"reviewed_at": now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("reject suggestion: %w", err)
	}

	sg.Status = models.SuggestionStatusRejected
	sg.ReviewedAt = &now

	s.recordAudit(userID, sg.TransactionID, nil, models.AuditActionSuggestionRejected, reviewedBy, "")
	s.awardPoints(userID, pointsSuggestionCleared, "suggestion rejected")
	return sg, nil
}

// BulkApproveSuggestions approves each suggestion in order, isolating
// per-item failures, and returns how many succeeded. A failing item never
// aborts the rest of the batch.
func (s *Service) BulkApproveSuggestions(userID uuid.UUID, suggestionIDs []uuid.UUID, reviewedBy string) int {
	approved := 0
	for _, id := range suggestionIDs {
		if _, err := s.ApproveSuggestion(userID, id, reviewedBy); err != nil {
			s.log.WithError(err).WithField("suggestion_id", id).Warn("bulk approve: skipping suggestion")
			continue
		}
		approved++
	}
	return approved
}

// GenerateSuggestions scores the transaction against every unmatched receipt
// and stores the top candidates as pending suggestions. Pairs that already
// have a pending suggestion are skipped.
func (s *Service) GenerateSuggestions(userID, transactionID uuid.UUID) ([]models.Suggestion, error) {
	txn, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if txn.Status != models.TransactionStatusUnreconciled {
		return nil, ErrTransactionMatched
	}

	receipts, err := s.receiptRepo.ListUnmatched(userID)
	if err != nil {
		return nil, fmt.Errorf("load receipts: %w", err)
	}

	candidates := make([]*models.Receipt, len(receipts))
	for i := range receipts {
		candidates[i] = &receipts[i]
	}

	var created []models.Suggestion
	for _, c := range s.scorer.RankCandidates(txn, candidates) {
		exists, err := s.suggestionRepo.HasPending(userID, transactionID, c.Receipt.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		sg := models.Suggestion{
			ID:            uuid.New(),
			UserID:        userID,
			TransactionID: transactionID,
			ReceiptID:     c.Receipt.ID,
			Confidence:    c.Breakdown.Total,
			Reason:        c.Breakdown.Reason(),
			Status:        models.SuggestionStatusSuggested,
			CreatedAt:     time.Now(),
		}
		if err := s.db.Create(&sg).Error; err != nil {
			return nil, fmt.Errorf("insert suggestion: %w", err)
		}
		created = append(created, sg)
	}
	return created, nil
}

// ScorePair previews the confidence between a transaction and a receipt
// without persisting anything.
func (s *Service) ScorePair(userID, transactionID, receiptID uuid.UUID) (matching.Breakdown, error) {
	txn, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		return matching.Breakdown{}, err
	}
	receipt, err := s.receiptRepo.GetByID(userID, receiptID)
	if err != nil {
		return matching.Breakdown{}, err
	}
	return s.scorer.ScoreBreakdown(txn, receipt), nil
}

// recordAudit is a best-effort secondary write.
func (s *Service) recordAudit(userID, transactionID uuid.UUID, matchID *uuid.UUID, action, performedBy, reason string) {
	entry := &models.MatchAuditLog{
		ID:            uuid.New(),
		UserID:        userID,
		TransactionID: transactionID,
		MatchID:       matchID,
		Action:        action,
		PerformedBy:   performedBy,
		Reason:        reason,
		CreatedAt:     time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		s.log.WithError(err).WithField("action", action).Warn("audit log write failed")
	}
}

// awardPoints is a best-effort secondary write.
func (s *Service) awardPoints(userID uuid.UUID, points int, reason string) {
	entry := &models.PointsEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Points:    points,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		s.log.WithError(err).Warn("points award failed")
	}
}
