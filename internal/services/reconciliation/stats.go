package reconciliation

import (
	"previa-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// Stats summarizes a user's reconciliation position for the dashboard.
type Stats struct {
	TotalTransactions int64 `json:"total_transactions"`
	TotalAmountCents  int64 `json:"total_amount_cents"`

	UnreconciledCount int64 `json:"unreconciled_count"`
	UnreconciledCents int64 `json:"unreconciled_cents"`

	MatchedCount int64 `json:"matched_count"`
	MatchedCents int64 `json:"matched_cents"`

	ApprovedMatches    int64 `json:"approved_matches"`
	PendingSuggestions int64 `json:"pending_suggestions"`
	TotalPoints        int64 `json:"total_points"`
}

type statRow struct {
	Status string
	Count  int64
	Sum    int64
}

// GetStats aggregates transaction counts and sums by status plus match,
// suggestion and points totals for one user.
func (s *Service) GetStats(userID uuid.UUID) (Stats, error) {
	var stats Stats
	var rows []statRow

	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount_cents),0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}

	for _, r := range rows {
		stats.TotalTransactions += r.Count
		stats.TotalAmountCents += r.Sum

		switch r.Status {
		case models.TransactionStatusUnreconciled:
			stats.UnreconciledCount = r.Count
			stats.UnreconciledCents = r.Sum
		case models.TransactionStatusMatched:
			stats.MatchedCount = r.Count
			stats.MatchedCents = r.Sum
		}
	}

	err = s.db.Model(&models.Match{}).
		Where("user_id = ? AND status = ?", userID, models.MatchStatusApproved).
		Count(&stats.ApprovedMatches).Error
	if err != nil {
		return stats, err
	}

	err = s.db.Model(&models.Suggestion{}).
		Where("user_id = ? AND status = ?", userID, models.SuggestionStatusSuggested).
		Count(&stats.PendingSuggestions).Error
	if err != nil {
		return stats, err
	}

	var points struct{ Total int64 }
	err = s.db.Model(&models.PointsEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points),0) as total").
		Scan(&points).Error
	if err != nil {
		return stats, err
	}
	stats.TotalPoints = points.Total

	return stats, nil
}
