package matching

import (
	"fmt"
	"sort"
	"strings"

	"previa-reconciliation-backend/internal/models"
)

// MaxSuggestionsPerTransaction caps how many candidates are surfaced for a
// single transaction.
const MaxSuggestionsPerTransaction = 5

// Candidate pairs a receipt with its score breakdown for one transaction.
type Candidate struct {
	Receipt   *models.Receipt
	Breakdown Breakdown
}

// RankCandidates scores every receipt against the transaction and returns
// the top candidates in descending confidence order, capped at
// MaxSuggestionsPerTransaction. Zero-score pairs are dropped. Ties break
// deterministically on receipt creation time, then id.
func (c Config) RankCandidates(tx *models.Transaction, receipts []*models.Receipt) []Candidate {
	var out []Candidate
	for _, r := range receipts {
		b := c.ScoreBreakdown(tx, r)
		if b.Total == 0 {
			continue
		}
		out = append(out, Candidate{Receipt: r, Breakdown: b})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Breakdown.Total != out[j].Breakdown.Total {
			return out[i].Breakdown.Total > out[j].Breakdown.Total
		}
		if !out[i].Receipt.CreatedAt.Equal(out[j].Receipt.CreatedAt) {
			return out[i].Receipt.CreatedAt.Before(out[j].Receipt.CreatedAt)
		}
		return out[i].Receipt.ID.String() < out[j].Receipt.ID.String()
	})

	if len(out) > MaxSuggestionsPerTransaction {
		out = out[:MaxSuggestionsPerTransaction]
	}
	return out
}

// Reason renders a human-readable explanation of the breakdown for the
// suggestion review UI.
func (b Breakdown) Reason() string {
	var parts []string
	switch b.AmountPoints {
	case maxAmountPoints:
		parts = append(parts, "amount matches exactly")
	case 30:
		parts = append(parts, "amount within $0.50")
	case 20:
		parts = append(parts, "amount within $1.00")
	case 10:
		parts = append(parts, "amount within $5.00")
	}
	switch b.DatePoints {
	case maxDatePoints:
		parts = append(parts, "same day")
	case 30:
		parts = append(parts, "1 day apart")
	case 20:
		parts = append(parts, "within 2 days")
	case 10:
		parts = append(parts, "within 7 days")
	}
	if b.MerchantPoints > 0 {
		parts = append(parts, "merchant name appears in description")
	}
	if len(parts) == 0 {
		return "weak candidate"
	}
	return fmt.Sprintf("%s (confidence %d)", strings.Join(parts, ", "), b.Total)
}
