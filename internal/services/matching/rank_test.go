package matching

import (
	"testing"
	"time"

	"previa-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates_OrdersByConfidenceDescending(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := makeTransaction(-4550, day, "Woolworths Sydney")

	exact := makeReceipt(centsPtr(4550), datePtr(day), strPtr("Woolworths"))
	exact.ID = uuid.New()
	near := makeReceipt(centsPtr(4500), datePtr(day.AddDate(0, 0, 3)), nil)
	near.ID = uuid.New()
	far := makeReceipt(centsPtr(100), datePtr(day.AddDate(0, 0, 60)), strPtr("Bunnings"))
	far.ID = uuid.New()

	ranked := DefaultConfig().RankCandidates(tx, []*models.Receipt{far, near, exact})

	// far scores zero on every component and is dropped entirely.
	require.Len(t, ranked, 2)
	assert.Equal(t, exact.ID, ranked[0].Receipt.ID)
	assert.Equal(t, 100, ranked[0].Breakdown.Total)
	assert.Equal(t, near.ID, ranked[1].Receipt.ID)
	assert.Greater(t, ranked[0].Breakdown.Total, ranked[1].Breakdown.Total)
}

func TestRankCandidates_CapsAtFive(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := makeTransaction(-4550, day, "Woolworths")

	var receipts []*models.Receipt
	for i := 0; i < 8; i++ {
		r := makeReceipt(centsPtr(4550), datePtr(day), strPtr("Woolworths"))
		r.ID = uuid.New()
		r.CreatedAt = day.Add(time.Duration(i) * time.Hour)
		receipts = append(receipts, r)
	}

	ranked := DefaultConfig().RankCandidates(tx, receipts)
	assert.Len(t, ranked, MaxSuggestionsPerTransaction)
}

func TestRankCandidates_TieBreakIsDeterministic(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := makeTransaction(-4550, day, "Woolworths")

	older := makeReceipt(centsPtr(4550), datePtr(day), strPtr("Woolworths"))
	older.ID = uuid.New()
	older.CreatedAt = day

	newer := makeReceipt(centsPtr(4550), datePtr(day), strPtr("Woolworths"))
	newer.ID = uuid.New()
	newer.CreatedAt = day.Add(time.Hour)

	for i := 0; i < 5; i++ {
		ranked := DefaultConfig().RankCandidates(tx, []*models.Receipt{newer, older})
		require.Len(t, ranked, 2)
		assert.Equal(t, older.ID, ranked[0].Receipt.ID, "earlier receipt wins the tie")
	}
}

func TestBreakdownReason(t *testing.T) {
	b := Breakdown{AmountPoints: 40, DatePoints: 40, MerchantPoints: 20, Total: 100}
	reason := b.Reason()
	assert.Contains(t, reason, "amount matches exactly")
	assert.Contains(t, reason, "same day")
	assert.Contains(t, reason, "merchant name appears in description")
	assert.Contains(t, reason, "confidence 100")

	assert.Equal(t, "weak candidate", Breakdown{}.Reason())
}
