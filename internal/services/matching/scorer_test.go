package matching

import (
	"testing"
	"time"

	"previa-reconciliation-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func centsPtr(c int64) *int64 { return &c }
func datePtr(t time.Time) *time.Time { return &t }

func makeTransaction(amountCents int64, date time.Time, description string) *models.Transaction {
	return &models.Transaction{
		Date:        date,
		Description: description,
		AmountCents: amountCents,
		Status:      models.TransactionStatusUnreconciled,
	}
}

func makeReceipt(amountCents *int64, date *time.Time, merchant *string) *models.Receipt {
	return &models.Receipt{
		Merchant:    merchant,
		Date:        date,
		AmountCents: amountCents,
	}
}

func TestScore_PerfectMatch(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := makeTransaction(-4550, day, "Woolworths Sydney 1234")
	r := makeReceipt(centsPtr(4550), datePtr(day), strPtr("Woolworths"))

	b := DefaultConfig().ScoreBreakdown(tx, r)

	assert.Equal(t, 40, b.AmountPoints)
	assert.Equal(t, 40, b.DatePoints)
	assert.Equal(t, 20, b.MerchantPoints)
	assert.Equal(t, 100, b.Total)
}

func TestScore_FiveDaysApart(t *testing.T) {
	tx := makeTransaction(-4550, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "Woolworths Sydney 1234")
	r := makeReceipt(
		centsPtr(4550),
		datePtr(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		strPtr("Woolworths"),
	)

	b := DefaultConfig().ScoreBreakdown(tx, r)

	assert.Equal(t, 40, b.AmountPoints)
	assert.Equal(t, 10, b.DatePoints)
	assert.Equal(t, 20, b.MerchantPoints)
	assert.Equal(t, 70, b.Total)
}

func TestScore_AmountBands(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		receiptCents int64
		want         int
	}{
		{4550, 40},  // exact
		{4500, 30},  // 50c off
		{4460, 20},  // 90c off
		{4100, 10},  // $4.50 off
		{4000, 0},   // $5.50 off
	}

	for _, tc := range cases {
		tx := makeTransaction(-4550, day, "desc")
		r := makeReceipt(centsPtr(tc.receiptCents), datePtr(day), nil)
		b := DefaultConfig().ScoreBreakdown(tx, r)
		assert.Equal(t, tc.want, b.AmountPoints, "receipt cents %d", tc.receiptCents)
	}
}

func TestScore_DateBands(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		daysApart int
		want      int
	}{
		{0, 40},
		{1, 30},
		{2, 20},
		{7, 10},
		{8, 0},
	}

	for _, tc := range cases {
		tx := makeTransaction(-4550, base, "desc")
		r := makeReceipt(centsPtr(4550), datePtr(base.AddDate(0, 0, tc.daysApart)), nil)
		b := DefaultConfig().ScoreBreakdown(tx, r)
		assert.Equal(t, tc.want, b.DatePoints, "%d days apart", tc.daysApart)
	}
}

func TestScore_MerchantContainmentBothWays(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tx := makeTransaction(-4550, day, "WOOLWORTHS 1234 SYDNEY AU")
	r := makeReceipt(nil, nil, strPtr("woolworths"))
	assert.Equal(t, 20, DefaultConfig().ScoreBreakdown(tx, r).MerchantPoints)

	// Receipt merchant longer than the bank descriptor.
	tx2 := makeTransaction(-4550, day, "kmart")
	r2 := makeReceipt(nil, nil, strPtr("Kmart Australia Ltd"))
	assert.Equal(t, 20, DefaultConfig().ScoreBreakdown(tx2, r2).MerchantPoints)

	tx3 := makeTransaction(-4550, day, "Coles Express")
	r3 := makeReceipt(nil, nil, strPtr("Woolworths"))
	assert.Equal(t, 0, DefaultConfig().ScoreBreakdown(tx3, r3).MerchantPoints)
}

func TestScore_MissingFieldsExcludedByDefault(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := makeTransaction(-4550, day, "Woolworths")
	r := makeReceipt(nil, nil, strPtr("Woolworths"))

	b := DefaultConfig().ScoreBreakdown(tx, r)

	assert.Equal(t, 0, b.AmountPoints)
	assert.Equal(t, 0, b.DatePoints)
	assert.Equal(t, 20, b.Total)
}

func TestScore_MissingDateTreatAsToday(t *testing.T) {
	today := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	cfg := Config{
		OnMissingDate:   MissingDateTreatAsToday,
		OnMissingAmount: MissingAmountExclude,
		Now:             func() time.Time { return today },
	}

	tx := makeTransaction(-4550, today, "desc")
	r := makeReceipt(nil, nil, nil)

	assert.Equal(t, 40, cfg.ScoreBreakdown(tx, r).DatePoints)
}

func TestScore_MissingAmountTreatAsZero(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	cfg := Config{
		OnMissingDate:   MissingDateExclude,
		OnMissingAmount: MissingAmountTreatAsZero,
		Now:             time.Now,
	}

	// Zero-amount transaction against a missing receipt amount counts as an
	// exact amount match under this policy.
	tx := makeTransaction(0, day, "desc")
	r := makeReceipt(nil, nil, nil)
	assert.Equal(t, 40, cfg.ScoreBreakdown(tx, r).AmountPoints)

	tx2 := makeTransaction(-4550, day, "desc")
	assert.Equal(t, 0, cfg.ScoreBreakdown(tx2, r).AmountPoints)
}

func TestScore_AlwaysInRange(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	amounts := []int64{0, 1, 49, 50, 51, 100, 101, 500, 501, 4550, 1_000_000}
	days := []int{0, 1, 2, 3, 7, 8, 30, 365}

	for _, a := range amounts {
		for _, d := range days {
			tx := makeTransaction(-4550, base, "Woolworths")
			r := makeReceipt(centsPtr(a), datePtr(base.AddDate(0, 0, d)), strPtr("Woolworths"))
			score := DefaultConfig().Score(tx, r)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, ClampConfidence(-5))
	assert.Equal(t, 100, ClampConfidence(120))
	assert.Equal(t, 85, ClampConfidence(85))
}

func TestConfidenceFromUnit(t *testing.T) {
	assert.Equal(t, 0, ConfidenceFromUnit(0))
	assert.Equal(t, 85, ConfidenceFromUnit(0.85))
	assert.Equal(t, 88, ConfidenceFromUnit(0.876))
	assert.Equal(t, 100, ConfidenceFromUnit(1))
	assert.Equal(t, 100, ConfidenceFromUnit(1.7))
	assert.Equal(t, 0, ConfidenceFromUnit(-0.3))
}
