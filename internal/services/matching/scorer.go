package matching

import (
	"strings"
	"time"

	"previa-reconciliation-backend/internal/models"
)

// Point budget: 40 amount + 40 date + 20 merchant = 100.
const (
	maxAmountPoints   = 40
	maxDatePoints     = 40
	maxMerchantPoints = 20
)

// Missing-field policies. Receipt extraction regularly fails per-field, and
// an implicit fallback (amount 0, date "now") silently skews scores, so the
// policy is explicit configuration.
type MissingDatePolicy string

const (
	MissingDateExclude      MissingDatePolicy = "exclude_component"
	MissingDateTreatAsToday MissingDatePolicy = "treat_as_today"
)

type MissingAmountPolicy string

const (
	MissingAmountExclude     MissingAmountPolicy = "exclude_component"
	MissingAmountTreatAsZero MissingAmountPolicy = "treat_as_zero"
)

// Config controls how the scorer handles receipts with missing fields.
// Now is injectable so TreatAsToday is testable.
type Config struct {
	OnMissingDate   MissingDatePolicy
	OnMissingAmount MissingAmountPolicy
	Now             func() time.Time
}

func DefaultConfig() Config {
	return Config{
		OnMissingDate:   MissingDateExclude,
		OnMissingAmount: MissingAmountExclude,
		Now:             time.Now,
	}
}

// Breakdown is the per-component view of a score, persisted on matches so a
// reviewer can see why a pairing was suggested.
type Breakdown struct {
	AmountPoints   int `json:"amount_points"`
	DatePoints     int `json:"date_points"`
	MerchantPoints int `json:"merchant_points"`
	Total          int `json:"total"`
}

// Score returns the match confidence between a transaction and a receipt on
// the canonical 0-100 scale.
func (c Config) Score(tx *models.Transaction, r *models.Receipt) int {
	return c.ScoreBreakdown(tx, r).Total
}

// ScoreBreakdown computes the individual components. The sum is ≤ 100 by
// construction; the clamp guards against future band edits.
func (c Config) ScoreBreakdown(tx *models.Transaction, r *models.Receipt) Breakdown {
	b := Breakdown{
		AmountPoints:   c.amountPoints(tx, r),
		DatePoints:     c.datePoints(tx, r),
		MerchantPoints: merchantPoints(tx.Description, r.Merchant),
	}
	b.Total = ClampConfidence(b.AmountPoints + b.DatePoints + b.MerchantPoints)
	return b
}

func (c Config) amountPoints(tx *models.Transaction, r *models.Receipt) int {
	var receiptCents int64
	switch {
	case r.AmountCents != nil:
		receiptCents = *r.AmountCents
	case c.OnMissingAmount == MissingAmountTreatAsZero:
		receiptCents = 0
	default:
		return 0
	}

	// Transactions are signed (expenses negative); receipts always carry a
	// positive total. Compare magnitudes.
	txCents := tx.AmountCents
	if txCents < 0 {
		txCents = -txCents
	}
	if receiptCents < 0 {
		receiptCents = -receiptCents
	}

	switch diff := AmountDifferenceCents(txCents, receiptCents); {
	case diff == 0:
		return maxAmountPoints
	case diff <= 50:
		return 30
	case diff <= 100:
		return 20
	case diff <= 500:
		return 10
	default:
		return 0
	}
}

func (c Config) datePoints(tx *models.Transaction, r *models.Receipt) int {
	var receiptDate time.Time
	switch {
	case r.Date != nil:
		receiptDate = *r.Date
	case c.OnMissingDate == MissingDateTreatAsToday:
		receiptDate = c.Now()
	default:
		return 0
	}

	switch days := DateDifferenceDays(tx.Date, receiptDate); {
	case days == 0:
		return maxDatePoints
	case days == 1:
		return 30
	case days <= 2:
		return 20
	case days <= 7:
		return 10
	default:
		return 0
	}
}

// merchantPoints awards the full component when either string contains the
// other, case-insensitively. Bank descriptors usually embed the merchant name
// with extra noise ("WOOLWORTHS 1234 SYDNEY"), so containment either way counts.
func merchantPoints(description string, merchant *string) int {
	if merchant == nil {
		return 0
	}
	d := strings.ToLower(strings.TrimSpace(description))
	m := strings.ToLower(strings.TrimSpace(*merchant))
	if d == "" || m == "" {
		return 0
	}
	if strings.Contains(d, m) || strings.Contains(m, d) {
		return maxMerchantPoints
	}
	return 0
}

// ClampConfidence bounds a confidence value to the canonical 0-100 range.
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ConfidenceFromUnit converts an external 0-1 float confidence to the
// canonical 0-100 integer scale. Only ingestion boundaries should call this.
func ConfidenceFromUnit(f float64) int {
	return ClampConfidence(int(f*100 + 0.5))
}
