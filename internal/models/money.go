package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// All core logic works in integer minor units (cents). Major-unit values
// only exist at ingestion boundaries (CSV statements, OCR payloads) and are
// converted here.

// ParseCents converts a major-unit amount string ("45.50", "-12") to cents.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// CentsFromFloat converts a major-unit float (as received in JSON payloads)
// to cents, rounding half away from zero.
func CentsFromFloat(f float64) int64 {
	return decimal.NewFromFloat(f).Shift(2).Round(0).IntPart()
}
