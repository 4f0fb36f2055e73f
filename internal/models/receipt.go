package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Receipt is an OCR-extracted proof of purchase. Merchant, date and amounts
// are optional because extraction can fail per-field; the scorer's
// missing-field policy decides how absent fields weigh in.
type Receipt struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Merchant    *string    `gorm:"index" json:"merchant,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	TaxCents    *int64     `json:"tax_cents,omitempty"`
	// ExtractionConfidence is the OCR engine's own 0-1 estimate. It is
	// unrelated to match confidence.
	ExtractionConfidence float64        `json:"extraction_confidence"`
	Extraction           datatypes.JSON `json:"extraction,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}
