package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SuggestionStatusSuggested = "suggested"
	SuggestionStatusApproved  = "approved"
	SuggestionStatusRejected  = "rejected"
)

// Suggestion is a candidate pairing produced either by the external matcher
// or by the local heuristic generator, awaiting human review. Confidence is
// stored on the canonical 0-100 scale; the 0-1 floats the external matcher
// emits are converted at the ingestion boundary.
type Suggestion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	TransactionID uuid.UUID `gorm:"type:uuid;index" json:"transaction_id"`
	ReceiptID     uuid.UUID `gorm:"type:uuid;index" json:"receipt_id"`
	Confidence    int       `json:"confidence"`
	Reason        string    `json:"reason"`
	Status        string     `gorm:"index" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}
