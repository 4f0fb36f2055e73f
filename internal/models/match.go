package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MatchStatusApproved = "approved"
	MatchStatusRejected = "rejected"
)

// Match is a confirmed pairing between a Transaction and a Receipt.
// Undo deletes the row outright; no "undone" state is retained.
type Match struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	TransactionID uuid.UUID `gorm:"type:uuid;index" json:"transaction_id"`
	ReceiptID     uuid.UUID `gorm:"type:uuid;index" json:"receipt_id"`
	// Confidence is the canonical 0-100 integer scale.
	Confidence int            `json:"confidence"`
	Status     string         `gorm:"index" json:"status"`
	ReviewedBy string         `json:"reviewed_by"`
	ReviewedAt time.Time      `json:"reviewed_at"`
	Details    datatypes.JSON `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
