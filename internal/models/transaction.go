package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction statuses. A transaction is "matched" exactly while one
// approved Match references it; the lifecycle service keeps the two in sync.
const (
	TransactionStatusUnreconciled = "unreconciled"
	TransactionStatusMatched      = "matched"
)

type Transaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	ImportID    *uuid.UUID `gorm:"type:uuid;index" json:"import_id,omitempty"`
	Date        time.Time  `gorm:"index" json:"date"`
	Description string     `json:"description"`
	// AmountCents is signed, in minor units; negative values are expenses.
	AmountCents int64     `gorm:"index" json:"amount_cents"`
	Category    *string   `json:"category,omitempty"`
	Status      string    `gorm:"index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
