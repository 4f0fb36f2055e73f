package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
)

// StatementImport tracks one uploaded bank statement file while its rows are
// parsed into transactions in the background.
type StatementImport struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Filename       string     `json:"filename"`
	TotalRows      int        `json:"total_rows"`
	ProcessedCount int        `json:"processed_count"`
	SkippedCount   int        `json:"skipped_count"`
	Status         string     `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
