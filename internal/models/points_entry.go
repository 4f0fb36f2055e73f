package models

import (
	"time"

	"github.com/google/uuid"
)

// PointsEntry is a gamification ledger row. Awards are a best-effort side
// effect of reconciliation actions: a failed award never blocks the action.
type PointsEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
