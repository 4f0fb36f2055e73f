package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded against the match lifecycle.
const (
	AuditActionMatchCreated       = "match_created"
	AuditActionMatchDeleted       = "match_deleted"
	AuditActionSuggestionApproved = "suggestion_approved"
	AuditActionSuggestionRejected = "suggestion_rejected"
)

type MatchAuditLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;index"`
	TransactionID uuid.UUID  `gorm:"type:uuid;index"`
	MatchID       *uuid.UUID `gorm:"type:uuid"`
	Action        string
	PerformedBy   string
	Reason        string
	CreatedAt     time.Time
}
