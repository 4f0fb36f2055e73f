package handler

import (
	"errors"
	"net/http"

	"previa-reconciliation-backend/internal/middleware"
	"previa-reconciliation-backend/internal/models"
	service "previa-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReconciliationHandler struct {
	service *service.Service
	log     *logrus.Entry
}

func NewReconciliationHandler(s *service.Service) *ReconciliationHandler {
	return &ReconciliationHandler{
		service: s,
		log:     logrus.WithField("component", "handlers"),
	}
}

// respondError maps service errors onto HTTP statuses. Store failures are
// surfaced, never swallowed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrTransactionMatched),
		errors.Is(err, service.ErrReceiptConsumed),
		errors.Is(err, service.ErrSuggestionResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ListSuggestions returns the pending suggestions for one transaction,
// ranked by confidence and capped.
func (h *ReconciliationHandler) ListSuggestions(c *gin.Context) {
	txID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	suggestions, err := h.service.SuggestionRepo().List(
		userID, models.SuggestionStatusSuggested, &txID, 5)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GenerateSuggestions runs the heuristic scorer for one transaction and
// stores the resulting candidates.
func (h *ReconciliationHandler) GenerateSuggestions(c *gin.Context) {
	txID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	created, err := h.service.GenerateSuggestions(middleware.UserID(c), txID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": created, "created": len(created)})
}

func (h *ReconciliationHandler) ApproveSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	match, err := h.service.ApproveSuggestion(userID, id, userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "suggestion approved", "match": match})
}

func (h *ReconciliationHandler) RejectSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	sg, err := h.service.RejectSuggestion(userID, id, userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "suggestion rejected", "suggestion": sg})
}

func (h *ReconciliationHandler) BulkApproveSuggestions(c *gin.Context) {
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ids := make([]uuid.UUID, 0, len(payload.IDs))
	for _, raw := range payload.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion id: " + raw})
			return
		}
		ids = append(ids, id)
	}

	userID := middleware.UserID(c)
	approved := h.service.BulkApproveSuggestions(userID, ids, userID.String())

	c.JSON(http.StatusOK, gin.H{
		"message":  "bulk approve completed",
		"approved": approved,
		"failed":   len(ids) - approved,
	})
}

// CreateMatch manually pairs a transaction with a receipt. The confidence is
// computed server-side from the pair.
func (h *ReconciliationHandler) CreateMatch(c *gin.Context) {
	var payload struct {
		TransactionID string `json:"transaction_id"`
		ReceiptID     string `json:"receipt_id"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	txID, err := uuid.Parse(payload.TransactionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	receiptID, err := uuid.Parse(payload.ReceiptID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}

	userID := middleware.UserID(c)
	breakdown, err := h.service.ScorePair(userID, txID, receiptID)
	if err != nil {
		respondError(c, err)
		return
	}

	match, err := h.service.CreateMatch(userID, txID, receiptID, breakdown.Total, userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match created", "match": match})
}

// DeleteMatch undoes a match and reports the restored transaction.
func (h *ReconciliationHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.service.DeleteMatch(middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match deleted", "transaction": txn})
}

// ScorePair previews the confidence for a candidate pairing.
func (h *ReconciliationHandler) ScorePair(c *gin.Context) {
	txID, err := uuid.Parse(c.Query("transaction_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction_id"})
		return
	}
	receiptID, err := uuid.Parse(c.Query("receipt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt_id"})
		return
	}

	breakdown, err := h.service.ScorePair(middleware.UserID(c), txID, receiptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *ReconciliationHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
