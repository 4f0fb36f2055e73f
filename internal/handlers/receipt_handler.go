package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"previa-reconciliation-backend/internal/middleware"
	service "previa-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateReceipt ingests an OCR extraction result. Amounts arrive in major
// units and are converted to cents at this boundary.
func (h *ReconciliationHandler) CreateReceipt(c *gin.Context) {
	var payload struct {
		Merchant             *string         `json:"merchant"`
		Date                 *string         `json:"date"` // "2006-01-02"
		Amount               *float64        `json:"amount"`
		Tax                  *float64        `json:"tax"`
		ExtractionConfidence float64         `json:"extraction_confidence"`
		Extraction           json.RawMessage `json:"extraction"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	in := service.ReceiptInput{
		Merchant:             payload.Merchant,
		Amount:               payload.Amount,
		Tax:                  payload.Tax,
		ExtractionConfidence: payload.ExtractionConfidence,
		Extraction:           payload.Extraction,
	}
	if payload.Date != nil {
		d, err := time.Parse("2006-01-02", *payload.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-mm-dd"})
			return
		}
		in.Date = &d
	}

	receipt, err := h.service.CreateReceipt(middleware.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "receipt created", "receipt": receipt})
}

// ListUnmatchedReceipts returns receipts not consumed by any approved match.
func (h *ReconciliationHandler) ListUnmatchedReceipts(c *gin.Context) {
	receipts, err := h.service.ReceiptRepo().ListUnmatched(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": receipts})
}

// IngestSuggestion accepts a candidate pairing from the external matcher.
// Its 0-1 confidence is rescaled to 0-100 here.
func (h *ReconciliationHandler) IngestSuggestion(c *gin.Context) {
	var payload struct {
		TransactionID string  `json:"transaction_id"`
		ReceiptID     string  `json:"receipt_id"`
		Confidence    float64 `json:"confidence"`
		Reason        string  `json:"reason"`
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

	sg, err := h.service.IngestSuggestion(middleware.UserID(c), txID, receiptID, payload.Confidence, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "suggestion recorded", "suggestion": sg})
}
