package handler

import (
	"encoding/csv"
	"io"
	"net/http"
	"strings"
	"time"

	"previa-reconciliation-backend/internal/middleware"
	"previa-reconciliation-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Statement CSV columns: date, description, amount (signed, major units).
// Dates accept ISO and the dd/mm/yyyy format Australian banks export.
var statementDateFormats = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// UploadStatement accepts a bank statement CSV, creates an import record and
// parses rows in the background.
func (h *ReconciliationHandler) UploadStatement(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	userID := middleware.UserID(c)
	imp, err := h.service.CreateImport(userID, header.Filename)
	if err != nil {
		file.Close()
		respondError(c, err)
		return
	}

	go func() {
		defer file.Close()
		h.processStatementCSV(imp.ID, userID, file)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"import_id": imp.ID.String(),
		"status":    imp.Status,
	})
}

func (h *ReconciliationHandler) processStatementCSV(importID, userID uuid.UUID, reader io.Reader) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	// Skip header
	_, _ = csvReader.Read()

	processed := 0
	skipped := 0

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) < 3 || strings.Join(record, "") == "" {
			skipped++
			continue
		}

		date, ok := parseStatementDate(strings.TrimSpace(record[0]))
		if !ok {
			skipped++
			continue
		}

		description := strings.TrimSpace(record[1])
		if description == "" {
			skipped++
			continue
		}

		amountCents, err := models.ParseCents(strings.TrimSpace(record[2]))
		if err != nil {
			skipped++
			continue
		}

		if _, err := h.service.ImportTransaction(importID, userID, date, description, amountCents); err != nil {
			h.log.WithError(err).Warn("statement import: row insert failed")
			skipped++
			continue
		}
		processed++

		if processed%100 == 0 {
			if err := h.service.UpdateImportProgress(importID, processed, skipped); err != nil {
				h.log.WithError(err).Warn("statement import: progress update failed")
			}
		}
	}

	if err := h.service.MarkImportCompleted(importID, processed, skipped); err != nil {
		h.log.WithError(err).Warn("statement import: completion update failed")
	}
}

func parseStatementDate(s string) (time.Time, bool) {
	for _, layout := range statementDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GetImportProgress reports how far a background import has gotten.
func (h *ReconciliationHandler) GetImportProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "importId")
	if !ok {
		return
	}

	imp, err := h.service.GetImport(middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"processed_count": imp.ProcessedCount,
		"skipped_count":   imp.SkippedCount,
		"total_rows":      imp.TotalRows,
		"status":          imp.Status,
	})
}

// ListTransactions returns a cursor-paginated page of the user's transactions.
func (h *ReconciliationHandler) ListTransactions(c *gin.Context) {
	userID := middleware.UserID(c)
	status := c.Query("status")
	cursor := c.Query("cursor")
	search := c.Query("q")
	limit := 50

	items, nextCursor, hasMore, err := h.service.TransactionRepo().List(userID, status, cursor, limit, search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"next_cursor": nextCursor,
		"has_more":    hasMore,
	})
}

// ListUnmatchedTransactions returns unreconciled transactions, newest first.
func (h *ReconciliationHandler) ListUnmatchedTransactions(c *gin.Context) {
	txs, err := h.service.TransactionRepo().ListUnreconciled(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": txs})
}
