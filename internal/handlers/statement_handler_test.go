package handler

import (
	"fmt"
	"strings"
	"testing"

	"previa-reconciliation-backend/internal/models"
	"previa-reconciliation-backend/internal/repository"
	service "previa-reconciliation-backend/internal/services/reconciliation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandler(t *testing.T) (*ReconciliationHandler, *service.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Transaction{},
		&models.Receipt{},
		&models.Match{},
		&models.Suggestion{},
		&models.StatementImport{},
		&models.MatchAuditLog{},
		&models.PointsEntry{},
	))

	svc := service.NewService(
		db,
		repository.NewTransactionRepository(db),
		repository.NewReceiptRepository(db),
		repository.NewSuggestionRepository(db),
		repository.NewMatchRepository(db),
	)
	return NewReconciliationHandler(svc), svc, db
}

func TestProcessStatementCSV(t *testing.T) {
	h, svc, db := setupHandler(t)
	userID := uuid.New()

	imp, err := svc.CreateImport(userID, "statement.csv")
	require.NoError(t, err)

	csvData := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-15,EFTPOS WOOLWORTHS SYDNEY,-45.50",
		"18/01/2024,SALARY ACME PTY LTD,2500.00",
		"not-a-date,BAD ROW,-1.00",
		"2024-01-16,,-2.00",
		"2024-01-17,COLES EXPRESS,abc",
	}, "\n")

	h.processStatementCSV(imp.ID, userID, strings.NewReader(csvData))

	var txs []models.Transaction
	require.NoError(t, db.Where("user_id = ?", userID).Order("date ASC").Find(&txs).Error)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(-4550), txs[0].AmountCents)
	assert.Equal(t, "EFTPOS WOOLWORTHS SYDNEY", txs[0].Description)
	assert.Equal(t, models.TransactionStatusUnreconciled, txs[0].Status)
	assert.Equal(t, int64(250000), txs[1].AmountCents)

	after, err := svc.GetImport(userID, imp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ImportStatusCompleted, after.Status)
	assert.Equal(t, 2, after.ProcessedCount)
	assert.Equal(t, 3, after.SkippedCount)
	assert.Equal(t, 5, after.TotalRows)
}

func TestParseStatementDate(t *testing.T) {
	for _, in := range []string{"2024-01-15", "15/01/2024", "15-01-2024"} {
		d, ok := parseStatementDate(in)
		require.True(t, ok, in)
		assert.Equal(t, 15, d.Day())
		assert.Equal(t, 1, int(d.Month()))
	}

	_, ok := parseStatementDate("01/15/2024")
	assert.False(t, ok, "month 15 is invalid under dd/mm/yyyy")
}
