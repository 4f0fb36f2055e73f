package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "previa-reconciliation-backend/internal/handlers"
	"previa-reconciliation-backend/internal/middleware"
	"previa-reconciliation-backend/internal/repository"
	service "previa-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	transactionRepo := repository.NewTransactionRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	reconService := service.NewService(
		db,
		transactionRepo,
		receiptRepo,
		suggestionRepo,
		matchRepo,
	)

	reconHandler := handler.NewReconciliationHandler(reconService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := api.Group("")
	authed.Use(middleware.RequireUser())

	// Statement ingestion
	statements := authed.Group("/statements")
	statements.POST("/upload", reconHandler.UploadStatement)
	statements.GET("/:importId", reconHandler.GetImportProgress)

	// Transaction routes
	tx := authed.Group("/transactions")
	tx.GET("", reconHandler.ListTransactions)
	tx.GET("/unmatched", reconHandler.ListUnmatchedTransactions)
	tx.GET("/:id/suggestions", reconHandler.ListSuggestions)
	tx.POST("/:id/suggestions/generate", reconHandler.GenerateSuggestions)

	// Receipt routes
	receipts := authed.Group("/receipts")
	receipts.POST("", reconHandler.CreateReceipt)
	receipts.GET("/unmatched", reconHandler.ListUnmatchedReceipts)

	// Suggestion review
	suggestions := authed.Group("/suggestions")
	suggestions.POST("", reconHandler.IngestSuggestion)
	suggestions.POST("/:id/approve", reconHandler.ApproveSuggestion)
	suggestions.POST("/:id/reject", reconHandler.RejectSuggestion)
	suggestions.POST("/bulk-approve", reconHandler.BulkApproveSuggestions)

	// Match lifecycle
	matches := authed.Group("/matches")
	matches.POST("", reconHandler.CreateMatch)
	matches.DELETE("/:id", reconHandler.DeleteMatch)

	// Scoring preview and dashboard stats
	authed.GET("/score", reconHandler.ScorePair)
	authed.GET("/stats", reconHandler.GetStats)
}
