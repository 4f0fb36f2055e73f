package main

import (
	"time"

	"previa-reconciliation-backend/internal/config"
	"previa-reconciliation-backend/internal/models"
	"previa-reconciliation-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on system env")
	}

	db := config.InitDB()

	db.AutoMigrate(
		&models.Transaction{},
		&models.Receipt{},
		&models.Match{},
		&models.Suggestion{},
		&models.StatementImport{},
		&models.MatchAuditLog{},
		&models.PointsEntry{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	if err := r.Run(config.ServerAddr()); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
