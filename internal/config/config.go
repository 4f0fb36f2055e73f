package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection from environment variables.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "previa"),
		getenv("DB_PASSWORD", "previa"),
		getenv("DB_NAME", "previa"),
		getenv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	return db
}

// ServerAddr returns the listen address for the HTTP server.
func ServerAddr() string {
	return ":" + getenv("PORT", "8080")
}

// AllowedOrigins returns the CORS origins for the dashboard frontend.
func AllowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		return []string{v}
	}
	return []string{"http://localhost:3000"}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
