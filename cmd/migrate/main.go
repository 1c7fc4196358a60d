// migrate applies or rolls back the embedded schema migrations.
//
// Usage: go run ./cmd/migrate [up|down]
package main

import (
	"log"
	"os"

	"accounting-backend/internal/config"
	"accounting-backend/internal/db"
	"accounting-backend/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	zl := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console"})
	defer func() { _ = zl.Sync() }()

	dir := db.Up
	if len(os.Args) > 1 {
		dir = db.Direction(os.Args[1])
	}
	if dir != db.Up && dir != db.Down {
		log.Fatalf("Usage: migrate [up|down], got %q", dir)
	}

	if err := db.Migrate(cfg.Database.URL, dir, zl); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
}
