// app is the one-shot command line client over the same application service
// the HTTP server uses.
//
// Usage: go run ./cmd/app [command] [args]
// Without a command it starts the interactive console.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"accounting-backend/internal/adapters/cli"
	"accounting-backend/internal/adapters/repl"
	"accounting-backend/internal/app"
	"accounting-backend/internal/apperr"
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

	// Diagnostics go to stderr so stdout stays machine readable.
	zl := logger.New(logger.Config{Level: "warn", Format: "console", Output: "stderr"})
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	pool, err := db.Open(ctx, db.Config{
		URL:            cfg.Database.URL,
		MaxConns:       2,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, zl)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	svc := app.NewAppService(app.PostgresServices(pool, zl, nil), pool, zl)

	if len(os.Args) < 2 {
		if err := repl.Run(ctx, svc, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("repl: %v", err)
		}
		return
	}

	if err := cli.Run(ctx, svc, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		pool.Close()
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if _, ok := apperr.As(err); ok {
			fmt.Fprintln(os.Stderr, "Error:", apperr.Message(err))
			zl.Debug("command failed", zap.Error(err))
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}
}
