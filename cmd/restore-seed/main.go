// restore-seed wipes the database and loads a small demo data set: units,
// parties, products, one invoice and an admin user.
//
// Usage: go run ./cmd/restore-seed [admin password]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"accounting-backend/internal/app"
	"accounting-backend/internal/config"
	"accounting-backend/internal/core"
	"accounting-backend/internal/db"
	"accounting-backend/internal/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultAdminPassword = "admin123"

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

	ctx := context.Background()
	pool, err := db.Open(ctx, db.Config{URL: cfg.Database.URL, MaxConns: 2, ConnectTimeout: cfg.Database.ConnectTimeout}, zl)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	log.Println("Clearing existing data...")
	if _, err := pool.Exec(ctx,
		`TRUNCATE fatura_detay, fatura, urun, cari, birim, kullanici RESTART IDENTITY CASCADE`); err != nil {
		log.Fatalf("Failed to clear tables: %v", err)
	}

	svc := app.NewAppService(app.PostgresServices(pool, zl, nil), pool, zl)
	if err := seed(ctx, svc, adminPassword()); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	log.Println("Seed data restored successfully.")
}

func adminPassword() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return defaultAdminPassword
}

func seed(ctx context.Context, svc app.ApplicationService, password string) error {
	log.Println("Restoring units...")
	kg := decimal.NewFromInt(1)
	adet, err := svc.CreateUnit(ctx, core.UnitInput{Code: "ad", Name: "Adet"})
	if err != nil {
		return err
	}
	kilo, err := svc.CreateUnit(ctx, core.UnitInput{Code: "kg", Name: "Kilogram", KgFactor: &kg})
	if err != nil {
		return err
	}

	log.Println("Restoring parties...")
	acme, err := svc.CreateParty(ctx, core.PartyInput{Name: "Acme Ticaret Ltd.", Note: "demo"})
	if err != nil {
		return err
	}
	if _, err := svc.CreateParty(ctx, core.PartyInput{Name: "Ahmet Yılmaz", NationalID: "10000000146"}); err != nil {
		return err
	}

	log.Println("Restoring products...")
	widget, err := svc.CreateProduct(ctx, core.ProductInput{
		Barcode: "8690000000011", ShortName: "WDG", Name: "Widget", UnitID: &adet.ID, VATRate: 20,
	})
	if err != nil {
		return err
	}
	flour, err := svc.CreateProduct(ctx, core.ProductInput{
		Barcode: "8690000000028", ShortName: "UN", Name: "Un", UnitID: &kilo.ID, VATRate: 1,
	})
	if err != nil {
		return err
	}

	log.Println("Creating demo invoice...")
	inv, err := svc.CreateInvoice(ctx, core.CreateInvoiceInput{
		Date:    core.DateOf(time.Now()),
		PartyID: acme.ID,
		Note:    "demo invoice",
		Lines: []core.InvoiceLineInput{
			{ProductID: widget.ID, UnitID: adet.ID, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("19.99"), VATRate: 20},
			{ProductID: flour.ID, UnitID: kilo.ID, Quantity: decimal.RequireFromString("12.5"), UnitPrice: decimal.RequireFromString("24.90"), VATRate: 1},
		},
	})
	if err != nil {
		return err
	}
	log.Printf("Invoice %s created, total %s", inv.Number, inv.TotalAmount.StringFixed(core.MoneyPlaces))

	log.Println("Creating admin user...")
	_, err = svc.CreateUser(ctx, app.CreateUserRequest{Username: "admin", Password: password, FullName: "Administrator"})
	return err
}
