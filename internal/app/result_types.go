package app

import (
	"time"

	"accounting-backend/internal/core"
)

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice
	Total    int
}

// PartyListResult is returned by ListParties.
type PartyListResult struct {
	Parties []core.Party
	Total   int
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
	Total    int
}

// UnitListResult is returned by ListUnits.
type UnitListResult struct {
	Units []core.Unit
	Total int
}

// DashboardResult is returned by GetDashboard.
type DashboardResult struct {
	InvoiceCount   int
	PartyCount     int
	ProductCount   int
	UnitCount      int
	RecentInvoices []core.Invoice
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int    `json:"id"`
	Username string `json:"kullanici_adi"`
	FullName string `json:"adi_soyadi"`
}

// UserResult is returned by GetUser and CreateUser.
type UserResult struct {
	UserID    int       `json:"id"`
	Username  string    `json:"kullanici_adi"`
	Email     string    `json:"eposta"`
	FullName  string    `json:"adi_soyadi"`
	IsActive  bool      `json:"aktif"`
	CreatedAt time.Time `json:"kayit_tarihi"`
}
