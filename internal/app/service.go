package app

import (
	"context"

	"accounting-backend/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println and no display logic of any kind.
type ApplicationService interface {
	// ListInvoices returns invoice headers matching the filter, newest first.
	ListInvoices(ctx context.Context, filter core.InvoiceFilter) (*InvoiceListResult, error)

	// GetInvoice returns one invoice with its lines. A missing invoice is a NotFound error.
	GetInvoice(ctx context.Context, id int) (*core.Invoice, error)

	// CreateInvoice numbers, prices and stores an invoice together with its lines.
	CreateInvoice(ctx context.Context, in core.CreateInvoiceInput) (*core.Invoice, error)

	// DeleteInvoice removes an invoice and all of its lines.
	DeleteInvoice(ctx context.Context, id int) error

	// PreviewLine prices a single line without storing anything.
	PreviewLine(ctx context.Context, req PreviewLineRequest) (*core.LinePreview, error)

	// ListParties returns parties whose name or national id contain the filter values.
	ListParties(ctx context.Context, filter core.PartyFilter) (*PartyListResult, error)

	// GetParty returns a party by id. A missing party is a NotFound error.
	GetParty(ctx context.Context, id int) (*core.Party, error)

	CreateParty(ctx context.Context, in core.PartyInput) (*core.Party, error)
	UpdateParty(ctx context.Context, id int, patch core.PartyPatch) (*core.Party, error)

	// DeleteParty refuses while invoices reference the party.
	DeleteParty(ctx context.Context, id int) error

	// ListProducts returns products with their default unit name.
	ListProducts(ctx context.Context, filter core.ProductFilter) (*ProductListResult, error)
	GetProduct(ctx context.Context, id int) (*core.Product, error)
	CreateProduct(ctx context.Context, in core.ProductInput) (*core.Product, error)
	UpdateProduct(ctx context.Context, id int, patch core.ProductPatch) (*core.Product, error)

	// DeleteProduct refuses while invoice lines reference the product.
	DeleteProduct(ctx context.Context, id int) error

	ListUnits(ctx context.Context, filter core.UnitFilter) (*UnitListResult, error)
	GetUnit(ctx context.Context, id int) (*core.Unit, error)
	CreateUnit(ctx context.Context, in core.UnitInput) (*core.Unit, error)
	UpdateUnit(ctx context.Context, id int, patch core.UnitPatch) (*core.Unit, error)

	// DeleteUnit refuses while products reference the unit.
	DeleteUnit(ctx context.Context, id int) error

	// GetDashboard returns record counts and the most recent invoices.
	GetDashboard(ctx context.Context) (*DashboardResult, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	// Unknown users and wrong passwords both yield ErrInvalidCredentials.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)

	// CreateUser hashes the password and registers an active user.
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResult, error)

	// Ping checks that storage is reachable.
	Ping(ctx context.Context) error
}
