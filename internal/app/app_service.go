package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by AuthenticateUser for any failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

const (
	bcryptCost        = bcrypt.DefaultCost
	minPasswordLength = 6
	recentInvoices    = 5
)

// Services bundles the core services composed by the application layer.
type Services struct {
	Invoices core.InvoiceService
	Parties  core.PartyService
	Products core.ProductService
	Units    core.UnitService
	Users    core.UserService
}

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appService struct {
	invoices core.InvoiceService
	parties  core.PartyService
	products core.ProductService
	units    core.UnitService
	users    core.UserService
	pinger   Pinger
	log      *zap.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(svc Services, pinger Pinger, log *zap.Logger) ApplicationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &appService{
		invoices: svc.Invoices,
		parties:  svc.Parties,
		products: svc.Products,
		units:    svc.Units,
		users:    svc.Users,
		pinger:   pinger,
		log:      log,
	}
}

func (s *appService) ListInvoices(ctx context.Context, filter core.InvoiceFilter) (*InvoiceListResult, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices, Total: len(invoices)}, nil
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*core.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperr.NotFound("invoice not found")
	}
	return inv, nil
}

func (s *appService) CreateInvoice(ctx context.Context, in core.CreateInvoiceInput) (*core.Invoice, error) {
	return s.invoices.Create(ctx, in)
}

func (s *appService) DeleteInvoice(ctx context.Context, id int) error {
	return s.invoices.Delete(ctx, id)
}

func (s *appService) PreviewLine(_ context.Context, req PreviewLineRequest) (*core.LinePreview, error) {
	return s.invoices.Preview(req.Quantity, req.UnitPrice, req.VATRate)
}

func (s *appService) ListParties(ctx context.Context, filter core.PartyFilter) (*PartyListResult, error) {
	parties, err := s.parties.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PartyListResult{Parties: parties, Total: len(parties)}, nil
}

func (s *appService) GetParty(ctx context.Context, id int) (*core.Party, error) {
	p, err := s.parties.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("party not found")
	}
	return p, nil
}

func (s *appService) CreateParty(ctx context.Context, in core.PartyInput) (*core.Party, error) {
	return s.parties.Create(ctx, in)
}

func (s *appService) UpdateParty(ctx context.Context, id int, patch core.PartyPatch) (*core.Party, error) {
	return s.parties.Update(ctx, id, patch)
}

func (s *appService) DeleteParty(ctx context.Context, id int) error {
	return s.parties.Delete(ctx, id)
}

func (s *appService) ListProducts(ctx context.Context, filter core.ProductFilter) (*ProductListResult, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products, Total: len(products)}, nil
}

func (s *appService) GetProduct(ctx context.Context, id int) (*core.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product not found")
	}
	return p, nil
}

func (s *appService) CreateProduct(ctx context.Context, in core.ProductInput) (*core.Product, error) {
	return s.products.Create(ctx, in)
}

func (s *appService) UpdateProduct(ctx context.Context, id int, patch core.ProductPatch) (*core.Product, error) {
	return s.products.Update(ctx, id, patch)
}

func (s *appService) DeleteProduct(ctx context.Context, id int) error {
	return s.products.Delete(ctx, id)
}

func (s *appService) ListUnits(ctx context.Context, filter core.UnitFilter) (*UnitListResult, error) {
	units, err := s.units.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &UnitListResult{Units: units, Total: len(units)}, nil
}

func (s *appService) GetUnit(ctx context.Context, id int) (*core.Unit, error) {
	u, err := s.units.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("unit not found")
	}
	return u, nil
}

func (s *appService) CreateUnit(ctx context.Context, in core.UnitInput) (*core.Unit, error) {
	return s.units.Create(ctx, in)
}

func (s *appService) UpdateUnit(ctx context.Context, id int, patch core.UnitPatch) (*core.Unit, error) {
	return s.units.Update(ctx, id, patch)
}

func (s *appService) DeleteUnit(ctx context.Context, id int) error {
	return s.units.Delete(ctx, id)
}

// GetDashboard counts every master-data table and lists the latest invoices.
func (s *appService) GetDashboard(ctx context.Context) (*DashboardResult, error) {
	invoices, err := s.invoices.List(ctx, core.InvoiceFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard invoices: %w", err)
	}
	parties, err := s.parties.List(ctx, core.PartyFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard parties: %w", err)
	}
	products, err := s.products.List(ctx, core.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard products: %w", err)
	}
	units, err := s.units.List(ctx, core.UnitFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard units: %w", err)
	}

	recent := invoices
	if len(recent) > recentInvoices {
		recent = recent[:recentInvoices]
	}
	return &DashboardResult{
		InvoiceCount:   len(invoices),
		PartyCount:     len(parties),
		ProductCount:   len(products),
		UnitCount:      len(units),
		RecentInvoices: recent,
	}, nil
}

// AuthenticateUser verifies credentials against the stored bcrypt hash.
func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Info("login rejected", zap.String("username", u.Username))
		return nil, ErrInvalidCredentials
	}
	return &UserSession{UserID: u.ID, Username: u.Username, FullName: u.FullName}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userResult(u), nil
}

func (s *appService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResult, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "password cannot be hashed")
	}
	u, err := s.users.Create(ctx, &core.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.Int("user_id", u.ID), zap.String("username", u.Username))
	return userResult(u), nil
}

func (s *appService) Ping(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	return s.pinger.Ping(ctx)
}

func userResult(u *core.User) *UserResult {
	return &UserResult{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
