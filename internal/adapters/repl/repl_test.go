package repl_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"accounting-backend/internal/adapters/repl"
	"accounting-backend/internal/app"
	"accounting-backend/internal/core"
	"accounting-backend/internal/core/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       app.ApplicationService
	store     *memstore.Store
	partyID   int
	productID int
	unitID    int
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memstore.New()
	svc := app.NewAppService(app.Services{
		Invoices: core.NewInvoiceService(store.Invoices(), nil, nil),
		Parties:  core.NewPartyService(store.Parties()),
		Products: core.NewProductService(store.Products()),
		Units:    core.NewUnitService(store.Units()),
		Users:    core.NewUserService(store.Users()),
	}, store, nil)

	ctx := context.Background()
	u, err := svc.CreateUnit(ctx, core.UnitInput{Code: "ad", Name: "Adet"})
	require.NoError(t, err)
	p, err := svc.CreateParty(ctx, core.PartyInput{Name: "Acme Ltd"})
	require.NoError(t, err)
	pr, err := svc.CreateProduct(ctx, core.ProductInput{Name: "Widget", UnitID: &u.ID, VATRate: 18})
	require.NoError(t, err)
	return fixture{svc: svc, store: store, partyID: p.ID, productID: pr.ID, unitID: u.ID}
}

func session(t *testing.T, f fixture, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, repl.Run(context.Background(), f.svc, in, &out))
	return out.String()
}

func TestNewInvoiceWizard(t *testing.T) {
	f := newFixture(t)
	line := fmt.Sprintf("%d %d 2 100 8", f.productID, f.unitID)

	out := session(t, f,
		fmt.Sprintf("/new-invoice %d", f.partyID),
		"1 2 3",
		line,
		"done",
		"2024-03-15",
		"counter sale",
		"/list",
		"/exit",
	)

	assert.Contains(t, out, "Creating invoice for: Acme Ltd")
	assert.Contains(t, out, "invalid format")
	assert.Contains(t, out, "gross 200.00  net 216.00")
	assert.Contains(t, out, "Invoice FTR202403150001 created")
	assert.Contains(t, out, "INVOICES (1)")
	require.Equal(t, 1, f.store.InvoiceCount())

	list, err := f.svc.ListInvoices(context.Background(), core.InvoiceFilter{})
	require.NoError(t, err)
	assert.Equal(t, "counter sale", list.Invoices[0].Note)
}

func TestNewInvoiceWizard_Cancel(t *testing.T) {
	f := newFixture(t)

	out := session(t, f,
		fmt.Sprintf("/new-invoice %d", f.partyID),
		fmt.Sprintf("%d %d 1 10 18", f.productID, f.unitID),
		"cancel",
	)
	assert.Contains(t, out, "Invoice creation cancelled.")
	assert.Zero(t, f.store.InvoiceCount())
}

func TestDispatch(t *testing.T) {
	f := newFixture(t)

	out := session(t, f,
		"hello",
		"/calc 3 19.99 18",
		"/show 42",
		"/new-invoice 999",
		"/frobnicate",
		"/help",
	)
	assert.Contains(t, out, "Commands start with '/'")
	assert.Contains(t, out, "Net   : 70.76")
	assert.Contains(t, out, "[REPL] Error: invoice not found")
	assert.Contains(t, out, "[REPL] Error: party not found")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "/new-invoice <party-id>")
}
