package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"accounting-backend/internal/adapters/cli"
	"accounting-backend/internal/app"
	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"
	"accounting-backend/internal/core/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCLI(t *testing.T) (app.ApplicationService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	svc := app.NewAppService(app.Services{
		Invoices: core.NewInvoiceService(store.Invoices(), nil, nil),
		Parties:  core.NewPartyService(store.Parties()),
		Products: core.NewProductService(store.Products()),
		Units:    core.NewUnitService(store.Units()),
		Users:    core.NewUserService(store.Users()),
	}, store, nil)
	return svc, store
}

func run(t *testing.T, svc app.ApplicationService, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := cli.Run(context.Background(), svc, args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestInvoiceCommands(t *testing.T) {
	svc, store := newCLI(t)
	ctx := context.Background()
	u, err := svc.CreateUnit(ctx, core.UnitInput{Code: "ad", Name: "Adet"})
	require.NoError(t, err)
	p, err := svc.CreateParty(ctx, core.PartyInput{Name: "Acme Ltd"})
	require.NoError(t, err)
	pr, err := svc.CreateProduct(ctx, core.ProductInput{Name: "Widget", UnitID: &u.ID, VATRate: 18})
	require.NoError(t, err)

	input := fmt.Sprintf(`{"fatura_tarihi": "2024-05-02", "cari_id": %d,
		"detaylar": [{"urun_id": %d, "birim_id": %d, "miktar": "2", "birim_fiyat": "100", "kdv_orani": 8}]}`,
		p.ID, pr.ID, u.ID)
	out, err := run(t, svc, input, "create")
	require.NoError(t, err)
	assert.Contains(t, out, `"fatura_no": "FTR202405020001"`)
	require.Equal(t, 1, store.InvoiceCount())

	out, err = run(t, svc, "", "list", "-party", "acme", "-from", "2024-05-01")
	require.NoError(t, err)
	assert.Contains(t, out, "INVOICES (1)")
	assert.Contains(t, out, "216.00")

	list, err := svc.ListInvoices(ctx, core.InvoiceFilter{})
	require.NoError(t, err)
	id := fmt.Sprint(list.Invoices[0].ID)

	out, err = run(t, svc, "", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "TOTAL    : 216.00")

	_, err = run(t, svc, "", "delete", id)
	require.NoError(t, err)
	assert.Zero(t, store.InvoiceCount())

	_, err = run(t, svc, "", "show", id)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCalc(t *testing.T) {
	svc, _ := newCLI(t)

	out, err := run(t, svc, "", "calc", "3", "19.99", "18")
	require.NoError(t, err)
	assert.Contains(t, out, "Gross : 59.97")
	assert.Contains(t, out, "VAT   : 10.79")
	assert.Contains(t, out, "Net   : 70.76")

	_, err = run(t, svc, "", "calc", "0", "10", "18")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = run(t, svc, "", "calc", "x", "10", "18")
	assert.ErrorIs(t, err, cli.ErrUsage)
}

func TestCreateUser(t *testing.T) {
	svc, _ := newCLI(t)

	out, err := run(t, svc, "", "create-user", "ayse", "secret12", "Ayşe", "Yılmaz")
	require.NoError(t, err)
	assert.Contains(t, out, `User "ayse" created`)

	session, err := svc.AuthenticateUser(context.Background(), "ayse", "secret12")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", session.FullName)

	_, err = run(t, svc, "", "create-user", "ayse")
	assert.ErrorIs(t, err, cli.ErrUsage)
}

func TestUsageErrors(t *testing.T) {
	svc, _ := newCLI(t)

	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"show"},
		{"delete", "abc"},
		{"list", "-bogus"},
	} {
		_, err := run(t, svc, "", args...)
		assert.ErrorIs(t, err, cli.ErrUsage, "%v", args)
	}

	_, err := run(t, svc, "{", "create")
	assert.ErrorIs(t, err, cli.ErrUsage)

	_, err = run(t, svc, "", "list", "-from", "02.05.2024")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
