package core_test

import (
	"context"
	"testing"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"
	"accounting-backend/internal/core/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPartyDelete_InUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Create(ctx, f.input(day1, f.line("1", "10", 18)))
	require.NoError(t, err)

	err = f.parties.Delete(ctx, f.partyID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Contains(t, apperr.Message(err), "in use")

	p, err := f.parties.Get(ctx, f.partyID)
	require.NoError(t, err)
	assert.NotNil(t, p, "party must survive a refused delete")
}

func TestProductDelete_InUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Create(ctx, f.input(day1, f.line("1", "10", 18)))
	require.NoError(t, err)

	err = f.products.Delete(ctx, f.productID)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	p, err := f.products.Get(ctx, f.productID)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestUnitDelete_InUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.units.Delete(ctx, f.unitID)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	u, err := f.units.Get(ctx, f.unitID)
	require.NoError(t, err)
	assert.NotNil(t, u)
}

// A unit referenced only by invoice lines has no product guard to trip; the
// foreign key itself must still surface as a conflict.
func TestUnitDelete_ReferencedByLineOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	kg, err := f.units.Create(ctx, core.UnitInput{Code: "kg", Name: "Kilogram"})
	require.NoError(t, err)
	l := f.line("1", "10", 18)
	l.UnitID = kg.ID
	_, err = f.invoices.Create(ctx, f.input(day1, l))
	require.NoError(t, err)

	err = f.units.Delete(ctx, kg.ID)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "fatura_detay_birim_id_fkey", apperr.ConstraintOf(err))
}

func TestEntityDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.True(t, apperr.Is(f.parties.Delete(ctx, 999), apperr.KindNotFound))
	assert.True(t, apperr.Is(f.products.Delete(ctx, 999), apperr.KindNotFound))
	assert.True(t, apperr.Is(f.units.Delete(ctx, 999), apperr.KindNotFound))
}

func TestEntityDelete_Unreferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.products.Delete(ctx, f.productID))
	require.NoError(t, f.units.Delete(ctx, f.unitID))
	require.NoError(t, f.parties.Delete(ctx, f.partyID))

	list, err := f.parties.List(ctx, core.PartyFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPartyCreate_Uniqueness(t *testing.T) {
	store := memstore.New()
	svc := core.NewPartyService(store.Parties())
	ctx := context.Background()

	a, err := svc.Create(ctx, core.PartyInput{Name: "Ayşe Yılmaz", NationalID: "12345678901"})
	require.NoError(t, err)
	assert.Equal(t, "12345678901", *a.NationalID)

	_, err = svc.Create(ctx, core.PartyInput{Name: "Ayşe Yılmaz"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "party name already registered", apperr.Message(err))

	_, err = svc.Create(ctx, core.PartyInput{Name: "Other", NationalID: "12345678901"})
	assert.Equal(t, "national identifier already registered", apperr.Message(err))

	// Absent identifiers are NULL and never collide.
	b, err := svc.Create(ctx, core.PartyInput{Name: "No ID 1", NationalID: "  "})
	require.NoError(t, err)
	assert.Nil(t, b.NationalID)
	_, err = svc.Create(ctx, core.PartyInput{Name: "No ID 2"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, core.PartyInput{Name: "   "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPartyUpdate_Partial(t *testing.T) {
	store := memstore.New()
	svc := core.NewPartyService(store.Parties())
	ctx := context.Background()

	p, err := svc.Create(ctx, core.PartyInput{Name: "Acme", NationalID: "111", Note: "first"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, core.PartyPatch{Note: ptr("second")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "111", *updated.NationalID)
	assert.Equal(t, "second", updated.Note)

	updated, err = svc.Update(ctx, p.ID, core.PartyPatch{NationalID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.NationalID)

	_, err = svc.Update(ctx, p.ID, core.PartyPatch{Name: ptr("")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Update(ctx, 404, core.PartyPatch{Note: ptr("x")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestPartyList_FilterAndOrder(t *testing.T) {
	store := memstore.New()
	svc := core.NewPartyService(store.Parties())
	ctx := context.Background()

	for _, name := range []string{"Zeta", "alpha market", "Beta Market"} {
		_, err := svc.Create(ctx, core.PartyInput{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, core.PartyFilter{Name: "MARKET"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Beta Market", list[0].Name)
	assert.Equal(t, "alpha market", list[1].Name)
}

func TestUnitCreate_Defaults(t *testing.T) {
	store := memstore.New()
	svc := core.NewUnitService(store.Units())
	ctx := context.Background()

	u, err := svc.Create(ctx, core.UnitInput{Code: "ad", Name: "Adet"})
	require.NoError(t, err)
	assert.Equal(t, "1", u.KgFactor.String())

	_, err = svc.Create(ctx, core.UnitInput{Code: "ad", Name: "Adet"})
	assert.Equal(t, "unit short name and name already registered", apperr.Message(err))

	_, err = svc.Create(ctx, core.UnitInput{Code: "t", Name: "Ton", KgFactor: ptr(dec("0"))})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	ton, err := svc.Create(ctx, core.UnitInput{Code: "t", Name: "Ton", KgFactor: ptr(dec("1000"))})
	require.NoError(t, err)
	updated, err := svc.Update(ctx, ton.ID, core.UnitPatch{Note: ptr("metric")})
	require.NoError(t, err)
	assert.Equal(t, "1000", updated.KgFactor.String())
	assert.Equal(t, "metric", updated.Note)
}

func TestProductCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Get(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, "Adet", p.UnitName)
	assert.Nil(t, p.Barcode)

	_, err = f.products.Create(ctx, core.ProductInput{Name: "Widget"})
	assert.Equal(t, "product name already registered", apperr.Message(err))

	_, err = f.products.Create(ctx, core.ProductInput{Name: "Gadget", Barcode: "869000"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, core.ProductInput{Name: "Gizmo", Barcode: "869000"})
	assert.Equal(t, "barcode already registered", apperr.Message(err))

	_, err = f.products.Create(ctx, core.ProductInput{Name: "Orphan", UnitID: ptr(999)})
	assert.True(t, apperr.Is(err, apperr.KindReferentialIntegrity))
	assert.Equal(t, "selected unit does not exist", apperr.Message(err))

	_, err = f.products.Create(ctx, core.ProductInput{Name: "Taxed", VATRate: 101})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.Message(err), "kdv")
}

func TestProductUpdate_ClearUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Update(ctx, f.productID, core.ProductPatch{UnitID: ptr(0), VATRate: ptr(8)})
	require.NoError(t, err)
	assert.Nil(t, p.UnitID)
	assert.Empty(t, p.UnitName)
	assert.Equal(t, 8, p.VATRate)
	assert.Equal(t, "Widget", p.Name)

	require.NoError(t, f.units.Delete(ctx, f.unitID), "unit is free once no product uses it")
}
