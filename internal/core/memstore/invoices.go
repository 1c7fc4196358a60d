package memstore

import (
	"cmp"
	"context"

	"accounting-backend/internal/core"
)

type invoiceStore struct{ s *Store }

func (i invoiceStore) List(ctx context.Context, f core.InvoiceFilter) ([]core.Invoice, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	if err := i.s.enter(ctx, OpListInvoices); err != nil {
		return nil, err
	}
	st := i.s.st
	out := []core.Invoice{}
	for _, v := range sortedValues(st.invoices, newestFirst) {
		v.PartyName = st.parties[v.PartyID].Name
		if !contains(v.Number, f.Number) || !contains(v.PartyName, f.PartyName) {
			continue
		}
		if !f.From.IsZero() && v.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && v.Date.After(f.To) {
			continue
		}
		v.Lines = nil
		out = append(out, v)
	}
	return out, nil
}

func newestFirst(a, b core.Invoice) int {
	return cmp.Or(cmp.Compare(b.Date.Time().Unix(), a.Date.Time().Unix()), cmp.Compare(b.ID, a.ID))
}

func (i invoiceStore) Get(ctx context.Context, id int) (*core.Invoice, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	if err := i.s.enter(ctx, OpGetInvoice); err != nil {
		return nil, err
	}
	st := i.s.st
	v, ok := st.invoices[id]
	if !ok {
		return nil, nil
	}
	v.PartyName = st.parties[v.PartyID].Name
	v.Lines = []core.InvoiceLine{}
	for _, l := range sortedValues(st.lines, func(a, b core.InvoiceLine) int { return cmp.Compare(a.ID, b.ID) }) {
		if l.InvoiceID != id {
			continue
		}
		l.ProductName = st.products[l.ProductID].Name
		l.UnitName = st.units[l.UnitID].Name
		v.Lines = append(v.Lines, l)
	}
	return &v, nil
}

// InTx serializes transactions. fn works on a copy of every table that
// replaces the committed state only when fn returns nil.
func (i invoiceStore) InTx(ctx context.Context, fn func(tx core.InvoiceTx) error) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	if err := i.s.enter(ctx, OpBegin); err != nil {
		return err
	}
	work := i.s.st.clone()
	if err := fn(&invoiceTx{s: i.s, st: work}); err != nil {
		return err
	}
	i.s.st = work
	return nil
}

type invoiceTx struct {
	s  *Store
	st *state
}

func (t *invoiceTx) DayNumbers(ctx context.Context, day core.Date) ([]string, error) {
	if err := t.s.enter(ctx, OpDayNumbers); err != nil {
		return nil, err
	}
	var numbers []string
	for _, v := range t.st.invoices {
		if v.Date.Equal(day) {
			numbers = append(numbers, v.Number)
		}
	}
	return numbers, nil
}

func (t *invoiceTx) InsertInvoice(ctx context.Context, inv *core.Invoice) (int, error) {
	if err := t.s.enter(ctx, OpInsertInvoice); err != nil {
		return 0, err
	}
	if inv.Date.IsZero() || inv.Number == "" {
		return 0, checkViolation("invalid value")
	}
	for _, o := range t.st.invoices {
		if o.Number == inv.Number {
			return 0, uniqueViolation("fatura_fatura_no_key")
		}
	}
	if _, ok := t.st.parties[inv.PartyID]; !ok {
		return 0, fkViolation("fatura_cari_id_fkey")
	}
	row := *inv
	row.TotalQuantity = row.TotalQuantity.Round(core.QuantityPlaces)
	row.TotalVAT = row.TotalVAT.Round(core.MoneyPlaces)
	row.TotalAmount = row.TotalAmount.Round(core.MoneyPlaces)
	row.ID = t.st.newID("fatura")
	row.PartyName = ""
	row.Lines = nil
	t.st.invoices[row.ID] = row
	return row.ID, nil
}

func (t *invoiceTx) InsertLine(ctx context.Context, invoiceID int, l *core.InvoiceLine) (int, error) {
	if err := t.s.enter(ctx, OpInsertLine); err != nil {
		return 0, err
	}
	if !l.Quantity.IsPositive() || l.UnitPrice.IsNegative() || l.VATRate < 0 || l.VATRate > 100 {
		return 0, checkViolation("invalid value")
	}
	if _, ok := t.st.invoices[invoiceID]; !ok {
		return 0, fkViolation("fatura_detay_fatura_id_fkey")
	}
	if _, ok := t.st.products[l.ProductID]; !ok {
		return 0, fkViolation("fatura_detay_urun_id_fkey")
	}
	if _, ok := t.st.units[l.UnitID]; !ok {
		return 0, fkViolation("fatura_detay_birim_id_fkey")
	}
	// Stored at column scale, as NUMERIC(14,3) and NUMERIC(14,4) assignment does.
	row := *l
	row.Quantity = row.Quantity.Round(core.QuantityPlaces)
	row.UnitPrice = row.UnitPrice.Round(core.PricePlaces)
	row.Gross = row.Gross.Round(core.MoneyPlaces)
	row.Net = row.Net.Round(core.MoneyPlaces)
	row.ID = t.st.newID("fatura_detay")
	row.InvoiceID = invoiceID
	row.ProductName, row.UnitName = "", ""
	t.st.lines[row.ID] = row
	return row.ID, nil
}

func (t *invoiceTx) DeleteLines(ctx context.Context, invoiceID int) (int64, error) {
	if err := t.s.enter(ctx, OpDeleteLines); err != nil {
		return 0, err
	}
	var n int64
	for id, l := range t.st.lines {
		if l.InvoiceID == invoiceID {
			delete(t.st.lines, id)
			n++
		}
	}
	return n, nil
}

func (t *invoiceTx) DeleteInvoice(ctx context.Context, id int) (bool, error) {
	if err := t.s.enter(ctx, OpDeleteInvoice); err != nil {
		return false, err
	}
	if _, ok := t.st.invoices[id]; !ok {
		return false, nil
	}
	for _, l := range t.st.lines {
		if l.InvoiceID == id {
			return false, fkViolation("fatura_detay_fatura_id_fkey")
		}
	}
	delete(t.st.invoices, id)
	return true, nil
}
