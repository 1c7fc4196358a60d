package core

import (
	"context"
	"time"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/db"
)

type pgInvoiceStore struct {
	db db.Gateway
}

// NewInvoiceStore returns the PostgreSQL InvoiceStore.
func NewInvoiceStore(gw db.Gateway) InvoiceStore {
	return &pgInvoiceStore{db: gw}
}

const invoiceSelect = `
	SELECT f.id, f.fatura_tarihi, f.fatura_no, f.cari_id, COALESCE(c.adi_soyadi, ''),
	       f.toplam_miktar, f.toplam_kdv, f.toplam_tutar, f.aciklama
	FROM fatura f
	LEFT JOIN cari c ON c.id = f.cari_id`

func scanInvoice(row interface{ Scan(...any) error }) (Invoice, error) {
	var (
		inv Invoice
		day time.Time
	)
	err := row.Scan(&inv.ID, &day, &inv.Number, &inv.PartyID, &inv.PartyName,
		&inv.TotalQuantity, &inv.TotalVAT, &inv.TotalAmount, &inv.Note)
	inv.Date = DateOf(day)
	return inv, err
}

// dateParam maps a zero Date to NULL.
func dateParam(d Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func (s *pgInvoiceStore) List(ctx context.Context, f InvoiceFilter) ([]Invoice, error) {
	rows, err := s.db.Query(ctx, invoiceSelect+`
		WHERE ($1::text = '' OR f.fatura_no ILIKE '%' || $1 || '%')
		  AND ($2::text = '' OR c.adi_soyadi ILIKE '%' || $2 || '%')
		  AND ($3::date IS NULL OR f.fatura_tarihi >= $3)
		  AND ($4::date IS NULL OR f.fatura_tarihi <= $4)
		ORDER BY f.fatura_tarihi DESC, f.id DESC`,
		f.Number, f.PartyName, dateParam(f.From), dateParam(f.To),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *pgInvoiceStore) Get(ctx context.Context, id int) (*Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRow(ctx, invoiceSelect+` WHERE f.id = $1`, id))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT d.id, d.fatura_id, d.urun_id, COALESCE(u.adi, ''), d.birim_id, COALESCE(b.adi, ''),
		       d.miktar, d.birim_fiyat, d.kdv_orani, d.brut_tutar, d.net_tutar, d.aciklama
		FROM fatura_detay d
		LEFT JOIN urun u ON u.id = d.urun_id
		LEFT JOIN birim b ON b.id = d.birim_id
		WHERE d.fatura_id = $1
		ORDER BY d.id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv.Lines = []InvoiceLine{}
	for rows.Next() {
		var l InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.ProductName, &l.UnitID, &l.UnitName,
			&l.Quantity, &l.UnitPrice, &l.VATRate, &l.Gross, &l.Net, &l.Note); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *pgInvoiceStore) InTx(ctx context.Context, fn func(tx InvoiceTx) error) error {
	return s.db.InTx(ctx, func(q db.Querier) error {
		return fn(pgInvoiceTx{q: q})
	})
}

type pgInvoiceTx struct {
	q db.Querier
}

func (t pgInvoiceTx) DayNumbers(ctx context.Context, day Date) ([]string, error) {
	rows, err := t.q.Query(ctx, `SELECT fatura_no FROM fatura WHERE fatura_tarihi = $1`, day.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (t pgInvoiceTx) InsertInvoice(ctx context.Context, inv *Invoice) (int, error) {
	return t.q.Insert(ctx, `
		INSERT INTO fatura (fatura_tarihi, fatura_no, cari_id, toplam_miktar, toplam_kdv, toplam_tutar, aciklama)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		inv.Date.Time(), inv.Number, inv.PartyID, inv.TotalQuantity, inv.TotalVAT, inv.TotalAmount, inv.Note,
	)
}

func (t pgInvoiceTx) InsertLine(ctx context.Context, invoiceID int, l *InvoiceLine) (int, error) {
	return t.q.Insert(ctx, `
		INSERT INTO fatura_detay (fatura_id, urun_id, birim_id, miktar, birim_fiyat, kdv_orani, brut_tutar, net_tutar, aciklama)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		invoiceID, l.ProductID, l.UnitID, l.Quantity, l.UnitPrice, l.VATRate, l.Gross, l.Net, l.Note,
	)
}

func (t pgInvoiceTx) DeleteLines(ctx context.Context, invoiceID int) (int64, error) {
	return t.q.Exec(ctx, `DELETE FROM fatura_detay WHERE fatura_id = $1`, invoiceID)
}

func (t pgInvoiceTx) DeleteInvoice(ctx context.Context, id int) (bool, error) {
	n, err := t.q.Exec(ctx, `DELETE FROM fatura WHERE id = $1`, id)
	return n > 0, err
}
