package core

import (
	"context"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/db"
)

type pgProductStore struct {
	db db.Gateway
}

// NewProductStore returns the PostgreSQL ProductStore.
func NewProductStore(gw db.Gateway) ProductStore {
	return &pgProductStore{db: gw}
}

const productSelect = `
	SELECT u.id, u.barkod, u.kisa_adi, u.adi, u.birim_id, COALESCE(b.adi, ''), u.kdv, u.aciklama
	FROM urun u
	LEFT JOIN birim b ON b.id = u.birim_id`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Barcode, &p.ShortName, &p.Name, &p.UnitID, &p.UnitName, &p.VATRate, &p.Note)
	return p, err
}

func (s *pgProductStore) List(ctx context.Context, f ProductFilter) ([]Product, error) {
	rows, err := s.db.Query(ctx, productSelect+`
		WHERE ($1::text = '' OR u.barkod ILIKE '%' || $1 || '%')
		  AND ($2::text = '' OR u.adi ILIKE '%' || $2 || '%')
		  AND ($3::text = '' OR u.kisa_adi ILIKE '%' || $3 || '%')
		ORDER BY u.adi, u.id`,
		f.Barcode, f.Name, f.ShortName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *pgProductStore) Get(ctx context.Context, id int) (*Product, error) {
	p, err := scanProduct(s.db.QueryRow(ctx, productSelect+` WHERE u.id = $1`, id))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *pgProductStore) Create(ctx context.Context, p *Product) (int, error) {
	return s.db.Insert(ctx, `
		INSERT INTO urun (barkod, kisa_adi, adi, birim_id, kdv, aciklama)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.Barcode, p.ShortName, p.Name, p.UnitID, p.VATRate, p.Note,
	)
}

func (s *pgProductStore) Update(ctx context.Context, p *Product) (bool, error) {
	n, err := s.db.Exec(ctx, `
		UPDATE urun SET barkod = $2, kisa_adi = $3, adi = $4, birim_id = $5, kdv = $6, aciklama = $7
		WHERE id = $1`,
		p.ID, p.Barcode, p.ShortName, p.Name, p.UnitID, p.VATRate, p.Note,
	)
	return n > 0, err
}

func (s *pgProductStore) Delete(ctx context.Context, id int) (bool, error) {
	n, err := s.db.Exec(ctx, `DELETE FROM urun WHERE id = $1`, id)
	return n > 0, err
}

func (s *pgProductStore) CountInvoiceLines(ctx context.Context, id int) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM fatura_detay WHERE urun_id = $1`, id)
}
