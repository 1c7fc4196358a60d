package core

import (
	"context"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/db"
)

type pgPartyStore struct {
	db db.Gateway
}

// NewPartyStore returns the PostgreSQL PartyStore.
func NewPartyStore(gw db.Gateway) PartyStore {
	return &pgPartyStore{db: gw}
}

const partyColumns = `id, adi_soyadi, tc_kimlik_no, aciklama`

func scanParty(row interface{ Scan(...any) error }) (Party, error) {
	var p Party
	err := row.Scan(&p.ID, &p.Name, &p.NationalID, &p.Note)
	return p, err
}

func (s *pgPartyStore) List(ctx context.Context, f PartyFilter) ([]Party, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+partyColumns+`
		FROM cari
		WHERE ($1::text = '' OR adi_soyadi ILIKE '%' || $1 || '%')
		  AND ($2::text = '' OR tc_kimlik_no ILIKE '%' || $2 || '%')
		ORDER BY adi_soyadi, id`,
		f.Name, f.NationalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parties := []Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (s *pgPartyStore) Get(ctx context.Context, id int) (*Party, error) {
	p, err := scanParty(s.db.QueryRow(ctx, `SELECT `+partyColumns+` FROM cari WHERE id = $1`, id))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *pgPartyStore) Create(ctx context.Context, p *Party) (int, error) {
	return s.db.Insert(ctx, `
		INSERT INTO cari (adi_soyadi, tc_kimlik_no, aciklama)
		VALUES ($1, $2, $3)
		RETURNING id`,
		p.Name, p.NationalID, p.Note,
	)
}

func (s *pgPartyStore) Update(ctx context.Context, p *Party) (bool, error) {
	n, err := s.db.Exec(ctx, `
		UPDATE cari SET adi_soyadi = $2, tc_kimlik_no = $3, aciklama = $4
		WHERE id = $1`,
		p.ID, p.Name, p.NationalID, p.Note,
	)
	return n > 0, err
}

func (s *pgPartyStore) Delete(ctx context.Context, id int) (bool, error) {
	n, err := s.db.Exec(ctx, `DELETE FROM cari WHERE id = $1`, id)
	return n > 0, err
}

func (s *pgPartyStore) CountInvoices(ctx context.Context, id int) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM fatura WHERE cari_id = $1`, id)
}

// count runs a single-value COUNT query.
func count(ctx context.Context, q db.Querier, sql string, args ...any) (int, error) {
	var n int
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
