package core

import (
	"context"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/db"
)

type pgUnitStore struct {
	db db.Gateway
}

// NewUnitStore returns the PostgreSQL UnitStore.
func NewUnitStore(gw db.Gateway) UnitStore {
	return &pgUnitStore{db: gw}
}

const unitColumns = `id, kisa_adi, adi, kg_karsiligi, aciklama`

func scanUnit(row interface{ Scan(...any) error }) (Unit, error) {
	var u Unit
	err := row.Scan(&u.ID, &u.Code, &u.Name, &u.KgFactor, &u.Note)
	return u, err
}

func (s *pgUnitStore) List(ctx context.Context, f UnitFilter) ([]Unit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+unitColumns+`
		FROM birim
		WHERE ($1::text = '' OR kisa_adi ILIKE '%' || $1 || '%')
		  AND ($2::text = '' OR adi ILIKE '%' || $2 || '%')
		ORDER BY adi, id`,
		f.Code, f.Name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := []Unit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (s *pgUnitStore) Get(ctx context.Context, id int) (*Unit, error) {
	u, err := scanUnit(s.db.QueryRow(ctx, `SELECT `+unitColumns+` FROM birim WHERE id = $1`, id))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *pgUnitStore) Create(ctx context.Context, u *Unit) (int, error) {
	return s.db.Insert(ctx, `
		INSERT INTO birim (kisa_adi, adi, kg_karsiligi, aciklama)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		u.Code, u.Name, u.KgFactor, u.Note,
	)
}

func (s *pgUnitStore) Update(ctx context.Context, u *Unit) (bool, error) {
	n, err := s.db.Exec(ctx, `
		UPDATE birim SET kisa_adi = $2, adi = $3, kg_karsiligi = $4, aciklama = $5
		WHERE id = $1`,
		u.ID, u.Code, u.Name, u.KgFactor, u.Note,
	)
	return n > 0, err
}

func (s *pgUnitStore) Delete(ctx context.Context, id int) (bool, error) {
	n, err := s.db.Exec(ctx, `DELETE FROM birim WHERE id = $1`, id)
	return n > 0, err
}

func (s *pgUnitStore) CountProducts(ctx context.Context, id int) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM urun WHERE birim_id = $1`, id)
}
