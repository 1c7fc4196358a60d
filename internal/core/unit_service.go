package core

import (
	"context"
	"fmt"
	"strings"

	"accounting-backend/internal/apperr"

	"github.com/shopspring/decimal"
)

const unitInUse = "unit is in use, cannot delete"

type unitService struct {
	store UnitStore
}

// NewUnitService constructs a UnitService over store.
func NewUnitService(store UnitStore) UnitService {
	return &unitService{store: store}
}

func (s *unitService) List(ctx context.Context, f UnitFilter) ([]Unit, error) {
	units, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

func (s *unitService) Get(ctx context.Context, id int) (*Unit, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get unit %d: %w", id, err)
	}
	return u, nil
}

func (s *unitService) Create(ctx context.Context, in UnitInput) (*Unit, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	factor := decimal.NewFromInt(1)
	if in.KgFactor != nil {
		factor = *in.KgFactor
	}
	if !factor.IsPositive() {
		return nil, apperr.Validation("kg_karsiligi must be greater than 0")
	}

	u := &Unit{Code: in.Code, Name: in.Name, KgFactor: factor, Note: in.Note}
	id, err := s.store.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create unit %q: %w", u.Name, describe(err))
	}
	u.ID = id
	return u, nil
}

func (s *unitService) Update(ctx context.Context, id int, patch UnitPatch) (*Unit, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get unit %d: %w", id, err)
	}
	if u == nil {
		return nil, apperr.NotFound("unit %d not found", id)
	}

	if patch.Code != nil {
		u.Code = strings.TrimSpace(*patch.Code)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Validation("adi is required")
		}
		u.Name = name
	}
	if patch.KgFactor != nil {
		if !patch.KgFactor.IsPositive() {
			return nil, apperr.Validation("kg_karsiligi must be greater than 0")
		}
		u.KgFactor = *patch.KgFactor
	}
	if patch.Note != nil {
		u.Note = *patch.Note
	}

	ok, err := s.store.Update(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update unit %d: %w", id, describe(err))
	}
	if !ok {
		return nil, apperr.NotFound("unit %d not found", id)
	}
	return u, nil
}

func (s *unitService) Delete(ctx context.Context, id int) error {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get unit %d: %w", id, err)
	}
	if u == nil {
		return apperr.NotFound("unit %d not found", id)
	}
	n, err := s.store.CountProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("count products of unit %d: %w", id, err)
	}
	if n > 0 {
		return apperr.Conflict(unitInUse)
	}

	// Invoice lines also reference units; that foreign key surfaces here.
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete unit %d: %w", id, inUse(err, unitInUse))
	}
	if !ok {
		return apperr.NotFound("unit %d not found", id)
	}
	return nil
}
