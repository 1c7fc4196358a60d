package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Unit is a unit of measure (birim) with its kilogram equivalence.
type Unit struct {
	ID       int             `json:"id"`
	Code     string          `json:"kisa_adi"`
	Name     string          `json:"adi"`
	KgFactor decimal.Decimal `json:"kg_karsiligi"`
	Note     string          `json:"aciklama"`
}

// UnitFilter selects units by case-insensitive substring.
type UnitFilter struct {
	Code string
	Name string
}

// UnitInput holds the fields of a new unit. A nil KgFactor defaults to 1.
type UnitInput struct {
	Code     string           `json:"kisa_adi" validate:"max=20"`
	Name     string           `json:"adi" validate:"required,max=100"`
	KgFactor *decimal.Decimal `json:"kg_karsiligi"`
	Note     string           `json:"aciklama"`
}

// UnitPatch is a partial update; nil fields are left unchanged.
type UnitPatch struct {
	Code     *string          `json:"kisa_adi" validate:"omitempty,max=20"`
	Name     *string          `json:"adi" validate:"omitempty,max=100"`
	KgFactor *decimal.Decimal `json:"kg_karsiligi"`
	Note     *string          `json:"aciklama"`
}

// UnitStore persists units.
type UnitStore interface {
	List(ctx context.Context, f UnitFilter) ([]Unit, error)
	// Get returns nil, nil when no unit has the id.
	Get(ctx context.Context, id int) (*Unit, error)
	Create(ctx context.Context, u *Unit) (int, error)
	Update(ctx context.Context, u *Unit) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	// CountProducts returns how many products default to the unit.
	CountProducts(ctx context.Context, id int) (int, error)
}

// UnitService manages units of measure.
type UnitService interface {
	List(ctx context.Context, f UnitFilter) ([]Unit, error)
	Get(ctx context.Context, id int) (*Unit, error)
	Create(ctx context.Context, in UnitInput) (*Unit, error)
	Update(ctx context.Context, id int, patch UnitPatch) (*Unit, error)
	// Delete refuses with a conflict while products reference the unit.
	Delete(ctx context.Context, id int) error
}
