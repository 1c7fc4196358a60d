package core

import "context"

// Party is a customer or supplier counterparty (cari).
type Party struct {
	ID         int     `json:"id"`
	Name       string  `json:"adi_soyadi"`
	NationalID *string `json:"tc_kimlik_no"` // unique when present
	Note       string  `json:"aciklama"`
}

// PartyFilter selects parties by case-insensitive substring.
type PartyFilter struct {
	Name       string
	NationalID string
}

// PartyInput holds the fields of a new party.
type PartyInput struct {
	Name       string `json:"adi_soyadi" validate:"required,max=200"`
	NationalID string `json:"tc_kimlik_no" validate:"max=20"`
	Note       string `json:"aciklama"`
}

// PartyPatch is a partial update; nil fields are left unchanged.
type PartyPatch struct {
	Name       *string `json:"adi_soyadi" validate:"omitempty,max=200"`
	NationalID *string `json:"tc_kimlik_no" validate:"omitempty,max=20"`
	Note       *string `json:"aciklama"`
}

// PartyStore persists parties.
type PartyStore interface {
	List(ctx context.Context, f PartyFilter) ([]Party, error)
	// Get returns nil, nil when no party has the id.
	Get(ctx context.Context, id int) (*Party, error)
	Create(ctx context.Context, p *Party) (int, error)
	// Update reports false when no party has p.ID.
	Update(ctx context.Context, p *Party) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	// CountInvoices returns how many invoices reference the party.
	CountInvoices(ctx context.Context, id int) (int, error)
}

// PartyService manages party master data.
type PartyService interface {
	List(ctx context.Context, f PartyFilter) ([]Party, error)
	Get(ctx context.Context, id int) (*Party, error)
	Create(ctx context.Context, in PartyInput) (*Party, error)
	Update(ctx context.Context, id int, patch PartyPatch) (*Party, error)
	// Delete refuses with a conflict while invoices reference the party.
	Delete(ctx context.Context, id int) error
}
