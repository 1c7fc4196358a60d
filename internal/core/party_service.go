package core

import (
	"context"
	"fmt"
	"strings"

	"accounting-backend/internal/apperr"
)

const partyInUse = "party is in use, delete its invoices first"

type partyService struct {
	store PartyStore
}

// NewPartyService constructs a PartyService over store.
func NewPartyService(store PartyStore) PartyService {
	return &partyService{store: store}
}

func (s *partyService) List(ctx context.Context, f PartyFilter) ([]Party, error) {
	parties, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	return parties, nil
}

func (s *partyService) Get(ctx context.Context, id int) (*Party, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get party %d: %w", id, err)
	}
	return p, nil
}

func (s *partyService) Create(ctx context.Context, in PartyInput) (*Party, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.NationalID = strings.TrimSpace(in.NationalID)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p := &Party{Name: in.Name, NationalID: optional(in.NationalID), Note: in.Note}
	id, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create party %q: %w", p.Name, describe(err))
	}
	p.ID = id
	return p, nil
}

func (s *partyService) Update(ctx context.Context, id int, patch PartyPatch) (*Party, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get party %d: %w", id, err)
	}
	if p == nil {
		return nil, apperr.NotFound("party %d not found", id)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Validation("adi_soyadi is required")
		}
		p.Name = name
	}
	if patch.NationalID != nil {
		p.NationalID = optional(strings.TrimSpace(*patch.NationalID))
	}
	if patch.Note != nil {
		p.Note = *patch.Note
	}

	ok, err := s.store.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update party %d: %w", id, describe(err))
	}
	if !ok {
		return nil, apperr.NotFound("party %d not found", id)
	}
	return p, nil
}

func (s *partyService) Delete(ctx context.Context, id int) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get party %d: %w", id, err)
	}
	if p == nil {
		return apperr.NotFound("party %d not found", id)
	}
	n, err := s.store.CountInvoices(ctx, id)
	if err != nil {
		return fmt.Errorf("count invoices of party %d: %w", id, err)
	}
	if n > 0 {
		return apperr.Conflict(partyInUse)
	}

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete party %d: %w", id, inUse(err, partyInUse))
	}
	if !ok {
		return apperr.NotFound("party %d not found", id)
	}
	return nil
}

// optional maps an empty string to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
