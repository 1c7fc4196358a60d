package core

import (
	"context"
	"fmt"
	"strings"

	"accounting-backend/internal/apperr"
)

const productInUse = "product is used on invoices, cannot delete"

type productService struct {
	store ProductStore
}

// NewProductService constructs a ProductService over store.
func NewProductService(store ProductStore) ProductService {
	return &productService{store: store}
}

func (s *productService) List(ctx context.Context, f ProductFilter) ([]Product, error) {
	products, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id int) (*Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*Product, error) {
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.ShortName = strings.TrimSpace(in.ShortName)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p := &Product{
		Barcode:   optional(in.Barcode),
		ShortName: in.ShortName,
		Name:      in.Name,
		UnitID:    in.UnitID,
		VATRate:   in.VATRate,
		Note:      in.Note,
	}
	id, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", p.Name, describe(err))
	}
	return s.reread(ctx, id, p), nil
}

func (s *productService) Update(ctx context.Context, id int, patch ProductPatch) (*Product, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if p == nil {
		return nil, apperr.NotFound("product %d not found", id)
	}

	if patch.Barcode != nil {
		p.Barcode = optional(strings.TrimSpace(*patch.Barcode))
	}
	if patch.ShortName != nil {
		p.ShortName = strings.TrimSpace(*patch.ShortName)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Validation("adi is required")
		}
		p.Name = name
	}
	if patch.UnitID != nil {
		if *patch.UnitID == 0 {
			p.UnitID = nil
		} else {
			unitID := *patch.UnitID
			p.UnitID = &unitID
		}
	}
	if patch.VATRate != nil {
		p.VATRate = *patch.VATRate
	}
	if patch.Note != nil {
		p.Note = *patch.Note
	}

	ok, err := s.store.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, describe(err))
	}
	if !ok {
		return nil, apperr.NotFound("product %d not found", id)
	}
	return s.reread(ctx, id, p), nil
}

func (s *productService) Delete(ctx context.Context, id int) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get product %d: %w", id, err)
	}
	if p == nil {
		return apperr.NotFound("product %d not found", id)
	}
	n, err := s.store.CountInvoiceLines(ctx, id)
	if err != nil {
		return fmt.Errorf("count invoice lines of product %d: %w", id, err)
	}
	if n > 0 {
		return apperr.Conflict(productInUse)
	}

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, inUse(err, productInUse))
	}
	if !ok {
		return apperr.NotFound("product %d not found", id)
	}
	return nil
}

// reread refreshes the joined unit name after a write, falling back to the
// written row when the read fails.
func (s *productService) reread(ctx context.Context, id int, written *Product) *Product {
	written.ID = id
	p, err := s.store.Get(ctx, id)
	if err != nil || p == nil {
		return written
	}
	return p
}
