package core

import "context"

// Product is a catalog item (urun) sold on invoice lines.
type Product struct {
	ID        int     `json:"id"`
	Barcode   *string `json:"barkod"` // unique when present
	ShortName string  `json:"kisa_adi"`
	Name      string  `json:"adi"`
	UnitID    *int    `json:"birim_id"`
	UnitName  string  `json:"birim_adi,omitempty"` // joined from birim on reads
	VATRate   int     `json:"kdv"`
	Note      string  `json:"aciklama"`
}

// ProductFilter selects products by case-insensitive substring.
type ProductFilter struct {
	Barcode   string
	Name      string
	ShortName string
}

// ProductInput holds the fields of a new product.
type ProductInput struct {
	Barcode   string `json:"barkod" validate:"max=50"`
	ShortName string `json:"kisa_adi" validate:"max=50"`
	Name      string `json:"adi" validate:"required,max=200"`
	UnitID    *int   `json:"birim_id" validate:"omitempty,gt=0"`
	VATRate   int    `json:"kdv" validate:"gte=0,lte=100"`
	Note      string `json:"aciklama"`
}

// ProductPatch is a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Barcode   *string `json:"barkod" validate:"omitempty,max=50"`
	ShortName *string `json:"kisa_adi" validate:"omitempty,max=50"`
	Name      *string `json:"adi" validate:"omitempty,max=200"`
	UnitID    *int    `json:"birim_id" validate:"omitempty,gte=0"` // 0 clears the unit
	VATRate   *int    `json:"kdv" validate:"omitempty,gte=0,lte=100"`
	Note      *string `json:"aciklama"`
}

// ProductStore persists products.
type ProductStore interface {
	List(ctx context.Context, f ProductFilter) ([]Product, error)
	// Get returns nil, nil when no product has the id.
	Get(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p *Product) (int, error)
	Update(ctx context.Context, p *Product) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	// CountInvoiceLines returns how many invoice lines reference the product.
	CountInvoiceLines(ctx context.Context, id int) (int, error)
}

// ProductService manages the product catalog.
type ProductService interface {
	List(ctx context.Context, f ProductFilter) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id int, patch ProductPatch) (*Product, error)
	// Delete refuses with a conflict while invoice lines reference the product.
	Delete(ctx context.Context, id int) error
}
