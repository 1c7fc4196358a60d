package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Invoice is an invoice header (fatura) with its lines. The totals are
// derived from the lines and never set independently.
type Invoice struct {
	ID            int             `json:"id"`
	Date          Date            `json:"fatura_tarihi"`
	Number        string          `json:"fatura_no"`
	PartyID       int             `json:"cari_id"`
	PartyName     string          `json:"cari_adi,omitempty"` // joined from cari on reads
	TotalQuantity decimal.Decimal `json:"toplam_miktar"`
	TotalVAT      decimal.Decimal `json:"toplam_kdv"`
	TotalAmount   decimal.Decimal `json:"toplam_tutar"` // VAT inclusive
	Note          string          `json:"aciklama"`
	Lines         []InvoiceLine   `json:"detaylar,omitempty"`
}

// InvoiceLine is one product entry of an invoice (fatura_detay).
type InvoiceLine struct {
	ID          int             `json:"id"`
	InvoiceID   int             `json:"fatura_id"`
	ProductID   int             `json:"urun_id"`
	ProductName string          `json:"urun_adi,omitempty"`
	UnitID      int             `json:"birim_id"`
	UnitName    string          `json:"birim_adi,omitempty"`
	Quantity    decimal.Decimal `json:"miktar"`
	UnitPrice   decimal.Decimal `json:"birim_fiyat"`
	VATRate     int             `json:"kdv_orani"`
	Gross       decimal.Decimal `json:"brut_tutar"`
	Net         decimal.Decimal `json:"net_tutar"`
	Note        string          `json:"aciklama"`
}

// InvoiceFilter narrows invoice lists. Text filters are case-insensitive
// substrings; date bounds are inclusive and ignored when zero.
type InvoiceFilter struct {
	Number    string
	PartyName string
	From      Date
	To        Date
}

// CreateInvoiceInput is a new invoice with its lines. An empty Number asks
// for a generated one.
type CreateInvoiceInput struct {
	Date    Date               `json:"fatura_tarihi" validate:"required"`
	Number  string             `json:"fatura_no" validate:"max=30"`
	PartyID int                `json:"cari_id" validate:"gt=0"`
	Note    string             `json:"aciklama"`
	Lines   []InvoiceLineInput `json:"detaylar" validate:"min=1,dive"`
}

// InvoiceLineInput is a requested line. Client-computed amounts are not
// accepted; they are always derived.
type InvoiceLineInput struct {
	ProductID int             `json:"urun_id" validate:"gt=0"`
	UnitID    int             `json:"birim_id" validate:"gt=0"`
	Quantity  decimal.Decimal `json:"miktar"`
	UnitPrice decimal.Decimal `json:"birim_fiyat"`
	VATRate   int             `json:"kdv_orani" validate:"gte=0,lte=100"`
	Note      string          `json:"aciklama"`
}

// LinePreview is the calculator result for a prospective line.
type LinePreview struct {
	Gross decimal.Decimal `json:"brut_tutar"`
	VAT   decimal.Decimal `json:"kdv_tutari"`
	Net   decimal.Decimal `json:"net_tutar"`
}

// InvoiceStore reads invoices and opens write transactions.
type InvoiceStore interface {
	// List returns headers only, newest issue date first, then highest id.
	List(ctx context.Context, f InvoiceFilter) ([]Invoice, error)
	// Get returns the invoice with its lines and display names, or nil, nil.
	Get(ctx context.Context, id int) (*Invoice, error)
	// InTx runs fn in one transaction, committing only when fn returns nil.
	InTx(ctx context.Context, fn func(tx InvoiceTx) error) error
}

// InvoiceTx is the set of writes available inside an invoice transaction.
type InvoiceTx interface {
	// DayNumbers returns the numbers of all invoices issued on day.
	DayNumbers(ctx context.Context, day Date) ([]string, error)
	InsertInvoice(ctx context.Context, inv *Invoice) (int, error)
	InsertLine(ctx context.Context, invoiceID int, line *InvoiceLine) (int, error)
	DeleteLines(ctx context.Context, invoiceID int) (int64, error)
	// DeleteInvoice reports false when no header has the id.
	DeleteInvoice(ctx context.Context, id int) (bool, error)
}

// InvoiceService is the invoice workflow.
type InvoiceService interface {
	// Create numbers, prices and persists an invoice with its lines atomically.
	Create(ctx context.Context, in CreateInvoiceInput) (*Invoice, error)
	// Get returns nil, nil when the invoice does not exist.
	Get(ctx context.Context, id int) (*Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]Invoice, error)
	// Delete removes the lines and the header atomically.
	Delete(ctx context.Context, id int) error
	// Preview prices a line without persisting anything.
	Preview(quantity, unitPrice decimal.Decimal, vatRate int) (*LinePreview, error)
}
