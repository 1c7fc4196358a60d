package core

import (
	"context"
	"fmt"
	"strings"

	"accounting-backend/internal/apperr"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OperationRecorder observes workflow outcomes; *metrics.Metrics satisfies it.
type OperationRecorder interface {
	InvoiceOperation(operation string, err error)
}

type nopRecorder struct{}

func (nopRecorder) InvoiceOperation(string, error) {}

type invoiceService struct {
	store    InvoiceStore
	log      *zap.Logger
	recorder OperationRecorder
}

// NewInvoiceService constructs the invoice workflow over store. log and
// recorder may be nil.
func NewInvoiceService(store InvoiceStore, log *zap.Logger, recorder OperationRecorder) InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &invoiceService{store: store, log: log, recorder: recorder}
}

func (s *invoiceService) Create(ctx context.Context, in CreateInvoiceInput) (inv *Invoice, err error) {
	defer func() { s.recorder.InvoiceOperation("create", err) }()

	if len(in.Lines) == 0 {
		return nil, apperr.Validation("invoice must have at least one line")
	}
	in.Number = strings.TrimSpace(in.Number)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	inv, err = assembleInvoice(in)
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx InvoiceTx) error {
		if inv.Number == "" {
			numbers, err := tx.DayNumbers(ctx, inv.Date)
			if err != nil {
				return fmt.Errorf("count invoices of %s: %w", inv.Date, err)
			}
			inv.Number = nextInvoiceNumber(inv.Date, numbers)
		}

		id, err := tx.InsertInvoice(ctx, inv)
		if err != nil {
			return fmt.Errorf("insert invoice %s: %w", inv.Number, err)
		}
		inv.ID = id

		for i := range inv.Lines {
			line := &inv.Lines[i]
			line.InvoiceID = id
			lineID, err := tx.InsertLine(ctx, id, line)
			if err != nil {
				return fmt.Errorf("insert invoice %s line %d: %w", inv.Number, i+1, err)
			}
			line.ID = lineID
		}
		return nil
	})
	if err != nil {
		err = describe(err)
		s.log.Warn("invoice create rolled back",
			zap.String("fatura_no", inv.Number),
			zap.Int("cari_id", inv.PartyID),
			zap.Int("lines", len(inv.Lines)),
			zap.Stringer("kind", apperr.KindOf(err)),
			zap.Error(err))
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	created, rerr := s.store.Get(ctx, inv.ID)
	if rerr != nil || created == nil {
		// The write is committed; answer with what was written.
		s.log.Error("re-read of created invoice failed",
			zap.Int("id", inv.ID), zap.String("fatura_no", inv.Number), zap.Error(rerr))
		return inv, nil
	}
	return created, nil
}

func (s *invoiceService) Get(ctx context.Context, id int) (*Invoice, error) {
	inv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, f InvoiceFilter) ([]Invoice, error) {
	f.Number = strings.TrimSpace(f.Number)
	f.PartyName = strings.TrimSpace(f.PartyName)
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, apperr.Validation("baslangic_tarihi must not be after bitis_tarihi")
	}
	invoices, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) Delete(ctx context.Context, id int) (err error) {
	defer func() { s.recorder.InvoiceOperation("delete", err) }()

	err = s.store.InTx(ctx, func(tx InvoiceTx) error {
		if _, err := tx.DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		ok, err := tx.DeleteInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("delete header: %w", err)
		}
		if !ok {
			return apperr.NotFound("invoice %d not found", id)
		}
		return nil
	})
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			s.log.Warn("invoice delete rolled back", zap.Int("id", id), zap.Error(err))
		}
		return fmt.Errorf("delete invoice %d: %w", id, describe(err))
	}
	return nil
}

func (s *invoiceService) Preview(quantity, unitPrice decimal.Decimal, vatRate int) (*LinePreview, error) {
	amounts, err := ComputeLine(quantity, unitPrice, vatRate)
	if err != nil {
		return nil, err
	}
	return &LinePreview{Gross: amounts.Gross, VAT: amounts.VAT, Net: amounts.Net}, nil
}

// assembleInvoice prices every line and derives the header totals.
func assembleInvoice(in CreateInvoiceInput) (*Invoice, error) {
	inv := &Invoice{
		Date:    in.Date,
		Number:  in.Number,
		PartyID: in.PartyID,
		Note:    in.Note,
		Lines:   make([]InvoiceLine, 0, len(in.Lines)),
	}
	totals := make([]TotalsLine, 0, len(in.Lines))

	for i, l := range in.Lines {
		amounts, err := ComputeLine(l.Quantity, l.UnitPrice, l.VATRate)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindValidation, err, fmt.Sprintf("detaylar[%d]: %s", i, apperr.Message(err)))
		}
		inv.Lines = append(inv.Lines, InvoiceLine{
			ProductID: l.ProductID,
			UnitID:    l.UnitID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			VATRate:   l.VATRate,
			Gross:     amounts.Gross,
			Net:       amounts.Net,
			Note:      l.Note,
		})
		totals = append(totals, TotalsLine{Quantity: l.Quantity, Gross: amounts.Gross, Net: amounts.Net})
	}

	t := ComputeInvoiceTotals(totals)
	inv.TotalQuantity = t.Quantity
	inv.TotalVAT = t.VAT
	inv.TotalAmount = t.Net
	return inv, nil
}

// nextInvoiceNumber numbers the next invoice of day from the numbers that
// day already carries.
func nextInvoiceNumber(day Date, existing []string) string {
	maxSeq := 0
	for _, n := range existing {
		if seq, ok := ParseSequence(day, n); ok {
			maxSeq = max(maxSeq, seq)
		}
	}
	return FormatInvoiceNumber(day, NextSequence(len(existing), maxSeq))
}
