package core

import (
	"accounting-backend/internal/apperr"

	"github.com/shopspring/decimal"
)

// Decimal places kept on stored amounts. Quantities and unit prices with more
// places than their columns hold are rejected rather than rounded on write.
const (
	MoneyPlaces    = 2
	QuantityPlaces = 3
	PricePlaces    = 4
)

var hundred = decimal.NewFromInt(100)

// LineAmounts are the derived amounts of a single invoice line.
type LineAmounts struct {
	Gross decimal.Decimal `json:"brut_tutar"`
	VAT   decimal.Decimal `json:"kdv_tutari"`
	Net   decimal.Decimal `json:"net_tutar"`
}

// InvoiceTotals are the derived header aggregates of an invoice.
type InvoiceTotals struct {
	Quantity decimal.Decimal
	Gross    decimal.Decimal
	VAT      decimal.Decimal
	Net      decimal.Decimal
}

// TotalsLine is the subset of a line ComputeInvoiceTotals needs.
type TotalsLine struct {
	Quantity decimal.Decimal
	Gross    decimal.Decimal
	Net      decimal.Decimal
}

// roundMoney rounds half away from zero to MoneyPlaces; for the non-negative
// amounts on an invoice this is round-half-up (0.125 -> 0.13).
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ComputeLine derives gross, VAT and net amounts for one line.
//
// Both outputs are rounded once from the exact product q*p:
// gross = round(q*p), net = round(q*p + q*p*vat%/100). VAT is net - gross, so
// net always equals gross + vat on the stored line.
func ComputeLine(quantity, unitPrice decimal.Decimal, vatPercent int) (LineAmounts, error) {
	if !quantity.IsPositive() {
		return LineAmounts{}, apperr.Validation("quantity must be greater than zero")
	}
	if !fitsPlaces(quantity, QuantityPlaces) {
		return LineAmounts{}, apperr.Validation("quantity allows at most %d decimal places", QuantityPlaces)
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, apperr.Validation("unit price cannot be negative")
	}
	if !fitsPlaces(unitPrice, PricePlaces) {
		return LineAmounts{}, apperr.Validation("unit price allows at most %d decimal places", PricePlaces)
	}
	if vatPercent < 0 || vatPercent > 100 {
		return LineAmounts{}, apperr.Validation("vat rate must be between 0 and 100")
	}

	raw := quantity.Mul(unitPrice)
	gross := roundMoney(raw)
	net := roundMoney(raw.Add(raw.Mul(decimal.NewFromInt(int64(vatPercent))).Div(hundred)))
	return LineAmounts{Gross: gross, VAT: net.Sub(gross), Net: net}, nil
}

// fitsPlaces reports whether d survives rounding to places unchanged.
func fitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Round(places).Equal(d)
}

// ComputeInvoiceTotals aggregates priced lines into header totals. Totals are
// exact sums of the rounded line amounts and VAT is the sum of each line's
// net - gross, so a header always equals the sum of its persisted lines.
func ComputeInvoiceTotals(lines []TotalsLine) InvoiceTotals {
	t := InvoiceTotals{
		Quantity: decimal.Zero,
		Gross:    decimal.Zero,
		VAT:      decimal.Zero,
		Net:      decimal.Zero,
	}
	for _, l := range lines {
		t.Quantity = t.Quantity.Add(l.Quantity)
		t.Gross = t.Gross.Add(l.Gross)
		t.Net = t.Net.Add(l.Net)
	}
	t.VAT = t.Net.Sub(t.Gross)
	return t
}
