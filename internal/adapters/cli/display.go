package cli

import (
	"fmt"
	"io"
	"strings"

	"accounting-backend/internal/app"
	"accounting-backend/internal/core"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string { return d.StringFixed(core.MoneyPlaces) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rule(out io.Writer, ch string, n int) { fmt.Fprintln(out, strings.Repeat(ch, n)) }

func printInvoices(out io.Writer, res *app.InvoiceListResult) {
	fmt.Fprintln(out)
	rule(out, "=", 78)
	fmt.Fprintf(out, "  INVOICES (%d)\n", res.Total)
	rule(out, "=", 78)
	if len(res.Invoices) == 0 {
		fmt.Fprintln(out, "  No invoices found.")
		rule(out, "=", 78)
		return
	}
	fmt.Fprintf(out, "  %-6s %-16s %-10s %-20s %10s %10s\n", "ID", "NUMBER", "DATE", "PARTY", "VAT", "TOTAL")
	rule(out, "-", 78)
	for _, inv := range res.Invoices {
		fmt.Fprintf(out, "  %-6d %-16s %-10s %-20.20s %10s %10s\n",
			inv.ID, inv.Number, inv.Date, inv.PartyName, money(inv.TotalVAT), money(inv.TotalAmount))
	}
	rule(out, "=", 78)
}

func printInvoice(out io.Writer, inv *core.Invoice) {
	fmt.Fprintf(out, "\nNUMBER : %s\n", inv.Number)
	fmt.Fprintf(out, "DATE   : %s\n", inv.Date)
	fmt.Fprintf(out, "PARTY  : %s (#%d)\n", inv.PartyName, inv.PartyID)
	if inv.Note != "" {
		fmt.Fprintf(out, "NOTE   : %s\n", inv.Note)
	}
	fmt.Fprintln(out, "LINES:")
	for _, l := range inv.Lines {
		fmt.Fprintf(out, "  %-20.20s %8s %-6s x %10s  %%%-3d %10s %10s\n",
			l.ProductName, l.Quantity, l.UnitName, l.UnitPrice, l.VATRate, money(l.Gross), money(l.Net))
	}
	fmt.Fprintf(out, "QUANTITY : %s\n", inv.TotalQuantity)
	fmt.Fprintf(out, "VAT      : %s\n", money(inv.TotalVAT))
	fmt.Fprintf(out, "TOTAL    : %s\n", money(inv.TotalAmount))
}

func printParties(out io.Writer, res *app.PartyListResult) {
	fmt.Fprintf(out, "%-6s %-30s %-14s %s\n", "ID", "NAME", "NATIONAL ID", "NOTE")
	rule(out, "-", 72)
	for _, p := range res.Parties {
		fmt.Fprintf(out, "%-6d %-30.30s %-14s %s\n", p.ID, p.Name, deref(p.NationalID), p.Note)
	}
}

func printProducts(out io.Writer, res *app.ProductListResult) {
	fmt.Fprintf(out, "%-6s %-14s %-28s %-10s %4s\n", "ID", "BARCODE", "NAME", "UNIT", "VAT")
	rule(out, "-", 72)
	for _, p := range res.Products {
		fmt.Fprintf(out, "%-6d %-14s %-28.28s %-10s %4d\n", p.ID, deref(p.Barcode), p.Name, p.UnitName, p.VATRate)
	}
}

func printUnits(out io.Writer, res *app.UnitListResult) {
	fmt.Fprintf(out, "%-6s %-8s %-20s %10s\n", "ID", "CODE", "NAME", "KG")
	rule(out, "-", 48)
	for _, u := range res.Units {
		fmt.Fprintf(out, "%-6d %-8s %-20s %10s\n", u.ID, u.Code, u.Name, u.KgFactor)
	}
}
