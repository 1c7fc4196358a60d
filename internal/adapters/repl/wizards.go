package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"accounting-backend/internal/app"
	"accounting-backend/internal/core"

	"github.com/shopspring/decimal"
)

// newInvoice runs an interactive invoice creation session for one party.
func newInvoice(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, out io.Writer, partyArg string) error {
	partyID, err := strconv.Atoi(partyArg)
	if err != nil || partyID <= 0 {
		fmt.Fprintln(out, "Invalid party id.")
		return nil
	}
	party, err := svc.GetParty(ctx, partyID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Creating invoice for: %s\n", party.Name)
	fmt.Fprintln(out, "Enter invoice lines. Type 'done' when finished, 'cancel' to abort.")
	fmt.Fprintln(out, "Format per line: <product-id> <unit-id> <quantity> <unit-price> <vat %>")
	fmt.Fprintln(out, "  Example: 3 1 2 100 18")

	var lines []core.InvoiceLineInput
entry:
	for {
		fmt.Fprintf(out, "  Line %d: ", len(lines)+1)
		raw, readErr := readLine(reader)
		switch strings.ToLower(raw) {
		case "cancel":
			fmt.Fprintln(out, "Invoice creation cancelled.")
			return nil
		case "done":
			break entry
		case "":
		default:
			line, err := parseLine(raw)
			if err != nil {
				fmt.Fprintf(out, "  %v\n", err)
				break
			}
			preview, err := svc.PreviewLine(ctx, app.PreviewLineRequest{
				Quantity: line.Quantity, UnitPrice: line.UnitPrice, VATRate: line.VATRate,
			})
			if err != nil {
				fmt.Fprintf(out, "  %s\n", describe(err))
				break
			}
			fmt.Fprintf(out, "    gross %s  net %s\n", preview.Gross.StringFixed(2), preview.Net.StringFixed(2))
			lines = append(lines, line)
		}
		if readErr != nil {
			break
		}
	}

	if len(lines) == 0 {
		fmt.Fprintln(out, "No lines entered. Invoice not created.")
		return nil
	}

	fmt.Fprint(out, "Invoice date (YYYY-MM-DD, leave blank for today): ")
	dateInput, _ := readLine(reader)
	issued := core.DateOf(time.Now())
	if dateInput != "" {
		if issued, err = core.ParseDate(dateInput); err != nil {
			return err
		}
	}

	fmt.Fprint(out, "Notes (optional): ")
	note, _ := readLine(reader)

	inv, err := svc.CreateInvoice(ctx, core.CreateInvoiceInput{
		Date:    issued,
		PartyID: party.ID,
		Note:    note,
		Lines:   lines,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nInvoice %s created (ID: %d)\n", inv.Number, inv.ID)
	fmt.Fprintf(out, "VAT %s  TOTAL %s\n", inv.TotalVAT.StringFixed(2), inv.TotalAmount.StringFixed(2))
	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	raw, err := reader.ReadString('\n')
	return strings.TrimSpace(raw), err
}

func parseLine(raw string) (core.InvoiceLineInput, error) {
	parts := strings.Fields(raw)
	if len(parts) != 5 {
		return core.InvoiceLineInput{}, errors.New("invalid format, use: <product-id> <unit-id> <quantity> <unit-price> <vat %>")
	}
	productID, err := strconv.Atoi(parts[0])
	if err != nil {
		return core.InvoiceLineInput{}, errors.New("invalid product id")
	}
	unitID, err := strconv.Atoi(parts[1])
	if err != nil {
		return core.InvoiceLineInput{}, errors.New("invalid unit id")
	}
	qty, err := decimal.NewFromString(parts[2])
	if err != nil {
		return core.InvoiceLineInput{}, errors.New("invalid quantity")
	}
	price, err := decimal.NewFromString(parts[3])
	if err != nil {
		return core.InvoiceLineInput{}, errors.New("invalid price")
	}
	vat, err := strconv.Atoi(parts[4])
	if err != nil {
		return core.InvoiceLineInput{}, errors.New("invalid vat rate")
	}
	return core.InvoiceLineInput{ProductID: productID, UnitID: unitID, Quantity: qty, UnitPrice: price, VATRate: vat}, nil
}
