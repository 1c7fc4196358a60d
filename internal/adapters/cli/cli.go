package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"accounting-backend/internal/app"
	"accounting-backend/internal/core"

	"github.com/shopspring/decimal"
)

// ErrUsage is returned for unknown commands and malformed arguments.
var ErrUsage = errors.New("usage error")

const usage = `Available commands:
  list [-no N] [-party NAME] [-from YYYY-MM-DD] [-to YYYY-MM-DD]
  show <id>
  create            (reads the invoice JSON from stdin)
  delete <id>
  calc <quantity> <unit price> <vat %>
  parties | products | units
  create-user <username> <password> [full name]`

// Run executes a one-shot CLI command.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command\n%s", ErrUsage, usage)
	}

	switch args[0] {
	case "list", "ls", "l":
		f, err := listFilter(args[1:])
		if err != nil {
			return err
		}
		res, err := svc.ListInvoices(ctx, f)
		if err != nil {
			return fmt.Errorf("list invoices: %w", err)
		}
		printInvoices(out, res)

	case "show", "s":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		inv, err := svc.GetInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("show invoice: %w", err)
		}
		printInvoice(out, inv)

	case "create", "c":
		var input core.CreateInvoiceInput
		if err := json.NewDecoder(in).Decode(&input); err != nil {
			return fmt.Errorf("%w: invalid JSON: %v", ErrUsage, err)
		}
		inv, err := svc.CreateInvoice(ctx, input)
		if err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)

	case "delete", "del", "rm":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		if err := svc.DeleteInvoice(ctx, id); err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
		fmt.Fprintf(out, "Invoice %d deleted.\n", id)

	case "calc":
		req, err := calcArgs(args[1:])
		if err != nil {
			return err
		}
		preview, err := svc.PreviewLine(ctx, req)
		if err != nil {
			return fmt.Errorf("calc: %w", err)
		}
		fmt.Fprintf(out, "Gross : %s\nVAT   : %s\nNet   : %s\n",
			money(preview.Gross), money(preview.VAT), money(preview.Net))

	case "parties":
		res, err := svc.ListParties(ctx, core.PartyFilter{})
		if err != nil {
			return fmt.Errorf("list parties: %w", err)
		}
		printParties(out, res)

	case "products":
		res, err := svc.ListProducts(ctx, core.ProductFilter{})
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		printProducts(out, res)

	case "units":
		res, err := svc.ListUnits(ctx, core.UnitFilter{})
		if err != nil {
			return fmt.Errorf("list units: %w", err)
		}
		printUnits(out, res)

	case "create-user":
		if len(args) < 3 {
			return fmt.Errorf("%w: create-user <username> <password> [full name]", ErrUsage)
		}
		user, err := svc.CreateUser(ctx, app.CreateUserRequest{
			Username: args[1],
			Password: args[2],
			FullName: strings.Join(args[3:], " "),
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(out, "User %q created (id %d).\n", user.Username, user.UserID)

	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)

	default:
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, args[0], usage)
	}
	return nil
}

func listFilter(args []string) (core.InvoiceFilter, error) {
	var f core.InvoiceFilter
	var from, to string
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.Number, "no", "", "invoice number substring")
	fs.StringVar(&f.PartyName, "party", "", "party name substring")
	fs.StringVar(&from, "from", "", "first issue date")
	fs.StringVar(&to, "to", "", "last issue date")
	if err := fs.Parse(args); err != nil {
		return f, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	var err error
	if from != "" {
		if f.From, err = core.ParseDate(from); err != nil {
			return f, err
		}
	}
	if to != "" {
		if f.To, err = core.ParseDate(to); err != nil {
			return f, err
		}
	}
	return f, nil
}

func idArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%w: %s <id>", ErrUsage, args[0])
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, args[1])
	}
	return id, nil
}

func calcArgs(args []string) (app.PreviewLineRequest, error) {
	if len(args) != 3 {
		return app.PreviewLineRequest{}, fmt.Errorf("%w: calc <quantity> <unit price> <vat %%>", ErrUsage)
	}
	qty, err := decimal.NewFromString(args[0])
	if err != nil {
		return app.PreviewLineRequest{}, fmt.Errorf("%w: invalid quantity %q", ErrUsage, args[0])
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return app.PreviewLineRequest{}, fmt.Errorf("%w: invalid unit price %q", ErrUsage, args[1])
	}
	vat, err := strconv.Atoi(args[2])
	if err != nil {
		return app.PreviewLineRequest{}, fmt.Errorf("%w: invalid vat rate %q", ErrUsage, args[2])
	}
	return app.PreviewLineRequest{Quantity: qty, UnitPrice: price, VATRate: vat}, nil
}
