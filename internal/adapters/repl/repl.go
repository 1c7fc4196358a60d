package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"accounting-backend/internal/adapters/cli"
	"accounting-backend/internal/app"
	"accounting-backend/internal/apperr"
)

var errExit = errors.New("exit")

// Run starts the interactive loop. Slash commands map onto the one-shot CLI
// commands; /new-invoice starts the invoice wizard. It returns when the
// input ends or the user types /exit.
func Run(ctx context.Context, svc app.ApplicationService, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "Invoicing console")
	fmt.Fprintln(out, "Type /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "\n> ")
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		if input != "" {
			err := dispatch(ctx, svc, reader, out, input)
			if errors.Is(err, errExit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "[REPL] Error: %s\n", describe(err))
			}
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read input: %w", readErr)
		}
	}
}

func dispatch(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer, input string) error {
	if !strings.HasPrefix(input, "/") {
		fmt.Fprintln(out, "Commands start with '/'. Type /help for the list.")
		return nil
	}
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])

	switch cmd {
	case "exit", "quit", "q":
		return errExit
	case "help", "h":
		printHelp(out)
		return nil
	case "new-invoice", "ni":
		if len(tokens) < 2 {
			fmt.Fprintln(out, "Usage: /new-invoice <party-id>")
			return nil
		}
		return newInvoice(ctx, reader, svc, out, tokens[1])
	case "create":
		fmt.Fprintln(out, "Use /new-invoice <party-id> in interactive mode.")
		return nil
	}

	tokens[0] = cmd
	return cli.Run(ctx, svc, tokens, strings.NewReader(""), out)
}

// describe keeps internal details out of the console.
func describe(err error) string {
	if _, ok := apperr.As(err); ok {
		return apperr.Message(err)
	}
	return err.Error()
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  /list [-no N] [-party NAME] [-from DATE] [-to DATE]")
	fmt.Fprintln(out, "  /show <id>          /delete <id>")
	fmt.Fprintln(out, "  /new-invoice <party-id>")
	fmt.Fprintln(out, "  /calc <quantity> <unit price> <vat %>")
	fmt.Fprintln(out, "  /parties  /products  /units")
	fmt.Fprintln(out, "  /exit")
}
