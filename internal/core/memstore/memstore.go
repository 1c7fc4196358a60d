// Package memstore is an in-memory implementation of the core stores. It
// enforces the same unique and foreign-key constraints as the PostgreSQL
// schema, reports violations under the same constraint names, and can inject
// faults into individual operations.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"
)

// Operation names accepted by FailOn.
const (
	OpDayNumbers    = "DayNumbers"
	OpInsertInvoice = "InsertInvoice"
	OpInsertLine    = "InsertLine"
	OpDeleteLines   = "DeleteLines"
	OpDeleteInvoice = "DeleteInvoice"
	OpGetInvoice    = "GetInvoice"
	OpListInvoices  = "ListInvoices"
	OpBegin         = "Begin"
	OpPing          = "Ping"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu     sync.Mutex
	st     *state
	faults map[string]fault
	calls  map[string]int
}

type fault struct {
	nth int
	err error
}

type state struct {
	nextID   map[string]int
	units    map[int]core.Unit
	parties  map[int]core.Party
	products map[int]core.Product
	invoices map[int]core.Invoice // headers only
	lines    map[int]core.InvoiceLine
	users    map[int]core.User
}

// New returns an empty store.
func New() *Store {
	return &Store{
		st: &state{
			nextID:   map[string]int{},
			units:    map[int]core.Unit{},
			parties:  map[int]core.Party{},
			products: map[int]core.Product{},
			invoices: map[int]core.Invoice{},
			lines:    map[int]core.InvoiceLine{},
			users:    map[int]core.User{},
		},
		faults: map[string]fault{},
		calls:  map[string]int{},
	}
}

// FailOn makes the nth subsequent call (1-based) of op return err.
func (s *Store) FailOn(op string, nth int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = fault{nth: nth, err: err}
	s.calls[op] = 0
}

// InvoiceCount returns the number of committed invoice headers.
func (s *Store) InvoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.invoices)
}

// LineCount returns the number of committed invoice lines.
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.lines)
}

// Parties, Units, Products, Invoices and Users expose the store through the
// core store interfaces.
func (s *Store) Parties() core.PartyStore { return partyStore{s} }
func (s *Store) Units() core.UnitStore { return unitStore{s} }
func (s *Store) Products() core.ProductStore { return productStore{s} }
func (s *Store) Invoices() core.InvoiceStore { return invoiceStore{s} }
func (s *Store) Users() core.UserStore { return userStore{s} }

// Ping reports the store healthy unless a fault is injected for OpPing.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enter(ctx, OpPing)
}

// enter checks cancellation and injected faults; s.mu must be held.
func (s *Store) enter(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, err, "storage operation cancelled")
	}
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	s.calls[op]++
	if s.calls[op] == f.nth {
		delete(s.faults, op)
		return f.err
	}
	return nil
}

func (st *state) clone() *state {
	return &state{
		nextID:   cloneMap(st.nextID),
		units:    cloneMap(st.units),
		parties:  cloneMap(st.parties),
		products: cloneMap(st.products),
		invoices: cloneMap(st.invoices),
		lines:    cloneMap(st.lines),
		users:    cloneMap(st.users),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (st *state) newID(table string) int {
	st.nextID[table]++
	return st.nextID[table]
}

func uniqueViolation(constraint string) error {
	return &apperr.Error{Kind: apperr.KindConflict, Message: "record already exists", Constraint: constraint}
}

func fkViolation(constraint string) error {
	return &apperr.Error{
		Kind:       apperr.KindReferentialIntegrity,
		Message:    "referenced record does not exist or is still in use",
		Constraint: constraint,
	}
}

func checkViolation(message string) error {
	return &apperr.Error{Kind: apperr.KindValidation, Message: message}
}

// contains is a case-insensitive substring match; an empty needle matches.
func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sameOptional(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func sortedValues[V any](m map[int]V, less func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, less)
	return out
}

func byNameThenID(an, bn string, aid, bid int) int {
	return cmp.Or(cmp.Compare(an, bn), cmp.Compare(aid, bid))
}
