// Package apperr defines the error taxonomy shared by the storage, service and
// transport layers. Classification happens once, where the condition is
// detected; callers branch on Kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and transports.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindReferentialIntegrity
	KindStorageUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindReferentialIntegrity:
		return "referential_integrity"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "internal"
	}
}

// Error is a classified error. Message is safe to show to API callers.
type Error struct {
	Kind       Kind
	Message    string
	Constraint string // database constraint name, when one was violated
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error without a cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation, NotFound and Conflict are shorthands for New.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the classification of err; unclassified errors are internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ConstraintOf returns the violated constraint name carried anywhere in the chain.
func ConstraintOf(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Constraint != "" {
			return e.Constraint
		}
		err = e.Err
	}
	return ""
}

// Message returns the caller-safe message for err. Internal and storage
// errors never leak their cause.
func Message(err error) string {
	e, ok := As(err)
	if !ok {
		return "internal server error"
	}
	switch e.Kind {
	case KindInternal:
		return "internal server error"
	case KindStorageUnavailable:
		return "storage temporarily unavailable, please retry"
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Retryable reports whether repeating the operation may succeed: storage
// outages, and invoice number collisions raised by concurrent creates.
func Retryable(err error) bool {
	e, ok := As(err)
	if !ok {
		return false
	}
	if e.Kind == KindStorageUnavailable {
		return true
	}
	return e.Kind == KindConflict && ConstraintOf(err) == InvoiceNumberConstraint
}

// InvoiceNumberConstraint is the unique constraint guarding invoice numbers.
const InvoiceNumberConstraint = "fatura_fatura_no_key"
