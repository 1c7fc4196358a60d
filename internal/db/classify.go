package db

import (
	"context"
	"errors"
	"net"
	"strings"

	"accounting-backend/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify converts a driver error into an *apperr.Error. Already classified
// errors and nil pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &apperr.Error{Kind: apperr.KindNotFound, Message: "record not found", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgError(pgErr, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return unavailable(err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return unavailable(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return unavailable(err)
	}
	return &apperr.Error{Kind: apperr.KindInternal, Err: err}
}

func classifyPgError(pgErr *pgconn.PgError, err error) error {
	e := &apperr.Error{Constraint: pgErr.ConstraintName, Err: err}
	code := pgErr.Code
	switch {
	case code == "23505":
		e.Kind = apperr.KindConflict
		e.Message = "record already exists"
	case code == "23503":
		e.Kind = apperr.KindReferentialIntegrity
		e.Message = "referenced record does not exist or is still in use"
	case code == "23502" || code == "23514" || strings.HasPrefix(code, "22"):
		e.Kind = apperr.KindValidation
		e.Message = "invalid value"
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "53"),
		code == "57P01", code == "57P03", code == "40001", code == "40P01":
		// connection exceptions, resource exhaustion, shutdown, serialization
		e.Kind = apperr.KindStorageUnavailable
	default:
		e.Kind = apperr.KindInternal
	}
	return e
}

func unavailable(err error) error {
	return &apperr.Error{Kind: apperr.KindStorageUnavailable, Err: err}
}
