// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
//   - pgx.ErrNoRows       → 404 NOT_FOUND
//   - unique_violation    → 409 CONFLICT
//   - foreign_key / check → 422 UNPROCESSABLE
//   - invalid_text_repr   → 400 VALIDATION_ERROR
//   - anything else       → 500 INTERNAL_ERROR
//
// action is recorded in the cause for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations carry a SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgError)).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.Unprocessable("Referenced resource does not exist").WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperr.Unprocessable("Value violates a data constraint").WithCause(err)
		case pgerrcode.InvalidTextRepresentation:
			return apperr.ValidationError("Malformed identifier or value").WithCause(err)
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(&actionError{action: action, err: err})
}

// NotFound returns a 404 for a named resource when err is pgx.ErrNoRows and
// delegates to [Wrap] otherwise.
func NotFound(err error, resource, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}

func conflictMessage(pgError *pgconn.PgError) string {
	if pgError.ConstraintName != "" {
		return "Duplicate value violates " + pgError.ConstraintName
	}
	return "Resource already exists"
}

// actionError tags a raw database error with the repository action that failed.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }
func (e *actionError) Unwrap() error { return e.err }
