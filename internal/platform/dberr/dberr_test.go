// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the API error table.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "churches_code_key"}, http.StatusConflict},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusUnprocessableEntity},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, http.StatusUnprocessableEntity},
		{"malformed_uuid", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, http.StatusBadRequest},
		{"other_pg", &pgconn.PgError{Code: pgerrcode.SyntaxError}, http.StatusInternalServerError},
		{"plain", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "test_action"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_PassThrough leaves nil and classified errors alone.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	forbidden := apperr.Forbidden("no")
	assert.Same(t, forbidden, dberr.Wrap(forbidden, "noop"))
}

/*
TestNotFound_NamesResource uses the given resource in the message.
*/
func TestNotFound_NamesResource(t *testing.T) {
	ae := apperr.As(dberr.NotFound(pgx.ErrNoRows, "Unit", "get_unit"))
	require.NotNil(t, ae)
	assert.Equal(t, "Unit not found", ae.Message)
}
