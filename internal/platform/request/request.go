// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/ctxutil"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
)

// maxBodySize bounds every decoded JSON payload.
const maxBodySize = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are rejected so that a typo in a PATCH body is reported instead
of silently ignored.

Parameters:
  - writer: http.ResponseWriter (used to enforce the body size limit)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return validate.RequiredError("body", "Request body is required")
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryTime parses an optional RFC 3339 date or YYYY-MM-DD query parameter.

Returns:
  - *time.Time: nil when absent
  - error: VALIDATION_ERROR when present but malformed
*/
func QueryTime(request *http.Request, name string) (*time.Time, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, validate.RequiredError(name, "Must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

/*
QueryBool parses an optional boolean query parameter.
*/
func QueryBool(request *http.Request, name string) (*bool, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validate.RequiredError(name, "Must be true or false")
	}
	return &value, nil
}

/*
Identity extracts the resolved identity from the request context.

Returns nil if the request is anonymous.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the identity.

Returns:
  - *sec.Identity: The authenticated principal
  - error: apperr.Unauthenticated if the request is anonymous
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {

	// Get identity
	identity := ctxutil.GetIdentity(request.Context())

	// If the user is not authenticated, return an error
	if identity == nil {
		return nil, apperr.Unauthenticated("Authentication required")
	}

	return identity, nil
}
