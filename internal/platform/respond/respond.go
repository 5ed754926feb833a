// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes the JSON envelopes every Church Wallet handler returns.

Successful bodies are {"data": ...}, optionally with a pagination "meta" block.
Failures are {"error", "code", "details"} built from an [apperr.AppError].
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/ctxutil"
	"github.com/taibuivan/churchwallet/pkg/pagination"
)

// rateLimitRetryAfter is the Retry-After value sent with every 429, in seconds.
const rateLimitRetryAfter = "1"

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with the given status. Encoding errors are dropped
// since the header is already sent.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusOK, data)
}

func Created(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusCreated, data)
}

// Status wraps data in the success envelope with an explicit status code.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, SuccessEnvelope{Data: data})
}

// Paginated writes a page of items. A nil slice renders as [].
func Paginated[T any](writer http.ResponseWriter, items []T, meta pagination.Meta) {
	if items == nil {
		items = []T{}
	}
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: items, Meta: meta})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error renders err as an error envelope.

Errors without an [apperr.AppError] in their chain become INTERNAL_ERROR.
Every 5xx is logged with its cause and the request id.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		ctx := request.Context()
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appErr.Code),
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appErr.Cause),
		)
	}

	if appErr.HTTPStatus == http.StatusTooManyRequests {
		writer.Header().Set(constants.HeaderRetryAfter, rateLimitRetryAfter)
	}

	JSON(writer, appErr.HTTPStatus, ErrorEnvelope{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}
