// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters and builds the meta
// block of paginated list responses (church register, ledger, dues, accounts).
package pagination

import (
	"net/http"
	"strconv"
)

// Query parameter names.
const (
	PageParam  = "page"
	LimitParam = "limit"
)

const (
	// DefaultLimit is the page size when none is requested.
	DefaultLimit = 20
	// MaxLimit caps the page size. Larger requests are clamped to it.
	MaxLimit = 100
	// DefaultPage is the first page (1-indexed).
	DefaultPage = 1
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the LIMIT and OFFSET pair consumed by repositories.
func (p Params) Window() (limit, offset int) {
	return p.Limit, p.Offset()
}

// Meta describes the returned page within the full result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

// Meta builds the response metadata once the repository reported total.
func (p Params) Meta(total int) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
	}
}

/*
FromRequest reads "page" and "limit" from the query string.

Rules:
  - Missing or unparsable values take their defaults.
  - A page below 1 becomes [DefaultPage].
  - A limit below 1 becomes [DefaultLimit]; above [MaxLimit] it is clamped.
*/
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page := intOr(query.Get(PageParam), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := intOr(query.Get(LimitParam), DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
