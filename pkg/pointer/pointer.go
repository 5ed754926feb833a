// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer converts between optional inputs and nullable columns.

Request payloads use "" for an absent optional field; the entities map those
onto *T fields that are stored as NULL.
*/
package pointer

import "strings"

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value for nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback for nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// NonZero returns a pointer to v, or nil when v is the zero value.
func NonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// Trimmed trims s and returns nil when nothing is left. It is the standard
// mapping of an optional text input to a nullable column.
func Trimmed(s string) *string {
	return NonZero(strings.TrimSpace(s))
}
