// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the primary keys used across Church Wallet.
//
// Keys are UUIDv7 strings from google/uuid. Their time prefix keeps inserts at
// the tail of the Postgres B-tree index and makes ID order match creation order.
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical form. It panics only when the
// system entropy source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
