// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema names every table and column the repositories touch.

Repositories assemble their queries from these definitions.
*/
package schema

import "strings"

// List joins column names into a SELECT / INSERT column list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}

// Prefixed qualifies every column with alias ("m" → "m.id, m.name").
func Prefixed(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
