// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued URL query parameters.
package query

import "strings"

// StringSlice splits a comma-separated query value into trimmed, non-empty
// parts. Repeated values are kept once, in first-seen order.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	seen := map[string]bool{}
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" && !seen[clean] {
			seen[clean] = true
			res = append(res, clean)
		}
	}
	return res
}
