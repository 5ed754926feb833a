// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"time"
)

// Repository defines the persistence contract for dues.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Dues, int, error)

	// GeneratePending inserts one pending row per billable member for period
	// and returns how many were new. Existing rows are left untouched.
	GeneratePending(ctx context.Context, period string, dueDate, now time.Time) (int64, error)

	// MarkOverdue rolls pending rows due before today to overdue.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}
