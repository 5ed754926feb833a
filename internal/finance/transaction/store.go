// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transaction

import (
	"context"
	"time"
)

// Repository defines the persistence contract for the ledger.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Transaction, int, error)
	Summary(ctx context.Context, churchID string, from, to *time.Time) (*Summary, error)

	// ReferencesConsistent reports whether the optional unit, member and
	// campaign are live and belong to churchID.
	ReferencesConsistent(ctx context.Context, churchID string, unitID, memberID, campaignID *string) (bool, error)

	// Create appends an entry. When DuesID is set the dues record is settled
	// atomically with the insert; an unset UnitID is taken from the member.
	Create(ctx context.Context, transaction *Transaction) error
}
