// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package campaign

import "context"

// Repository defines the persistence contract for campaigns. Every lookup is
// scoped to the owning church.
type Repository interface {
	List(ctx context.Context, churchID string, filter Filter, limit, offset int) ([]*Campaign, int, error)
	FindByID(ctx context.Context, churchID, id string) (*Campaign, error)
	Create(ctx context.Context, campaign *Campaign) error
	Update(ctx context.Context, campaign *Campaign) error
	SoftDelete(ctx context.Context, churchID, id string) error
}
