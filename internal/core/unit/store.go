// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unit

import "context"

// Repository defines persistence operations for units.
type Repository interface {
	ListByChurch(context context.Context, churchID string) ([]*Unit, error)
	FindByID(context context.Context, id string) (*Unit, error)

	// Create fails with NotFound("Church") when the church is missing or deleted.
	Create(context context.Context, unit *Unit) error
	Update(context context.Context, unit *Unit) error

	// SoftDelete only matches a unit of churchID.
	SoftDelete(context context.Context, churchID, id string) error
}
