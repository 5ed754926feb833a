// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kudumbakutayima

import "context"

// Repository defines persistence operations for kudumbakutayimas.
type Repository interface {
	ListByUnit(context context.Context, unitID string) ([]*Kudumbakutayima, error)
	FindByID(context context.Context, id string) (*Kudumbakutayima, error)

	// Create fills ChurchID from the unit and fails with NotFound("Unit") when
	// the unit is missing or deleted.
	Create(context context.Context, kudumbakutayima *Kudumbakutayima) error
	Update(context context.Context, kudumbakutayima *Kudumbakutayima) error
}
