// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import "context"

// Repository defines the persistence contract for members.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Member, int, error)
	FindByID(ctx context.Context, id string) (*Member, error)
	Create(ctx context.Context, member *Member) error
	Update(ctx context.Context, member *Member) error
	SoftDelete(ctx context.Context, churchID, id string) error

	// PlacementConsistent reports whether the church is live and the optional
	// unit and kudumbakutayima hang under it.
	PlacementConsistent(ctx context.Context, churchID string, unitID, kudumbakutayimaID *string) (bool, error)
}
