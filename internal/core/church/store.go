// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package church

import "context"

// Repository defines persistence operations for churches.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Church, int, error)
	FindByID(context context.Context, id string) (*Church, error)
	Create(context context.Context, church *Church) error
	Update(context context.Context, church *Church) error
	SoftDelete(context context.Context, id string) error
}
