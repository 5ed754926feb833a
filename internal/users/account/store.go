// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"time"
)

// # Account Data Access

// Repository defines the data access contract for accounts.
type Repository interface {

	// Create persists a new account.
	Create(context context.Context, account *Account) error

	// FindByID returns the account with the given ID, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Account, error)

	// FindByEmail looks an account up by its case-insensitive email.
	FindByEmail(context context.Context, email string) (*Account, error)

	// FindByPhone looks an account up by its normalized phone number.
	FindByPhone(context context.Context, phone string) (*Account, error)

	// List returns one page of accounts plus the total match count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Account, int, error)

	// SetActive flips the isactive flag and returns the updated account.
	SetActive(context context.Context, id string, active bool) (*Account, error)

	// UpdatePassword replaces only the password hash.
	UpdatePassword(context context.Context, id, passwordHash string) error

	// TouchLastLogin records a successful login.
	TouchLastLogin(context context.Context, id string, at time.Time) error

	/*
		ScopesConsistent reports whether the scoping identifiers exist and nest:
		the unit belongs to the church, the kudumbakutayima to the unit, and the
		member to the church. Empty identifiers are not checked.
	*/
	ScopesConsistent(context context.Context, scopes Scopes) (bool, error)
}
