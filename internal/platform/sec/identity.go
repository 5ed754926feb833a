// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Identifiers

// Each identifier kind is a distinct type so that a UnitID can never be
// compared against a ChurchID without an explicit conversion.
type (
	// UserID identifies an account (the token subject).
	UserID string

	// ChurchID identifies a church.
	ChurchID string

	// UnitID identifies a unit inside a church.
	UnitID string

	// KudumbakutayimaID identifies a family prayer group inside a unit.
	KudumbakutayimaID string

	// MemberID identifies a parishioner record.
	MemberID string
)

func (id UserID) String() string            { return string(id) }
func (id ChurchID) String() string          { return string(id) }
func (id UnitID) String() string            { return string(id) }
func (id KudumbakutayimaID) String() string { return string(id) }
func (id MemberID) String() string          { return string(id) }

// # Scopes

// Scope names the resource kind an ownership check is evaluated against.
type Scope string

const (
	ScopeChurch          Scope = "church"
	ScopeUnit            Scope = "unit"
	ScopeKudumbakutayima Scope = "kudumbakutayima"
	ScopeMember          Scope = "member"
)

// Field returns the route parameter / JSON body field that carries the
// target identifier for the scope.
func (s Scope) Field() string {
	switch s {
	case ScopeChurch:
		return "churchId"
	case ScopeUnit:
		return "unitId"
	case ScopeKudumbakutayima:
		return "kudumbakutayimaId"
	case ScopeMember:
		return "memberId"
	default:
		return ""
	}
}

// # Identity

// Identity is the authenticated principal attached to one request.
//
// It is built once by the authentication middleware and treated as a value
// from then on; handlers receive a pointer but must not mutate it.
type Identity struct {
	UserID            UserID            `json:"id"`
	Role              Role              `json:"role"`
	ChurchID          ChurchID          `json:"churchId,omitempty"`
	UnitID            UnitID            `json:"unitId,omitempty"`
	KudumbakutayimaID KudumbakutayimaID `json:"kudumbakutayimaId,omitempty"`
	MemberID          MemberID          `json:"memberId,omitempty"`
}

// IsSuperAdmin reports whether the identity bypasses ownership checks.
func (i *Identity) IsSuperAdmin() bool {
	return i != nil && i.Role == RoleSuperAdmin
}

// owns compares target with the scoping identifier matching scope.
// An empty scoping identifier never matches.
func (i *Identity) owns(scope Scope, target string) bool {
	switch scope {
	case ScopeChurch:
		return i.ChurchID != "" && i.ChurchID == ChurchID(target)
	case ScopeUnit:
		return i.UnitID != "" && i.UnitID == UnitID(target)
	case ScopeKudumbakutayima:
		return i.KudumbakutayimaID != "" && i.KudumbakutayimaID == KudumbakutayimaID(target)
	case ScopeMember:
		return i.MemberID != "" && i.MemberID == MemberID(target)
	default:
		return false
	}
}
