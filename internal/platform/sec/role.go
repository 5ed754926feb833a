// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// Role represents the authorization category granted to an account.
//
// The set is closed: a Role value outside the constants below is never
// produced by [ParseRole] and never passes a role check.
type Role string

const (
	// Unrestricted access across every church
	RoleSuperAdmin Role = "super_admin"

	// Manages a single church (units, members, finances, campaigns)
	RoleChurchAdmin Role = "church_admin"

	// Manages a unit (ward) inside a church
	RoleUnitAdmin Role = "unit_admin"

	// Manages a kudumbakutayima (family prayer group) inside a unit
	RoleKudumbakutayimaAdmin Role = "kudumbakutayima_admin"

	// A registered parishioner viewing their own records
	RoleMember Role = "member"
)

// AllRoles lists every role in declaration order.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleChurchAdmin,
	RoleUnitAdmin,
	RoleKudumbakutayimaAdmin,
	RoleMember,
}

// ParseRole converts a raw string into a [Role].
// It reports false for anything outside the closed set.
func ParseRole(raw string) (Role, bool) {
	candidate := Role(strings.TrimSpace(raw))
	if candidate.Valid() {
		return candidate, true
	}
	return "", false
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleChurchAdmin, RoleUnitAdmin, RoleKudumbakutayimaAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (r Role) String() string { return string(r) }

// RoleStrings returns the raw values of [AllRoles] (used by validators).
func RoleStrings() []string {
	out := make([]string, len(AllRoles))
	for i, role := range AllRoles {
		out[i] = string(role)
	}
	return out
}

// # Role Sets

// RoleSet is an immutable set of roles allowed through a guard.
type RoleSet struct {
	members map[Role]struct{}
}

// NewRoleSet builds a [RoleSet]. Invalid roles are dropped.
func NewRoleSet(roles ...Role) RoleSet {
	members := make(map[Role]struct{}, len(roles))
	for _, role := range roles {
		if role.Valid() {
			members[role] = struct{}{}
		}
	}
	return RoleSet{members: members}
}

// Contains reports whether role belongs to the set.
func (s RoleSet) Contains(role Role) bool {
	_, ok := s.members[role]
	return ok
}

// Roles returns the members in [AllRoles] order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s.members))
	for _, role := range AllRoles {
		if s.Contains(role) {
			out = append(out, role)
		}
	}
	return out
}
