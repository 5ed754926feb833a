// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "errors"

// # Authorization Outcomes

var (
	// ErrUnauthenticated means no identity was resolved for the request.
	ErrUnauthenticated = errors.New("sec: unauthenticated")

	// ErrForbidden means an identity exists but fails the role or ownership rule.
	ErrForbidden = errors.New("sec: forbidden")
)

// # Policies

// CheckRoles passes when identity's role belongs to allowed.
//
// A nil identity always yields [ErrUnauthenticated], never [ErrForbidden].
func CheckRoles(identity *Identity, allowed RoleSet) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if !allowed.Contains(identity.Role) {
		return ErrForbidden
	}
	return nil
}

// CheckOwnership passes when identity may act on the resource identified by
// target within scope.
//
//  1. super_admin passes unconditionally.
//  2. Otherwise the identity's scoping identifier for scope must be set and
//     string-equal to target.
func CheckOwnership(identity *Identity, scope Scope, target string) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if identity.IsSuperAdmin() {
		return nil
	}
	if target == "" || !identity.owns(scope, target) {
		return ErrForbidden
	}
	return nil
}
