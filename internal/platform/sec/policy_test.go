// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

/*
TestCheckRoles covers pass, forbidden, and unauthenticated outcomes.
*/
func TestCheckRoles(t *testing.T) {
	superOnly := sec.NewRoleSet(sec.RoleSuperAdmin)

	assert.NoError(t, sec.CheckRoles(&sec.Identity{UserID: "u1", Role: sec.RoleSuperAdmin}, superOnly))
	assert.ErrorIs(t, sec.CheckRoles(&sec.Identity{UserID: "u2", Role: sec.RoleMember}, superOnly), sec.ErrForbidden)
	assert.ErrorIs(t, sec.CheckRoles(nil, superOnly), sec.ErrUnauthenticated)

	// An unknown role string never matches, even against the full set.
	everyone := sec.NewRoleSet(sec.AllRoles...)
	assert.ErrorIs(t, sec.CheckRoles(&sec.Identity{UserID: "u3", Role: "root"}, everyone), sec.ErrForbidden)
}

/*
TestCheckOwnership_Church pins the church ownership matrix.
*/
func TestCheckOwnership_Church(t *testing.T) {
	unitAdmin := &sec.Identity{UserID: "u1", Role: sec.RoleUnitAdmin, ChurchID: "C1", UnitID: "U1"}
	superAdmin := &sec.Identity{UserID: "root", Role: sec.RoleSuperAdmin}

	assert.NoError(t, sec.CheckOwnership(unitAdmin, sec.ScopeChurch, "C1"))
	assert.ErrorIs(t, sec.CheckOwnership(unitAdmin, sec.ScopeChurch, "C2"), sec.ErrForbidden)
	assert.ErrorIs(t, sec.CheckOwnership(unitAdmin, sec.ScopeChurch, ""), sec.ErrForbidden)

	for _, target := range []string{"C1", "C2", "", "anything"} {
		assert.NoError(t, sec.CheckOwnership(superAdmin, sec.ScopeChurch, target))
	}
}

/*
TestCheckOwnership_Scopes verifies each scope compares only its own identifier.
*/
func TestCheckOwnership_Scopes(t *testing.T) {
	identity := &sec.Identity{
		UserID:            "u1",
		Role:              sec.RoleKudumbakutayimaAdmin,
		ChurchID:          "same",
		UnitID:            "U1",
		KudumbakutayimaID: "K1",
	}

	tests := []struct {
		name    string
		scope   sec.Scope
		target  string
		allowed bool
	}{
		{"church_match", sec.ScopeChurch, "same", true},
		{"unit_match", sec.ScopeUnit, "U1", true},
		{"unit_mismatch_uses_church_value", sec.ScopeUnit, "same", false},
		{"kudumbakutayima_match", sec.ScopeKudumbakutayima, "K1", true},
		{"member_unset", sec.ScopeMember, "M1", false},
		{"unknown_scope", sec.Scope("parish"), "same", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.CheckOwnership(identity, tt.scope, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, sec.ErrForbidden)
			}
		})
	}
}

/*
TestCheckOwnership_NoIdentity is always unauthenticated, never forbidden.
*/
func TestCheckOwnership_NoIdentity(t *testing.T) {
	for _, scope := range []sec.Scope{sec.ScopeChurch, sec.ScopeUnit, sec.ScopeKudumbakutayima, sec.ScopeMember} {
		err := sec.CheckOwnership(nil, scope, "X")
		assert.ErrorIs(t, err, sec.ErrUnauthenticated)
		assert.NotErrorIs(t, err, sec.ErrForbidden)
	}
}

/*
TestParseRole accepts only the closed set.
*/
func TestParseRole(t *testing.T) {
	for _, raw := range sec.RoleStrings() {
		role, ok := sec.ParseRole(raw)
		assert.True(t, ok)
		assert.Equal(t, raw, role.String())
	}

	for _, raw := range []string{"", "admin", "SUPER_ADMIN", "moderator"} {
		_, ok := sec.ParseRole(raw)
		assert.False(t, ok, raw)
	}

	role, ok := sec.ParseRole("  member ")
	assert.True(t, ok)
	assert.Equal(t, sec.RoleMember, role)
}

/*
TestRoleSet_Roles keeps declaration order and drops invalid roles.
*/
func TestRoleSet_Roles(t *testing.T) {
	set := sec.NewRoleSet(sec.RoleMember, "bogus", sec.RoleSuperAdmin)
	assert.Equal(t, []sec.Role{sec.RoleSuperAdmin, sec.RoleMember}, set.Roles())
	assert.False(t, set.Contains("bogus"))
}
