// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the login accounts of the Church Wallet platform.

An account is the stored half of an identity: its role and scoping identifiers
are fixed at creation and copied into every [sec.Identity] built for it.

# Core Responsibility

  - Entity: Defines the [Account] record and its role scoping rules.
  - Administration: Creation by super admins and church admins, listing, and
    enabling or disabling accounts.
  - Lookup: Login resolution by email or phone for the auth package.
*/
package account

import (
	"strings"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/pkg/pointer"
)

// # Core Entities

// Account is a credential-bearing principal.
type Account struct {
	ID                string     `json:"id"`
	Email             *string    `json:"email,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	PasswordHash      string     `json:"-"`
	FullName          string     `json:"fullName"`
	Role              sec.Role   `json:"role"`
	ChurchID          *string    `json:"churchId,omitempty"`
	UnitID            *string    `json:"unitId,omitempty"`
	KudumbakutayimaID *string    `json:"kudumbakutayimaId,omitempty"`
	MemberID          *string    `json:"memberId,omitempty"`
	IsActive          bool       `json:"isActive"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Identity projects the account onto the request principal.
func (account *Account) Identity() *sec.Identity {
	return &sec.Identity{
		UserID:            sec.UserID(account.ID),
		Role:              account.Role,
		ChurchID:          sec.ChurchID(pointer.Val(account.ChurchID)),
		UnitID:            sec.UnitID(pointer.Val(account.UnitID)),
		KudumbakutayimaID: sec.KudumbakutayimaID(pointer.Val(account.KudumbakutayimaID)),
		MemberID:          sec.MemberID(pointer.Val(account.MemberID)),
	}
}

// # Scoping

// Scopes is the set of scoping identifiers an account may carry.
type Scopes struct {
	ChurchID          string
	UnitID            string
	KudumbakutayimaID string
	MemberID          string
}

// requiredScopes lists, per role, which scoping identifiers must be present.
// Identifiers not listed must be absent.
var requiredScopes = map[sec.Role][]string{
	sec.RoleSuperAdmin:           {},
	sec.RoleChurchAdmin:          {FieldChurchID},
	sec.RoleUnitAdmin:            {FieldChurchID, FieldUnitID},
	sec.RoleKudumbakutayimaAdmin: {FieldChurchID, FieldUnitID, FieldKudumbakutayimaID},
	sec.RoleMember:               {FieldChurchID, FieldMemberID},
}

// ChurchAssignableRoles may be granted by a church admin inside their church.
var ChurchAssignableRoles = []sec.Role{
	sec.RoleUnitAdmin,
	sec.RoleKudumbakutayimaAdmin,
	sec.RoleMember,
}

type scopeValue struct {
	field string
	value string
}

// values lists the identifiers in church → member order.
func (scopes Scopes) values() []scopeValue {
	return []scopeValue{
		{FieldChurchID, scopes.ChurchID},
		{FieldUnitID, scopes.UnitID},
		{FieldKudumbakutayimaID, scopes.KudumbakutayimaID},
		{FieldMemberID, scopes.MemberID},
	}
}

// # Filters

// Filter narrows the account listing.
type Filter struct {
	Role     sec.Role
	ChurchID string
	Query    string
}

// # Normalization

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips the separators people type into phone numbers.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

// IsEmailLogin reports whether a login identifier is an email address.
func IsEmailLogin(login string) bool {
	return strings.Contains(login, "@")
}

// # Field Identifiers

const (
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldPassword          = "password"
	FieldFullName          = "fullName"
	FieldRole              = "role"
	FieldChurchID          = "churchId"
	FieldUnitID            = "unitId"
	FieldKudumbakutayimaID = "kudumbakutayimaId"
	FieldMemberID          = "memberId"
	FieldActive            = "active"
)
