// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package church manages parishes, the root of every scoping chain.

# Core Responsibility

  - Registry: Creation, listing and soft deletion of churches by super admins.
  - Profile: Contact details and the monthly dues amount, editable by the
    church's own administrator.
*/
package church

import (
	"time"

	"github.com/shopspring/decimal"
)

// # Core Entities

// Church is a single parish.
type Church struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Address     *string         `json:"address,omitempty"`
	Diocese     *string         `json:"diocese,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Email       *string         `json:"email,omitempty"`
	MonthlyDues decimal.Decimal `json:"monthlyDues"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// # Search & Filtering

// Filter narrows the church listing.
type Filter struct {
	Query string // Matches name, code, or diocese
}

// # Limits

const (
	maxNameLength = 200
	maxCodeLength = 60
)

// # Field Identifiers

const (
	FieldName        = "name"
	FieldCode        = "code"
	FieldAddress     = "address"
	FieldDiocese     = "diocese"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldMonthlyDues = "monthlyDues"
	FieldChurchID    = "churchId"
)
