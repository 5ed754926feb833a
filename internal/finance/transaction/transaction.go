// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transaction is the church ledger.

# Core Responsibility

  - Recording: Income and expense entries, optionally attributed to a unit, a
    member or a campaign of the same church.
  - Dues settlement: A dues payment that names a dues record marks it paid in
    the same database transaction.
  - Reporting: Filtered listings per church, unit and member, and an
    income/expense summary over a date range.

The ledger is append-only. Entries are never edited or deleted.
*/
package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// # Core Entities

// Transaction is a single ledger entry.
type Transaction struct {
	ID          string          `json:"id"`
	ChurchID    string          `json:"churchId"`
	UnitID      *string         `json:"unitId,omitempty"`
	MemberID    *string         `json:"memberId,omitempty"`
	CampaignID  *string         `json:"campaignId,omitempty"`
	DuesID      *string         `json:"duesId,omitempty"`
	Type        Type            `json:"type"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Reference   *string         `json:"reference,omitempty"` // Receipt or voucher number
	OccurredOn  time.Time       `json:"occurredOn"`
	RecordedBy  string          `json:"recordedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Summary totals the ledger over a date range.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	From    *time.Time      `json:"from,omitempty"`
	To      *time.Time      `json:"to,omitempty"`
}

// # Enums

// Type is the direction of money.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var types = []string{string(TypeIncome), string(TypeExpense)}

// Category classifies an entry.
type Category string

const (
	CategoryOffering    Category = "offering"
	CategoryTithe       Category = "tithe"
	CategoryDonation    Category = "donation"
	CategoryDues        Category = "dues"
	CategoryCampaign    Category = "campaign"
	CategorySalary      Category = "salary"
	CategoryMaintenance Category = "maintenance"
	CategoryCharity     Category = "charity"
	CategoryOther       Category = "other"
)

var categories = []string{
	string(CategoryOffering), string(CategoryTithe), string(CategoryDonation),
	string(CategoryDues), string(CategoryCampaign), string(CategorySalary),
	string(CategoryMaintenance), string(CategoryCharity), string(CategoryOther),
}

// # Search & Filtering

// Filter narrows a ledger listing. ChurchID, UnitID or MemberID selects the
// ledger being browsed; From and To are inclusive dates.
type Filter struct {
	ChurchID string
	UnitID   string
	MemberID string
	Type     Type
	Category Category
	From     *time.Time
	To       *time.Time
}

// # Limits

const (
	maxDescriptionLength = 500
	maxReferenceLength   = 100
)

// # Field Identifiers

const (
	FieldChurchID    = "churchId"
	FieldUnitID      = "unitId"
	FieldMemberID    = "memberId"
	FieldCampaignID  = "campaignId"
	FieldDuesID      = "duesId"
	FieldType        = "type"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldReference   = "reference"
	FieldOccurredOn  = "occurredOn"
	FieldFrom        = "from"
	FieldTo          = "to"
)
