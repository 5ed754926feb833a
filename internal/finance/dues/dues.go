// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dues bills monthly membership dues.

# Core Responsibility

  - Generation: Once per period (YYYY-MM) every active member of a church with
    a positive monthly dues amount gets one pending dues row.
  - Ageing: Pending rows past their due date roll to overdue.
  - Settlement: Rows are marked paid by the ledger when a dues payment names
    them (see package transaction).

# Scheduling

The [Processor] runs on a cron schedule under a Redis lock so that only one
replica bills at a time. Runs that cannot take the lock are skipped.
*/
package dues

import (
	"time"

	"github.com/shopspring/decimal"
)

// # Core Entities

// Dues is the dues of one member for one period.
type Dues struct {
	ID            string          `json:"id"`
	ChurchID      string          `json:"churchId"`
	MemberID      string          `json:"memberId"`
	Period        string          `json:"period"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	Status        Status          `json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	TransactionID *string         `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RunResult reports what a processor run did.
type RunResult struct {
	Period  string    `json:"period"`
	DueDate time.Time `json:"dueDate"`
	Created int64     `json:"created"`
	Overdue int64     `json:"overdue"`
	Skipped bool      `json:"skipped"` // Another run held the lock
}

// # Enums

// Status is the payment state of a dues row.
type Status string

const (
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
	StatusPaid    Status = "paid"
)

var statuses = []string{string(StatusPending), string(StatusOverdue), string(StatusPaid)}

// # Search & Filtering

// Filter narrows a dues listing. ChurchID or MemberID selects the listing.
type Filter struct {
	ChurchID string
	MemberID string
	Period   string
	Status   []Status
}

// periodLayout is the time layout of a billing period.
const periodLayout = "2006-01"

// # Field Identifiers

const (
	FieldChurchID = "churchId"
	FieldMemberID = "memberId"
	FieldPeriod   = "period"
	FieldStatus   = "status"
)
