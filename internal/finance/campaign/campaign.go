// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package campaign manages church campaigns.

# Core Responsibility

  - Fundraising: Campaigns with a target amount that income transactions are
    linked against. Reads report the amount raised so far.
  - Spiritual: Campaigns without money (retreats, novenas) that only carry a
    schedule and a status.
*/
package campaign

import (
	"time"

	"github.com/shopspring/decimal"
)

// # Core Entities

// Campaign is a fundraising or spiritual drive run by a church.
type Campaign struct {
	ID           string           `json:"id"`
	ChurchID     string           `json:"churchId"`
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	Kind         Kind             `json:"kind"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      *time.Time       `json:"endDate,omitempty"`
	Status       Status           `json:"status"`
	RaisedAmount decimal.Decimal  `json:"raisedAmount"` // Sum of linked income transactions
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// # Enums

// Kind separates money-raising campaigns from the rest.
type Kind string

const (
	KindFundraising Kind = "fundraising"
	KindSpiritual   Kind = "spiritual"
)

var kinds = []string{string(KindFundraising), string(KindSpiritual)}

// Status is the campaign lifecycle state.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

var statuses = []string{string(StatusDraft), string(StatusActive), string(StatusClosed)}

// # Search & Filtering

// Filter narrows the campaign listing of a church.
type Filter struct {
	Status []Status
	Kind   Kind
}

// # Limits

const maxTitleLength = 200

// # Field Identifiers

const (
	FieldChurchID     = "churchId"
	FieldCampaignID   = "campaignId"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldKind         = "kind"
	FieldTargetAmount = "targetAmount"
	FieldStartDate    = "startDate"
	FieldEndDate      = "endDate"
	FieldStatus       = "status"
)
