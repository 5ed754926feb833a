// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package unit manages the wards a church is divided into.

Each unit belongs to exactly one church and groups several kudumbakutayimas.
Unit administrators see only their own unit.
*/
package unit

import "time"

// # Core Entities

// Unit is a ward of a church.
type Unit struct {
	ID          string    `json:"id"`
	ChurchID    string    `json:"churchId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const maxNameLength = 120

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldChurchID    = "churchId"
	FieldUnitID      = "unitId"
)
