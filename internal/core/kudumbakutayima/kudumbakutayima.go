// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package kudumbakutayima manages family prayer units, the smallest grouping of
members below a unit.

A kudumbakutayima inherits its church from its unit; the church is never
supplied by the client.
*/
package kudumbakutayima

import "time"

// Kudumbakutayima is a family prayer unit within a unit.
type Kudumbakutayima struct {
	ID          string    `json:"id"`
	ChurchID    string    `json:"churchId"`
	UnitID      string    `json:"unitId"`
	Name        string    `json:"name"`
	PatronSaint *string   `json:"patronSaint,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const maxNameLength = 120

// # Field Identifiers

const (
	FieldName              = "name"
	FieldPatronSaint       = "patronSaint"
	FieldUnitID            = "unitId"
	FieldKudumbakutayimaID = "kudumbakutayimaId"
)
