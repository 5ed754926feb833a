// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreUnitTable represents the 'core.unit' table
type CoreUnitTable struct {
	Table       string
	ID          string
	ChurchID    string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreUnit is the schema definition for core.unit
var CoreUnit = CoreUnitTable{
	Table:       "core.unit",
	ID:          "id",
	ChurchID:    "churchid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CoreUnitTable) Columns() []string {
	return []string{t.ID, t.ChurchID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}
