// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreKudumbakutayimaTable represents the 'core.kudumbakutayima' table
type CoreKudumbakutayimaTable struct {
	Table       string
	ID          string
	ChurchID    string
	UnitID      string
	Name        string
	PatronSaint string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreKudumbakutayima is the schema definition for core.kudumbakutayima
var CoreKudumbakutayima = CoreKudumbakutayimaTable{
	Table:       "core.kudumbakutayima",
	ID:          "id",
	ChurchID:    "churchid",
	UnitID:      "unitid",
	Name:        "name",
	PatronSaint: "patronsaint",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CoreKudumbakutayimaTable) Columns() []string {
	return []string{t.ID, t.ChurchID, t.UnitID, t.Name, t.PatronSaint, t.CreatedAt, t.UpdatedAt}
}
