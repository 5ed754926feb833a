// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreChurchTable represents the 'core.church' table
type CoreChurchTable struct {
	Table       string
	ID          string
	Name        string
	Code        string
	Address     string
	Diocese     string
	Phone       string
	Email       string
	MonthlyDues string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreChurch is the schema definition for core.church
var CoreChurch = CoreChurchTable{
	Table:       "core.church",
	ID:          "id",
	Name:        "name",
	Code:        "code",
	Address:     "address",
	Diocese:     "diocese",
	Phone:       "phone",
	Email:       "email",
	MonthlyDues: "monthlydues",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns the columns hydrated into a church entity
func (t CoreChurchTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Code, t.Address, t.Diocese, t.Phone, t.Email,
		t.MonthlyDues, t.CreatedAt, t.UpdatedAt,
	}
}
