// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreMemberTable represents the 'core.member' table
type CoreMemberTable struct {
	Table             string
	ID                string
	ChurchID          string
	UnitID            string
	KudumbakutayimaID string
	FullName          string
	HouseName         string
	Gender            string
	DateOfBirth       string
	Phone             string
	Email             string
	Address           string
	Status            string
	JoinedOn          string
	CreatedAt         string
	UpdatedAt         string
	DeletedAt         string
}

// CoreMember is the schema definition for core.member
var CoreMember = CoreMemberTable{
	Table:             "core.member",
	ID:                "id",
	ChurchID:          "churchid",
	UnitID:            "unitid",
	KudumbakutayimaID: "kudumbakutayimaid",
	FullName:          "fullname",
	HouseName:         "housename",
	Gender:            "gender",
	DateOfBirth:       "dateofbirth",
	Phone:             "phone",
	Email:             "email",
	Address:           "address",
	Status:            "status",
	JoinedOn:          "joinedon",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
	DeletedAt:         "deletedat",
}

// Columns returns the columns hydrated into a member entity
func (t CoreMemberTable) Columns() []string {
	return []string{
		t.ID, t.ChurchID, t.UnitID, t.KudumbakutayimaID, t.FullName, t.HouseName,
		t.Gender, t.DateOfBirth, t.Phone, t.Email, t.Address, t.Status, t.JoinedOn,
		t.CreatedAt, t.UpdatedAt,
	}
}
