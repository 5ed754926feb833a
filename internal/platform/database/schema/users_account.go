// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table             string
	ID                string
	Email             string
	Phone             string
	Password          string
	FullName          string
	Role              string
	ChurchID          string
	UnitID            string
	KudumbakutayimaID string
	MemberID          string
	IsActive          string
	LastLoginAt       string
	CreatedAt         string
	UpdatedAt         string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:             "users.account",
	ID:                "id",
	Email:             "email",
	Phone:             "phone",
	Password:          "passwordhash",
	FullName:          "fullname",
	Role:              "role",
	ChurchID:          "churchid",
	UnitID:            "unitid",
	KudumbakutayimaID: "kudumbakutayimaid",
	MemberID:          "memberid",
	IsActive:          "isactive",
	LastLoginAt:       "lastloginat",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Phone, t.Password, t.FullName, t.Role, t.ChurchID,
		t.UnitID, t.KudumbakutayimaID, t.MemberID, t.IsActive, t.LastLoginAt,
		t.CreatedAt, t.UpdatedAt,
	}
}
