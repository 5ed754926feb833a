// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package member manages the parishioner register.

# Core Responsibility

  - Register: Members belong to a church and may be placed in one of its units
    and, within that unit, in a kudumbakutayima.
  - Listings: The register is browsable per church, per unit and per
    kudumbakutayima, each behind the matching administrator's scope.
  - Lifecycle: Status tracks active, inactive, moved and deceased members.
    Only active members are billed monthly dues.
*/
package member

import "time"

// # Core Entities

// Member is a single parishioner.
type Member struct {
	ID                string     `json:"id"`
	ChurchID          string     `json:"churchId"`
	UnitID            *string    `json:"unitId,omitempty"`
	KudumbakutayimaID *string    `json:"kudumbakutayimaId,omitempty"`
	FullName          string     `json:"fullName"`
	HouseName         *string    `json:"houseName,omitempty"`
	Gender            *Gender    `json:"gender,omitempty"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Address           *string    `json:"address,omitempty"`
	Status            Status     `json:"status"`
	JoinedOn          *time.Time `json:"joinedOn,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// # Enums

// Status is the membership state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusMoved    Status = "moved"
	StatusDeceased Status = "deceased"
)

var statuses = []string{
	string(StatusActive), string(StatusInactive), string(StatusMoved), string(StatusDeceased),
}

// Gender is the recorded gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genders = []string{string(GenderMale), string(GenderFemale)}

// # Search & Filtering

// Filter narrows a member listing. ChurchID, UnitID or KudumbakutayimaID
// selects the register being browsed.
type Filter struct {
	ChurchID          string
	UnitID            string
	KudumbakutayimaID string
	Query             string   // Matches full name, house name or phone
	Status            []Status // Any of
}

// # Limits

const (
	maxNameLength    = 200
	maxAddressLength = 500
)

// # Field Identifiers

const (
	FieldChurchID          = "churchId"
	FieldUnitID            = "unitId"
	FieldKudumbakutayimaID = "kudumbakutayimaId"
	FieldMemberID          = "memberId"
	FieldFullName          = "fullName"
	FieldHouseName         = "houseName"
	FieldGender            = "gender"
	FieldDateOfBirth       = "dateOfBirth"
	FieldPhone             = "phone"
	FieldEmail             = "email"
	FieldAddress           = "address"
	FieldStatus            = "status"
	FieldJoinedOn          = "joinedOn"
)
