// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// FinanceCampaignTable represents the 'finance.campaign' table
type FinanceCampaignTable struct {
	Table        string
	ID           string
	ChurchID     string
	Title        string
	Description  string
	Kind         string
	TargetAmount string
	StartDate    string
	EndDate      string
	Status       string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// FinanceCampaign is the schema definition for finance.campaign
var FinanceCampaign = FinanceCampaignTable{
	Table:        "finance.campaign",
	ID:           "id",
	ChurchID:     "churchid",
	Title:        "title",
	Description:  "description",
	Kind:         "kind",
	TargetAmount: "targetamount",
	StartDate:    "startdate",
	EndDate:      "enddate",
	Status:       "status",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}

func (t FinanceCampaignTable) Columns() []string {
	return []string{
		t.ID, t.ChurchID, t.Title, t.Description, t.Kind, t.TargetAmount,
		t.StartDate, t.EndDate, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
