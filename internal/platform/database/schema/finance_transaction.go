// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// FinanceTransactionTable represents the 'finance.transaction' table
type FinanceTransactionTable struct {
	Table       string
	ID          string
	ChurchID    string
	UnitID      string
	MemberID    string
	CampaignID  string
	DuesID      string
	Type        string
	Category    string
	Amount      string
	Description string
	Reference   string
	OccurredOn  string
	RecordedBy  string
	CreatedAt   string
}

// FinanceTransaction is the schema definition for finance.transaction
var FinanceTransaction = FinanceTransactionTable{
	Table:       "finance.transaction",
	ID:          "id",
	ChurchID:    "churchid",
	UnitID:      "unitid",
	MemberID:    "memberid",
	CampaignID:  "campaignid",
	DuesID:      "duesid",
	Type:        "type",
	Category:    "category",
	Amount:      "amount",
	Description: "description",
	Reference:   "reference",
	OccurredOn:  "occurredon",
	RecordedBy:  "recordedby",
	CreatedAt:   "createdat",
}

func (t FinanceTransactionTable) Columns() []string {
	return []string{
		t.ID, t.ChurchID, t.UnitID, t.MemberID, t.CampaignID, t.DuesID, t.Type,
		t.Category, t.Amount, t.Description, t.Reference, t.OccurredOn,
		t.RecordedBy, t.CreatedAt,
	}
}
