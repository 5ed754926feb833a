// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// FinanceDuesTable represents the 'finance.dues' table
type FinanceDuesTable struct {
	Table         string
	ID            string
	ChurchID      string
	MemberID      string
	Period        string
	Amount        string
	DueDate       string
	Status        string
	PaidAt        string
	TransactionID string
	CreatedAt     string
	UpdatedAt     string
}

// FinanceDues is the schema definition for finance.dues
var FinanceDues = FinanceDuesTable{
	Table:         "finance.dues",
	ID:            "id",
	ChurchID:      "churchid",
	MemberID:      "memberid",
	Period:        "period",
	Amount:        "amount",
	DueDate:       "duedate",
	Status:        "status",
	PaidAt:        "paidat",
	TransactionID: "transactionid",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t FinanceDuesTable) Columns() []string {
	return []string{
		t.ID, t.ChurchID, t.MemberID, t.Period, t.Amount, t.DueDate, t.Status,
		t.PaidAt, t.TransactionID, t.CreatedAt, t.UpdatedAt,
	}
}
