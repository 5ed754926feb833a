// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
	"github.com/taibuivan/churchwallet/internal/platform/postgres"
)

// # Repository Implementation

// PostgresRepository implements [Repository] against finance.transaction.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed ledger.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var transactionColumns = schema.List(schema.FinanceTransaction.Columns())

func transactionTargets(transaction *Transaction, extra ...any) []any {
	return append([]any{
		&transaction.ID, &transaction.ChurchID, &transaction.UnitID, &transaction.MemberID,
		&transaction.CampaignID, &transaction.DuesID, &transaction.Type, &transaction.Category,
		&transaction.Amount, &transaction.Description, &transaction.Reference,
		&transaction.OccurredOn, &transaction.RecordedBy, &transaction.CreatedAt,
	}, extra...)
}

// dateRange appends the inclusive occurredon bounds to a WHERE clause.
func dateRange(builder *strings.Builder, args []any, from, to *time.Time) []any {
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(builder, ` AND %s >= $%d::date`, schema.FinanceTransaction.OccurredOn, len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(builder, ` AND %s <= $%d::date`, schema.FinanceTransaction.OccurredOn, len(args))
	}
	return args
}

/*
List returns a page of ledger entries, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (ledger scope, type, category, date range)
  - limit, offset: int

Returns:
  - []*Transaction: The page
  - int: Total rows matching the filter
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Transaction, int, error) {
	var builder strings.Builder
	args := []any{}

	fmt.Fprintf(&builder, `SELECT %s, COUNT(*) OVER() FROM %s WHERE TRUE`, transactionColumns, schema.FinanceTransaction.Table)

	if filter.ChurchID != "" {
		args = append(args, filter.ChurchID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceTransaction.ChurchID, len(args))
	}
	if filter.UnitID != "" {
		args = append(args, filter.UnitID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceTransaction.UnitID, len(args))
	}
	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceTransaction.MemberID, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceTransaction.Type, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceTransaction.Category, len(args))
	}
	args = dateRange(&builder, args, filter.From, filter.To)

	args = append(args, limit, offset)
	fmt.Fprintf(&builder, ` ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d`,
		schema.FinanceTransaction.OccurredOn, schema.FinanceTransaction.CreatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_transactions")
	}
	defer rows.Close()

	var (
		transactions = []*Transaction{}
		total        int
	)
	for rows.Next() {
		transaction := &Transaction{}
		if err := rows.Scan(transactionTargets(transaction, &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_transaction")
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_transactions")
	}

	return transactions, total, nil
}

// Summary totals income and expense of a church over an inclusive date range.
func (repository *PostgresRepository) Summary(context context.Context, churchID string, from, to *time.Time) (*Summary, error) {
	var builder strings.Builder
	args := []any{churchID}

	fmt.Fprintf(&builder, `
		SELECT
			COALESCE(SUM(%[1]s) FILTER (WHERE %[2]s = 'income'), 0),
			COALESCE(SUM(%[1]s) FILTER (WHERE %[2]s = 'expense'), 0)
		FROM %[3]s WHERE %[4]s = $1`,
		schema.FinanceTransaction.Amount, schema.FinanceTransaction.Type,
		schema.FinanceTransaction.Table, schema.FinanceTransaction.ChurchID)
	args = dateRange(&builder, args, from, to)

	summary := &Summary{From: from, To: to}
	if err := repository.db.QueryRow(context, builder.String(), args...).Scan(&summary.Income, &summary.Expense); err != nil {
		return nil, dberr.Wrap(err, "summarize_transactions")
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary, nil
}

// ReferencesConsistent checks every optional reference against the church in one round trip.
func (repository *PostgresRepository) ReferencesConsistent(context context.Context, churchID string, unitID, memberID, campaignID *string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT
			($2::uuid IS NULL OR EXISTS (SELECT 1 FROM %[1]s WHERE %[2]s = $2 AND %[3]s = $1 AND %[4]s IS NULL))
			AND ($3::uuid IS NULL OR EXISTS (SELECT 1 FROM %[5]s WHERE %[6]s = $3 AND %[7]s = $1 AND %[8]s IS NULL))
			AND ($4::uuid IS NULL OR EXISTS (SELECT 1 FROM %[9]s WHERE %[10]s = $4 AND %[11]s = $1 AND %[12]s IS NULL))`,
		schema.CoreUnit.Table, schema.CoreUnit.ID, schema.CoreUnit.ChurchID, schema.CoreUnit.DeletedAt,
		schema.CoreMember.Table, schema.CoreMember.ID, schema.CoreMember.ChurchID, schema.CoreMember.DeletedAt,
		schema.FinanceCampaign.Table, schema.FinanceCampaign.ID, schema.FinanceCampaign.ChurchID, schema.FinanceCampaign.DeletedAt)

	var consistent bool
	if err := repository.db.QueryRow(context, query, churchID, unitID, memberID, campaignID).Scan(&consistent); err != nil {
		return false, dberr.Wrap(err, "check_transaction_references")
	}
	return consistent, nil
}

/*
Create appends a ledger entry.

Description: For a dues payment the dues row is locked first. It must belong
to the church, be unpaid, match the member when one is given and match the
amount. The entry inherits the dues member, and the row is marked paid before
commit.

Returns:
  - error: NotFound("Dues"), Conflict (already paid), Unprocessable (member or
    amount mismatch)
*/
func (repository *PostgresRepository) Create(context context.Context, transaction *Transaction) error {
	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		if transaction.DuesID != nil {
			if err := lockDues(context, tx, transaction); err != nil {
				return err
			}
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s)
			VALUES ($1, $2, COALESCE($3::uuid, (SELECT %s FROM %s WHERE %s = $4::uuid)), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING %s`,
			schema.FinanceTransaction.Table, transactionColumns,
			schema.CoreMember.UnitID, schema.CoreMember.Table, schema.CoreMember.ID,
			schema.FinanceTransaction.UnitID)

		err := tx.QueryRow(context, query,
			transaction.ID, transaction.ChurchID, transaction.UnitID, transaction.MemberID,
			transaction.CampaignID, transaction.DuesID, transaction.Type, transaction.Category,
			transaction.Amount, transaction.Description, transaction.Reference,
			transaction.OccurredOn, transaction.RecordedBy, transaction.CreatedAt,
		).Scan(&transaction.UnitID)
		if err != nil {
			return dberr.Wrap(err, "create_transaction")
		}

		if transaction.DuesID == nil {
			return nil
		}

		settle := fmt.Sprintf(`UPDATE %s SET %s = 'paid', %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
			schema.FinanceDues.Table, schema.FinanceDues.Status, schema.FinanceDues.PaidAt,
			schema.FinanceDues.TransactionID, schema.FinanceDues.UpdatedAt, schema.FinanceDues.ID)

		_, err = tx.Exec(context, settle, *transaction.DuesID, transaction.CreatedAt, transaction.ID)
		return dberr.Wrap(err, "settle_dues")
	})
}

func lockDues(context context.Context, tx pgx.Tx, transaction *Transaction) error {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2 FOR UPDATE`,
		schema.FinanceDues.MemberID, schema.FinanceDues.Amount, schema.FinanceDues.Status,
		schema.FinanceDues.Table, schema.FinanceDues.ID, schema.FinanceDues.ChurchID)

	var (
		memberID string
		amount   decimal.Decimal
		status   string
	)
	if err := tx.QueryRow(context, query, *transaction.DuesID, transaction.ChurchID).Scan(&memberID, &amount, &status); err != nil {
		return dberr.NotFound(err, "Dues", "lock_dues")
	}

	switch {
	case status == "paid":
		return apperr.Conflict("Dues already paid")
	case transaction.MemberID != nil && *transaction.MemberID != memberID:
		return apperr.Unprocessable("Dues belong to another member")
	case !amount.Equal(transaction.Amount):
		return apperr.Unprocessable("Payment must equal the dues amount")
	}

	transaction.MemberID = &memberID
	return nil
}
