// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
	"github.com/taibuivan/churchwallet/pkg/slice"
)

// # Repository Implementation

// PostgresRepository implements [Repository] against finance.dues.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed dues store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var duesColumns = schema.List(schema.FinanceDues.Columns())

/*
List returns a page of dues rows, latest period first.

Returns:
  - []*Dues: The page
  - int: Total rows matching the filter
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Dues, int, error) {
	var builder strings.Builder
	args := []any{}

	fmt.Fprintf(&builder, `SELECT %s, COUNT(*) OVER() FROM %s WHERE TRUE`, duesColumns, schema.FinanceDues.Table)

	if filter.ChurchID != "" {
		args = append(args, filter.ChurchID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceDues.ChurchID, len(args))
	}
	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceDues.MemberID, len(args))
	}
	if filter.Period != "" {
		args = append(args, filter.Period)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.FinanceDues.Period, len(args))
	}
	if len(filter.Status) > 0 {
		args = append(args, slice.Strings(filter.Status))
		fmt.Fprintf(&builder, ` AND %s = ANY($%d)`, schema.FinanceDues.Status, len(args))
	}

	args = append(args, limit, offset)
	fmt.Fprintf(&builder, ` ORDER BY %s DESC, %s ASC LIMIT $%d OFFSET $%d`,
		schema.FinanceDues.Period, schema.FinanceDues.MemberID, len(args)-1, len(args))

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_dues")
	}
	defer rows.Close()

	var (
		records = []*Dues{}
		total   int
	)
	for rows.Next() {
		dues := &Dues{}
		if err := rows.Scan(
			&dues.ID, &dues.ChurchID, &dues.MemberID, &dues.Period, &dues.Amount, &dues.DueDate,
			&dues.Status, &dues.PaidAt, &dues.TransactionID, &dues.CreatedAt, &dues.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_dues")
		}
		records = append(records, dues)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_dues")
	}

	return records, total, nil
}

/*
GeneratePending bills every active member of every live church that charges
monthly dues. The amount is the church's monthly dues at generation time.

Description: The (member, period) unique constraint makes reruns no-ops for
members already billed.
*/
func (repository *PostgresRepository) GeneratePending(context context.Context, period string, dueDate, now time.Time) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s, %[8]s, %[9]s, %[10]s)
		SELECT gen_random_uuid(), m.%[11]s, m.%[12]s, $1::text, c.%[13]s, $2::date, 'pending', $3::timestamptz, $3::timestamptz
		FROM %[14]s m
		JOIN %[15]s c ON c.%[16]s = m.%[11]s
		WHERE m.%[17]s IS NULL AND m.%[18]s = 'active'
			AND c.%[19]s IS NULL AND c.%[13]s > 0
		ON CONFLICT (%[4]s, %[5]s) DO NOTHING`,
		schema.FinanceDues.Table,
		schema.FinanceDues.ID, schema.FinanceDues.ChurchID, schema.FinanceDues.MemberID, schema.FinanceDues.Period,
		schema.FinanceDues.Amount, schema.FinanceDues.DueDate, schema.FinanceDues.Status,
		schema.FinanceDues.CreatedAt, schema.FinanceDues.UpdatedAt,
		schema.CoreMember.ChurchID, schema.CoreMember.ID, schema.CoreChurch.MonthlyDues,
		schema.CoreMember.Table, schema.CoreChurch.Table, schema.CoreChurch.ID,
		schema.CoreMember.DeletedAt, schema.CoreMember.Status, schema.CoreChurch.DeletedAt)

	tag, err := repository.db.Exec(context, query, period, dueDate, now)
	if err != nil {
		return 0, dberr.Wrap(err, "generate_pending_dues")
	}
	return tag.RowsAffected(), nil
}

// MarkOverdue rolls pending rows whose due date is before today.
func (repository *PostgresRepository) MarkOverdue(context context.Context, today time.Time) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = 'overdue', %s = NOW() WHERE %s = 'pending' AND %s < $1::date`,
		schema.FinanceDues.Table, schema.FinanceDues.Status, schema.FinanceDues.UpdatedAt,
		schema.FinanceDues.Status, schema.FinanceDues.DueDate)

	tag, err := repository.db.Exec(context, query, today)
	if err != nil {
		return 0, dberr.Wrap(err, "mark_dues_overdue")
	}
	return tag.RowsAffected(), nil
}
