// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
	"github.com/taibuivan/churchwallet/pkg/slice"
)

// # Repository Implementation

// PostgresRepository implements [Repository] against finance.campaign.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed campaign store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var campaignColumns = schema.List(schema.FinanceCampaign.Columns())

// raisedColumn sums the income linked to the outer row aliased "c".
var raisedColumn = fmt.Sprintf(`COALESCE((SELECT SUM(t.%s) FROM %s t WHERE t.%s = c.%s AND t.%s = 'income'), 0)`,
	schema.FinanceTransaction.Amount, schema.FinanceTransaction.Table,
	schema.FinanceTransaction.CampaignID, schema.FinanceCampaign.ID, schema.FinanceTransaction.Type)

func campaignTargets(campaign *Campaign, extra ...any) []any {
	return append([]any{
		&campaign.ID, &campaign.ChurchID, &campaign.Title, &campaign.Description, &campaign.Kind,
		&campaign.TargetAmount, &campaign.StartDate, &campaign.EndDate, &campaign.Status,
		&campaign.CreatedAt, &campaign.UpdatedAt, &campaign.RaisedAmount,
	}, extra...)
}

/*
List returns a page of live campaigns of a church, most recent start first.

Returns:
  - []*Campaign: The page, each with its raised amount
  - int: Total rows matching the filter
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, churchID string, filter Filter, limit, offset int) ([]*Campaign, int, error) {
	var builder strings.Builder
	args := []any{churchID}

	fmt.Fprintf(&builder, `SELECT %s, %s, COUNT(*) OVER() FROM %s c WHERE c.%s = $1 AND c.%s IS NULL`,
		campaignColumns, raisedColumn, schema.FinanceCampaign.Table,
		schema.FinanceCampaign.ChurchID, schema.FinanceCampaign.DeletedAt)

	if len(filter.Status) > 0 {
		args = append(args, slice.Strings(filter.Status))
		fmt.Fprintf(&builder, ` AND c.%s = ANY($%d)`, schema.FinanceCampaign.Status, len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		fmt.Fprintf(&builder, ` AND c.%s = $%d`, schema.FinanceCampaign.Kind, len(args))
	}

	args = append(args, limit, offset)
	fmt.Fprintf(&builder, ` ORDER BY c.%s DESC, c.%s ASC LIMIT $%d OFFSET $%d`,
		schema.FinanceCampaign.StartDate, schema.FinanceCampaign.ID, len(args)-1, len(args))

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_campaigns")
	}
	defer rows.Close()

	var (
		campaigns = []*Campaign{}
		total     int
	)
	for rows.Next() {
		campaign := &Campaign{}
		if err := rows.Scan(campaignTargets(campaign, &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_campaign")
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_campaigns")
	}

	return campaigns, total, nil
}

// FindByID retrieves a live campaign of churchID with its raised amount.
func (repository *PostgresRepository) FindByID(context context.Context, churchID, id string) (*Campaign, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s c WHERE c.%s = $1 AND c.%s = $2 AND c.%s IS NULL`,
		campaignColumns, raisedColumn, schema.FinanceCampaign.Table,
		schema.FinanceCampaign.ID, schema.FinanceCampaign.ChurchID, schema.FinanceCampaign.DeletedAt)

	campaign := &Campaign{}
	if err := repository.db.QueryRow(context, query, id, churchID).Scan(campaignTargets(campaign)...); err != nil {
		return nil, dberr.NotFound(err, "Campaign", "find_campaign_by_id")
	}
	return campaign, nil
}

// Create inserts a campaign under a live church.
func (repository *PostgresRepository) Create(context context.Context, campaign *Campaign) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::text, $6::numeric, $7::date, $8::date, $9::text, $10::timestamptz, $11::timestamptz
		WHERE EXISTS (SELECT 1 FROM %s WHERE %s = $2 AND %s IS NULL)`,
		schema.FinanceCampaign.Table, campaignColumns,
		schema.CoreChurch.Table, schema.CoreChurch.ID, schema.CoreChurch.DeletedAt)

	tag, err := repository.db.Exec(context, query,
		campaign.ID, campaign.ChurchID, campaign.Title, campaign.Description, campaign.Kind,
		campaign.TargetAmount, campaign.StartDate, campaign.EndDate, campaign.Status,
		campaign.CreatedAt, campaign.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_campaign")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Church", "create_campaign")
	}
	return nil
}

// Update rewrites the mutable fields of a live campaign of its church.
func (repository *PostgresRepository) Update(context context.Context, campaign *Campaign) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.FinanceCampaign.Table,
		schema.FinanceCampaign.Title, schema.FinanceCampaign.Description, schema.FinanceCampaign.Kind,
		schema.FinanceCampaign.TargetAmount, schema.FinanceCampaign.StartDate, schema.FinanceCampaign.EndDate,
		schema.FinanceCampaign.Status, schema.FinanceCampaign.UpdatedAt,
		schema.FinanceCampaign.ID, schema.FinanceCampaign.ChurchID, schema.FinanceCampaign.DeletedAt,
		schema.FinanceCampaign.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		campaign.ID, campaign.ChurchID,
		campaign.Title, campaign.Description, campaign.Kind, campaign.TargetAmount,
		campaign.StartDate, campaign.EndDate, campaign.Status,
	).Scan(&campaign.UpdatedAt)
	return dberr.NotFound(err, "Campaign", "update_campaign")
}

// SoftDelete stamps deletedat on a live campaign of churchID. Linked
// transactions keep their reference.
func (repository *PostgresRepository) SoftDelete(context context.Context, churchID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.FinanceCampaign.Table, schema.FinanceCampaign.DeletedAt,
		schema.FinanceCampaign.ID, schema.FinanceCampaign.ChurchID, schema.FinanceCampaign.DeletedAt)

	tag, err := repository.db.Exec(context, query, id, churchID)
	if err != nil {
		return dberr.Wrap(err, "delete_campaign")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Campaign", "delete_campaign")
	}
	return nil
}
