// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
	"github.com/taibuivan/churchwallet/pkg/slice"
)

// # Repository Implementation

// PostgresRepository implements [Repository] against core.member.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed member register.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var memberColumns = schema.List(schema.CoreMember.Columns())

func memberTargets(member *Member, extra ...any) []any {
	return append([]any{
		&member.ID, &member.ChurchID, &member.UnitID, &member.KudumbakutayimaID,
		&member.FullName, &member.HouseName, &member.Gender, &member.DateOfBirth,
		&member.Phone, &member.Email, &member.Address, &member.Status, &member.JoinedOn,
		&member.CreatedAt, &member.UpdatedAt,
	}, extra...)
}

/*
List returns a page of live members ordered by name.

Parameters:
  - context: context.Context
  - filter: Filter (register scope, free text, statuses)
  - limit, offset: int

Returns:
  - []*Member: The page
  - int: Total rows matching the filter
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {
	var builder strings.Builder
	args := []any{}

	fmt.Fprintf(&builder, `SELECT %s, COUNT(*) OVER() FROM %s WHERE %s IS NULL`,
		memberColumns, schema.CoreMember.Table, schema.CoreMember.DeletedAt)

	if filter.ChurchID != "" {
		args = append(args, filter.ChurchID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.CoreMember.ChurchID, len(args))
	}
	if filter.UnitID != "" {
		args = append(args, filter.UnitID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.CoreMember.UnitID, len(args))
	}
	if filter.KudumbakutayimaID != "" {
		args = append(args, filter.KudumbakutayimaID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.CoreMember.KudumbakutayimaID, len(args))
	}
	if len(filter.Status) > 0 {
		args = append(args, slice.Strings(filter.Status))
		fmt.Fprintf(&builder, ` AND %s = ANY($%d)`, schema.CoreMember.Status, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		fmt.Fprintf(&builder, ` AND (%s ILIKE %s OR %s ILIKE %s OR %s ILIKE %s)`,
			schema.CoreMember.FullName, placeholder,
			schema.CoreMember.HouseName, placeholder,
			schema.CoreMember.Phone, placeholder)
	}

	args = append(args, limit, offset)
	fmt.Fprintf(&builder, ` ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d`,
		schema.CoreMember.FullName, schema.CoreMember.ID, len(args)-1, len(args))

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_members")
	}
	defer rows.Close()

	var (
		members = []*Member{}
		total   int
	)
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(memberTargets(member, &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_member")
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_members")
	}

	return members, total, nil
}

// FindByID retrieves a live member by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		memberColumns, schema.CoreMember.Table, schema.CoreMember.ID, schema.CoreMember.DeletedAt)

	member := &Member{}
	if err := repository.db.QueryRow(context, query, id).Scan(memberTargets(member)...); err != nil {
		return nil, dberr.NotFound(err, "Member", "find_member_by_id")
	}
	return member, nil
}

// Create inserts a member. The placement is checked beforehand by the service.
func (repository *PostgresRepository) Create(context context.Context, member *Member) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		schema.CoreMember.Table, memberColumns)

	_, err := repository.db.Exec(context, query,
		member.ID, member.ChurchID, member.UnitID, member.KudumbakutayimaID,
		member.FullName, member.HouseName, member.Gender, member.DateOfBirth,
		member.Phone, member.Email, member.Address, member.Status, member.JoinedOn,
		member.CreatedAt, member.UpdatedAt,
	)
	return dberr.Wrap(err, "create_member")
}

// Update rewrites the mutable fields of a live member of its church.
func (repository *PostgresRepository) Update(context context.Context, member *Member) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CoreMember.Table,
		schema.CoreMember.UnitID, schema.CoreMember.KudumbakutayimaID, schema.CoreMember.FullName,
		schema.CoreMember.HouseName, schema.CoreMember.Gender, schema.CoreMember.DateOfBirth,
		schema.CoreMember.Phone, schema.CoreMember.Email, schema.CoreMember.Address,
		schema.CoreMember.Status, schema.CoreMember.JoinedOn, schema.CoreMember.UpdatedAt,
		schema.CoreMember.ID, schema.CoreMember.ChurchID, schema.CoreMember.DeletedAt,
		schema.CoreMember.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		member.ID, member.ChurchID,
		member.UnitID, member.KudumbakutayimaID, member.FullName,
		member.HouseName, member.Gender, member.DateOfBirth,
		member.Phone, member.Email, member.Address,
		member.Status, member.JoinedOn,
	).Scan(&member.UpdatedAt)
	return dberr.NotFound(err, "Member", "update_member")
}

// SoftDelete stamps deletedat on a live member of churchID.
func (repository *PostgresRepository) SoftDelete(context context.Context, churchID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CoreMember.Table, schema.CoreMember.DeletedAt,
		schema.CoreMember.ID, schema.CoreMember.ChurchID, schema.CoreMember.DeletedAt)

	tag, err := repository.db.Exec(context, query, id, churchID)
	if err != nil {
		return dberr.Wrap(err, "delete_member")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Member", "delete_member")
	}
	return nil
}

// PlacementConsistent checks the church, unit and kudumbakutayima chain in one round trip.
func (repository *PostgresRepository) PlacementConsistent(context context.Context, churchID string, unitID, kudumbakutayimaID *string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %[1]s WHERE %[2]s = $1 AND %[3]s IS NULL)
			AND ($2::uuid IS NULL OR EXISTS (SELECT 1 FROM %[4]s WHERE %[5]s = $2 AND %[6]s = $1 AND %[7]s IS NULL))
			AND ($3::uuid IS NULL OR EXISTS (SELECT 1 FROM %[8]s WHERE %[9]s = $3 AND %[10]s = $2 AND %[11]s IS NULL))`,
		schema.CoreChurch.Table, schema.CoreChurch.ID, schema.CoreChurch.DeletedAt,
		schema.CoreUnit.Table, schema.CoreUnit.ID, schema.CoreUnit.ChurchID, schema.CoreUnit.DeletedAt,
		schema.CoreKudumbakutayima.Table, schema.CoreKudumbakutayima.ID, schema.CoreKudumbakutayima.UnitID, schema.CoreKudumbakutayima.DeletedAt)

	var consistent bool
	if err := repository.db.QueryRow(context, query, churchID, unitID, kudumbakutayimaID).Scan(&consistent); err != nil {
		return false, dberr.Wrap(err, "check_member_placement")
	}
	return consistent, nil
}
