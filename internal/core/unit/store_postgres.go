// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
)

// PostgresRepository implements [Repository] against core.unit.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed unit store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var unitColumns = schema.List(schema.CoreUnit.Columns())

func scanUnit(row pgx.Row) (*Unit, error) {
	unit := &Unit{}
	err := row.Scan(&unit.ID, &unit.ChurchID, &unit.Name, &unit.Description, &unit.CreatedAt, &unit.UpdatedAt)
	return unit, err
}

// ListByChurch returns the live units of a church ordered by name.
func (repository *PostgresRepository) ListByChurch(context context.Context, churchID string) ([]*Unit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL ORDER BY %s ASC`,
		unitColumns, schema.CoreUnit.Table, schema.CoreUnit.ChurchID, schema.CoreUnit.DeletedAt, schema.CoreUnit.Name)

	rows, err := repository.db.Query(context, query, churchID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_units")
	}
	defer rows.Close()

	units := []*Unit{}
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_unit")
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_units")
	}
	return units, nil
}

// FindByID retrieves a live unit by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Unit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		unitColumns, schema.CoreUnit.Table, schema.CoreUnit.ID, schema.CoreUnit.DeletedAt)

	unit, err := scanUnit(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Unit", "find_unit_by_id")
	}
	return unit, nil
}

/*
Create inserts a unit under a live church.

Description: The insert is guarded by an existence check on the church so a
soft-deleted church cannot gain new units.

Returns:
  - error: NotFound("Church"), Conflict on a duplicate name within the church
*/
func (repository *PostgresRepository) Create(context context.Context, unit *Unit) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::timestamptz, $6::timestamptz
		WHERE EXISTS (SELECT 1 FROM %s WHERE %s = $2 AND %s IS NULL)`,
		schema.CoreUnit.Table, unitColumns,
		schema.CoreChurch.Table, schema.CoreChurch.ID, schema.CoreChurch.DeletedAt)

	tag, err := repository.db.Exec(context, query,
		unit.ID, unit.ChurchID, unit.Name, unit.Description, unit.CreatedAt, unit.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_unit")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Church", "create_unit")
	}
	return nil
}

// Update rewrites the name and description of a live unit.
func (repository *PostgresRepository) Update(context context.Context, unit *Unit) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 AND %s IS NULL RETURNING %s`,
		schema.CoreUnit.Table, schema.CoreUnit.Name, schema.CoreUnit.Description, schema.CoreUnit.UpdatedAt,
		schema.CoreUnit.ID, schema.CoreUnit.DeletedAt, schema.CoreUnit.UpdatedAt)

	err := repository.db.QueryRow(context, query, unit.ID, unit.Name, unit.Description).Scan(&unit.UpdatedAt)
	return dberr.NotFound(err, "Unit", "update_unit")
}

// SoftDelete stamps deletedat on a live unit of churchID.
func (repository *PostgresRepository) SoftDelete(context context.Context, churchID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CoreUnit.Table, schema.CoreUnit.DeletedAt, schema.CoreUnit.ID, schema.CoreUnit.ChurchID, schema.CoreUnit.DeletedAt)

	tag, err := repository.db.Exec(context, query, id, churchID)
	if err != nil {
		return dberr.Wrap(err, "delete_unit")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Unit", "delete_unit")
	}
	return nil
}
