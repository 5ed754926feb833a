// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kudumbakutayima

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
)

// PostgresRepository implements [Repository] against core.kudumbakutayima.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed kudumbakutayima store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var kudumbakutayimaColumns = schema.List(schema.CoreKudumbakutayima.Columns())

func scanKudumbakutayima(row pgx.Row) (*Kudumbakutayima, error) {
	k := &Kudumbakutayima{}
	err := row.Scan(&k.ID, &k.ChurchID, &k.UnitID, &k.Name, &k.PatronSaint, &k.CreatedAt, &k.UpdatedAt)
	return k, err
}

// ListByUnit returns the live kudumbakutayimas of a unit ordered by name.
func (repository *PostgresRepository) ListByUnit(context context.Context, unitID string) ([]*Kudumbakutayima, error) {
	table := schema.CoreKudumbakutayima
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL ORDER BY %s ASC`,
		kudumbakutayimaColumns, table.Table, table.UnitID, table.DeletedAt, table.Name)

	rows, err := repository.db.Query(context, query, unitID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_kudumbakutayimas")
	}
	defer rows.Close()

	result := []*Kudumbakutayima{}
	for rows.Next() {
		k, err := scanKudumbakutayima(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_kudumbakutayima")
		}
		result = append(result, k)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_kudumbakutayimas")
	}
	return result, nil
}

// FindByID retrieves a live kudumbakutayima by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Kudumbakutayima, error) {
	table := schema.CoreKudumbakutayima
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		kudumbakutayimaColumns, table.Table, table.ID, table.DeletedAt)

	k, err := scanKudumbakutayima(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Kudumbakutayima", "find_kudumbakutayima_by_id")
	}
	return k, nil
}

// Create inserts a kudumbakutayima, copying the church from its live unit.
func (repository *PostgresRepository) Create(context context.Context, k *Kudumbakutayima) error {
	table := schema.CoreKudumbakutayima
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		SELECT $1::uuid, u.%s, u.%s, $3::text, $4::text, $5::timestamptz, $5::timestamptz
		FROM %s u
		WHERE u.%s = $2 AND u.%s IS NULL
		RETURNING %s`,
		table.Table, kudumbakutayimaColumns,
		schema.CoreUnit.ChurchID, schema.CoreUnit.ID,
		schema.CoreUnit.Table,
		schema.CoreUnit.ID, schema.CoreUnit.DeletedAt,
		table.ChurchID)

	err := repository.db.QueryRow(context, query, k.ID, k.UnitID, k.Name, k.PatronSaint, k.CreatedAt).Scan(&k.ChurchID)
	return dberr.NotFound(err, "Unit", "create_kudumbakutayima")
}

// Update rewrites the name and patron saint of a live kudumbakutayima.
func (repository *PostgresRepository) Update(context context.Context, k *Kudumbakutayima) error {
	table := schema.CoreKudumbakutayima
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 AND %s IS NULL RETURNING %s`,
		table.Table, table.Name, table.PatronSaint, table.UpdatedAt, table.ID, table.DeletedAt, table.UpdatedAt)

	err := repository.db.QueryRow(context, query, k.ID, k.Name, k.PatronSaint).Scan(&k.UpdatedAt)
	return dberr.NotFound(err, "Kudumbakutayima", "update_kudumbakutayima")
}
