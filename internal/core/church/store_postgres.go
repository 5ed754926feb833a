// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package church

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
)

// PostgresRepository implements [Repository] against core.church.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed church store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var churchColumns = schema.List(schema.CoreChurch.Columns())

func scanChurch(row pgx.Row, extra ...any) (*Church, error) {
	church := &Church{}
	targets := append([]any{
		&church.ID, &church.Name, &church.Code, &church.Address, &church.Diocese,
		&church.Phone, &church.Email, &church.MonthlyDues, &church.CreatedAt, &church.UpdatedAt,
	}, extra...)
	return church, row.Scan(targets...)
}

// # Retrieval

/*
List returns a page of live churches ordered by name.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Church: The page
  - int: Total matching rows
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Church, int, error) {
	var builder strings.Builder
	args := []any{}

	fmt.Fprintf(&builder, `SELECT %s, COUNT(*) OVER() FROM %s WHERE %s IS NULL`,
		churchColumns, schema.CoreChurch.Table, schema.CoreChurch.DeletedAt)

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		fmt.Fprintf(&builder, ` AND (%s ILIKE $1 OR %s ILIKE $1 OR %s ILIKE $1)`,
			schema.CoreChurch.Name, schema.CoreChurch.Code, schema.CoreChurch.Diocese)
	}

	args = append(args, limit, offset)
	fmt.Fprintf(&builder, ` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, schema.CoreChurch.Name, len(args)-1, len(args))

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_churches")
	}
	defer rows.Close()

	var (
		churches []*Church
		total    int
	)
	for rows.Next() {
		church, err := scanChurch(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_church")
		}
		churches = append(churches, church)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_churches")
	}

	return churches, total, nil
}

// FindByID retrieves a live church by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Church, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		churchColumns, schema.CoreChurch.Table, schema.CoreChurch.ID, schema.CoreChurch.DeletedAt)

	church, err := scanChurch(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Church", "find_church_by_id")
	}
	return church, nil
}

// # Mutation

// Create inserts a church. A live church with the same code is a Conflict.
func (repository *PostgresRepository) Create(context context.Context, church *Church) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.CoreChurch.Table, churchColumns)

	_, err := repository.db.Exec(context, query,
		church.ID, church.Name, church.Code, church.Address, church.Diocese,
		church.Phone, church.Email, church.MonthlyDues, church.CreatedAt, church.UpdatedAt,
	)
	return dberr.Wrap(err, "create_church")
}

// Update rewrites the mutable fields of a live church.
func (repository *PostgresRepository) Update(context context.Context, church *Church) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		schema.CoreChurch.Table,
		schema.CoreChurch.Name, schema.CoreChurch.Code, schema.CoreChurch.Address, schema.CoreChurch.Diocese,
		schema.CoreChurch.Phone, schema.CoreChurch.Email, schema.CoreChurch.MonthlyDues, schema.CoreChurch.UpdatedAt,
		schema.CoreChurch.ID, schema.CoreChurch.DeletedAt,
		schema.CoreChurch.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		church.ID, church.Name, church.Code, church.Address, church.Diocese,
		church.Phone, church.Email, church.MonthlyDues,
	).Scan(&church.UpdatedAt)
	return dberr.NotFound(err, "Church", "update_church")
}

// SoftDelete stamps deletedat on a live church.
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreChurch.Table, schema.CoreChurch.DeletedAt, schema.CoreChurch.ID, schema.CoreChurch.DeletedAt)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_church")
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Church", "delete_church")
	}
	return nil
}
