// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/churchwallet/internal/platform/database/schema"
	"github.com/taibuivan/churchwallet/internal/platform/dberr"
	"github.com/taibuivan/churchwallet/pkg/pointer"
)

// # Repository Implementation

// PostgresRepository implements [Repository] against users.account.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for accounts.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var accountColumns = schema.List(schema.UserAccount.Columns())

func scanAccount(row pgx.Row) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Phone,
		&account.PasswordHash,
		&account.FullName,
		&account.Role,
		&account.ChurchID,
		&account.UnitID,
		&account.KudumbakutayimaID,
		&account.MemberID,
		&account.IsActive,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	return account, err
}

/*
Create persists a new account record into users.account.

Parameters:
  - context: context.Context
  - account: *Account (ID and timestamps are expected to be set)

Returns:
  - error: Conflict on duplicate email/phone, Unprocessable on unknown scopes
*/
func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		schema.UserAccount.Table, accountColumns)

	_, err := repository.db.Exec(context, query,
		account.ID,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.FullName,
		account.Role,
		account.ChurchID,
		account.UnitID,
		account.KudumbakutayimaID,
		account.MemberID,
		account.IsActive,
		account.LastLoginAt,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return dberr.Wrap(err, "create_account")
}

// FindByID retrieves an account by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	account, err := scanAccount(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Account", "find_account_by_id")
	}
	return account, nil
}

// FindByEmail retrieves an account by case-insensitive email.
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	account, err := scanAccount(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.NotFound(err, "Account", "find_account_by_email")
	}
	return account, nil
}

// FindByPhone retrieves an account by its stored phone number.
func (repository *PostgresRepository) FindByPhone(context context.Context, phone string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Phone)

	account, err := scanAccount(repository.db.QueryRow(context, query, phone))
	if err != nil {
		return nil, dberr.NotFound(err, "Account", "find_account_by_phone")
	}
	return account, nil
}

/*
List returns a page of accounts ordered by creation time, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (role, church, free-text on name/email/phone)
  - limit, offset: int

Returns:
  - []*Account: The page
  - int: Total rows matching the filter
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Account, int, error) {
	var builder strings.Builder
	args := []any{}

	fmt.Fprintf(&builder, `SELECT %s, COUNT(*) OVER() FROM %s WHERE TRUE`, accountColumns, schema.UserAccount.Table)

	if filter.Role != "" {
		args = append(args, filter.Role)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.UserAccount.Role, len(args))
	}
	if filter.ChurchID != "" {
		args = append(args, filter.ChurchID)
		fmt.Fprintf(&builder, ` AND %s = $%d`, schema.UserAccount.ChurchID, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		fmt.Fprintf(&builder, ` AND (%s ILIKE %s OR %s ILIKE %s OR %s ILIKE %s)`,
			schema.UserAccount.FullName, placeholder,
			schema.UserAccount.Email, placeholder,
			schema.UserAccount.Phone, placeholder)
	}

	args = append(args, limit, offset)
	fmt.Fprintf(&builder, ` ORDER BY %s DESC LIMIT $%d OFFSET $%d`, schema.UserAccount.CreatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	var (
		accounts []*Account
		total    int
	)
	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(
			&account.ID, &account.Email, &account.Phone, &account.PasswordHash, &account.FullName,
			&account.Role, &account.ChurchID, &account.UnitID, &account.KudumbakutayimaID,
			&account.MemberID, &account.IsActive, &account.LastLoginAt, &account.CreatedAt,
			&account.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_accounts")
	}

	return accounts, total, nil
}

// SetActive enables or disables an account.
func (repository *PostgresRepository) SetActive(context context.Context, id string, active bool) (*Account, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		schema.UserAccount.Table, schema.UserAccount.IsActive, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, accountColumns)

	account, err := scanAccount(repository.db.QueryRow(context, query, id, active))
	if err != nil {
		return nil, dberr.NotFound(err, "Account", "set_account_active")
	}
	return account, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (repository *PostgresRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.db.Exec(context, query, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_account_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// TouchLastLogin stamps lastloginat.
func (repository *PostgresRepository) TouchLastLogin(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	_, err := repository.db.Exec(context, query, id, at)
	return dberr.Wrap(err, "touch_account_last_login")
}

// ScopesConsistent checks the scoping chain in a single round trip.
func (repository *PostgresRepository) ScopesConsistent(context context.Context, scopes Scopes) (bool, error) {
	const query = `
		SELECT
			($1::uuid IS NULL OR EXISTS (SELECT 1 FROM core.church WHERE id = $1 AND deletedat IS NULL))
			AND ($2::uuid IS NULL OR EXISTS (SELECT 1 FROM core.unit WHERE id = $2 AND churchid = $1 AND deletedat IS NULL))
			AND ($3::uuid IS NULL OR EXISTS (SELECT 1 FROM core.kudumbakutayima WHERE id = $3 AND unitid = $2 AND deletedat IS NULL))
			AND ($4::uuid IS NULL OR EXISTS (SELECT 1 FROM core.member WHERE id = $4 AND churchid = $1 AND deletedat IS NULL))`

	var consistent bool
	err := repository.db.QueryRow(context, query,
		pointer.NonZero(scopes.ChurchID),
		pointer.NonZero(scopes.UnitID),
		pointer.NonZero(scopes.KudumbakutayimaID),
		pointer.NonZero(scopes.MemberID),
	).Scan(&consistent)
	if err != nil {
		return false, dberr.Wrap(err, "check_account_scopes")
	}
	return consistent, nil
}
