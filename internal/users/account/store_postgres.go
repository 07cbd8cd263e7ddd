// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for account management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// profileColumns lists the columns scanned by [scanUser], in order.
func profileColumns() string {
	table := schema.UserAccount
	return strings.Join([]string{
		table.ID, table.Username, table.Email,
		fmt.Sprintf("COALESCE(%s, '')", table.FirstName),
		fmt.Sprintf("COALESCE(%s, '')", table.LastName),
		fmt.Sprintf("COALESCE(%s, '')", table.Bio),
		table.Role, table.IsSuperuser, table.CreatedAt, table.UpdatedAt,
	}, ", ")
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.Superuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// searchClause builds the optional WHERE clause of a listing.
func searchClause(filter Filter) (string, []any) {
	if filter.Search == "" {
		return "", nil
	}
	return fmt.Sprintf("WHERE %s ILIKE '%%' || $1 || '%%'", schema.UserAccount.Username), []any{filter.Search}
}

/*
List retrieves a page of accounts ordered by username.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*User: Hydrated accounts
  - int: Total matches before paging
  - error: Database failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	where, args := searchClause(filter)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.UserAccount.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		profileColumns(), schema.UserAccount.Table, where, schema.UserAccount.Username, len(args)+1, len(args)+2)

	rows, err := repository.pool.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

// FindByUsername retrieves an account by username.
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		profileColumns(), schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_username_failed: %w", err)
	}
	return user, nil
}

// FindByID retrieves an account by primary key.
//
// A malformed id cannot match the uuid column and is reported as not found.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*User, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("User")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		profileColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}
	return user, nil
}

/*
Create inserts a new account without a pending confirmation code.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: ErrAccountTaken or database failures
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Username, table.Email, table.FirstName, table.LastName, table.Bio, table.Role, table.IsSuperuser,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		string(user.Role),
		user.Superuser,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return ErrAccountTaken.WithCause(err)
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update writes the profile columns and the role of an existing account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: ErrAccountTaken, apperr.NotFound or database failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.Username, table.Email, table.FirstName, table.LastName, table.Bio, table.Role, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		string(user.Role),
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		if dberr.IsUniqueViolation(err, "") {
			return ErrAccountTaken.WithCause(err)
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

// Delete removes an account by id.
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
