// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/policy"
)

// # Identity Repository

// PostgresIdentityRepository implements [IdentityRepository] using pgx.
type PostgresIdentityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository creates a new PostgreSQL implementation of the IdentityRepository.
func NewIdentityRepository(pool *pgxpool.Pool) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{pool: pool}
}

// identityColumns lists the columns scanned by [scanIdentity], in order.
func identityColumns() string {
	table := schema.UserAccount
	return strings.Join([]string{
		table.ID, table.Username, table.Email, table.Role, table.IsSuperuser,
		fmt.Sprintf("COALESCE(%s, '')", table.ConfirmationCodeHash),
	}, ", ")
}

// scanIdentity hydrates an [Identity] from a row selected with [identityColumns].
func scanIdentity(row pgx.Row) (*Identity, error) {
	identity := &Identity{}
	var role string

	err := row.Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&role,
		&identity.Superuser,
		&identity.CodeHash,
	)
	if err != nil {
		return nil, err
	}

	identity.Role = policy.Role(role)
	return identity, nil
}

/*
Lookup fetches the owners of username and email in a single round trip.

Parameters:
  - context: context.Context
  - username: string
  - email: string

Returns:
  - byUsername, byEmail: *Identity (either may be nil, both may be the same account)
  - error: Database errors
*/
func (repository *PostgresIdentityRepository) Lookup(context context.Context, username, email string) (*Identity, *Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s = $2`,
		identityColumns(), schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email)

	rows, err := repository.pool.Query(context, query, username, email)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres_identity_repo_lookup_failed: %w", err)
	}
	defer rows.Close()

	var byUsername, byEmail *Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres_identity_repo_lookup_scan_failed: %w", err)
		}
		if identity.Username == username {
			byUsername = identity
		}
		if identity.Email == email {
			byEmail = identity
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("postgres_identity_repo_lookup_failed: %w", err)
	}

	return byUsername, byEmail, nil
}

/*
FindByUsername retrieves an account by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Identity: Hydrated account entity, nil when no account matches
  - error: Database errors
*/
func (repository *PostgresIdentityRepository) FindByUsername(context context.Context, username string) (*Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		identityColumns(), schema.UserAccount.Table, schema.UserAccount.Username)

	identity, err := scanIdentity(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_identity_repo_find_by_username_failed: %w", err)
	}

	return identity, nil
}

/*
Create inserts a new account into users.account.

Description: A unique violation on username or email means a concurrent signup
claimed the identity first; it surfaces as [policy.ErrIdentityTaken].

Parameters:
  - context: context.Context
  - identity: *Identity

Returns:
  - error: policy.ErrIdentityTaken or database errors
*/
func (repository *PostgresIdentityRepository) Create(context context.Context, identity *Identity) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		table.Table, table.ID, table.Username, table.Email, table.Role, table.IsSuperuser, table.ConfirmationCodeHash)

	_, err := repository.pool.Exec(context, query,
		identity.ID,
		identity.Username,
		identity.Email,
		string(identity.Role),
		identity.Superuser,
		identity.CodeHash,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return policy.ErrIdentityTaken.WithCause(err)
		}
		return fmt.Errorf("postgres_identity_repo_create_failed: %w", err)
	}

	return nil
}

/*
SetCode overwrites the pending confirmation code hash.

Parameters:
  - context: context.Context
  - accountID: string
  - codeHash: string

Returns:
  - error: Database errors
*/
func (repository *PostgresIdentityRepository) SetCode(context context.Context, accountID, codeHash string) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		table.Table, table.ConfirmationCodeHash, table.UpdatedAt, table.ID)

	if _, err := repository.pool.Exec(context, query, accountID, codeHash); err != nil {
		return fmt.Errorf("postgres_identity_repo_set_code_failed: %w", err)
	}

	return nil
}

/*
ConsumeCode nulls the pending code hash with a compare-and-swap on its value.

Parameters:
  - context: context.Context
  - accountID: string
  - codeHash: string

Returns:
  - bool: true when this call cleared the code
  - error: Database errors
*/
func (repository *PostgresIdentityRepository) ConsumeCode(context context.Context, accountID, codeHash string) (bool, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1 AND %s = $2`,
		table.Table, table.ConfirmationCodeHash, table.UpdatedAt, table.ID, table.ConfirmationCodeHash)

	tag, err := repository.pool.Exec(context, query, accountID, codeHash)
	if err != nil {
		return false, fmt.Errorf("postgres_identity_repo_consume_code_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
