// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

type PostgresRepository struct {
	db   *pgxpool.Pool
	kind Kind
}

func NewPostgresRepository(db *pgxpool.Pool, kind Kind) *PostgresRepository {
	return &PostgresRepository{db: db, kind: kind}
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Term, int, error) {
	table := repository.kind.Table

	where, args := "", []any{}
	if search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE '%%' || $1 || '%%'", table.Name)
		args = append(args, search)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, table.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, repository.kind.Resource)
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s %s ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d`,
		table.ID, table.Name, table.Slug, table.Table, where, table.Name, table.ID, len(args)+1, len(args)+2)

	rows, err := repository.db.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, repository.kind.Resource)
	}
	defer rows.Close()

	terms := make([]*Term, 0)
	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, repository.kind.Resource)
		}
		terms = append(terms, term)
	}

	return terms, total, dberr.Wrap(rows.Err(), repository.kind.Resource)
}

func (repository *PostgresRepository) Create(context context.Context, term *Term) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.db.QueryRow(context, query, term.Name, term.Slug).Scan(&term.ID)
	if err != nil {
		return dberr.Wrap(dberr.MapUniqueViolation(err, table.SlugConstraint, repository.kind.ErrSlugTaken), repository.kind.Resource)
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, repository.kind.Resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.kind.Resource)
	}

	return nil
}

func (repository *PostgresRepository) FindBySlugs(context context.Context, slugs []string) ([]*Term, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	table := repository.kind.Table
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		table.ID, table.Name, table.Slug, table.Table, table.Slug, table.Name)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, repository.kind.Resource)
	}
	defer rows.Close()

	terms := make([]*Term, 0, len(slugs))
	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug); err != nil {
			return nil, dberr.Wrap(err, repository.kind.Resource)
		}
		terms = append(terms, term)
	}

	return terms, dberr.Wrap(rows.Err(), repository.kind.Resource)
}
