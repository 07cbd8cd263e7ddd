// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// PostgresRepository implements [Repository] on the core schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// errDanglingReference reports a category or genre deleted between resolution and write.
var errDanglingReference = validate.Invalid("genre", "A referenced category or genre no longer exists")

// # Read Model

/*
selectTitles returns the hydrated projection shared by List and FindByID.

Genres are folded into a JSON array and the rating is averaged in a correlated
sub-query, so a page of titles costs a single round-trip.
*/
func selectTitles() string {
	return fmt.Sprintf(`
		SELECT
			t.%s, t.%s, t.%s, COALESCE(t.%s, ''), t.%s,
			c.%s, c.%s,
			COALESCE((
				SELECT json_agg(json_build_object('name', g.%s, 'slug', g.%s) ORDER BY g.%s)
				FROM %s g
				JOIN %s tg ON g.%s = tg.%s
				WHERE tg.%s = t.%s
			), '[]') AS genres,
			(SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
		WHERE TRUE`,
		schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
		schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.Name,
		schema.CoreGenre.Table,
		schema.CoreTitleGenre.Table, schema.CoreGenre.ID, schema.CoreTitleGenre.GenreID,
		schema.CoreTitleGenre.TitleID, schema.CoreTitle.ID,
		schema.SocialReview.Score, schema.SocialReview.Table, schema.SocialReview.TitleID, schema.CoreTitle.ID,
		schema.CoreTitle.Table,
		schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreTitle.CategoryID,
	)
}

// scanTitle reads one row of [selectTitles].
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{}
	var categoryName, categorySlug *string
	var genresJSON []byte

	if err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CategoryID,
		&categoryName, &categorySlug,
		&genresJSON,
		&title.Rating,
	); err != nil {
		return nil, err
	}

	if categorySlug != nil && title.CategoryID != nil {
		title.Category = &taxonomy.Term{ID: *title.CategoryID, Name: *categoryName, Slug: *categorySlug}
	}

	if err := json.Unmarshal(genresJSON, &title.Genres); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
	}

	return title, nil
}

// filterClause renders the WHERE conditions of filter, numbering placeholders from 1.
func filterClause(filter Filter) (string, []any) {
	var clause strings.Builder
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		clause.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CoreCategory.Slug, len(args)))
	}

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		clause.WriteString(fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM %s fg JOIN %s g2 ON g2.%s = fg.%s WHERE fg.%s = t.%s AND g2.%s = $%d)`,
			schema.CoreTitleGenre.Table, schema.CoreGenre.Table, schema.CoreGenre.ID, schema.CoreTitleGenre.GenreID,
			schema.CoreTitleGenre.TitleID, schema.CoreTitle.ID, schema.CoreGenre.Slug, len(args),
		))
	}

	// strpos keeps % and _ in the search literal.
	if filter.Name != "" {
		args = append(args, filter.Name)
		clause.WriteString(fmt.Sprintf(" AND strpos(lower(t.%s), lower($%d)) > 0", schema.CoreTitle.Name, len(args)))
	}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		clause.WriteString(fmt.Sprintf(" AND t.%s = $%d", schema.CoreTitle.Year, len(args)))
	}

	return clause.String(), args
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	clause, args := filterClause(filter)

	// ── 1. Total ──
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t LEFT JOIN %s c ON c.%s = t.%s WHERE TRUE%s`,
		schema.CoreTitle.Table, schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreTitle.CategoryID, clause)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to count titles: %w", err), resource)
	}

	// ── 2. Page ──
	query := selectTitles() + clause + fmt.Sprintf(" ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d",
		schema.CoreTitle.Name, schema.CoreTitle.ID, len(args)+1, len(args)+2)

	rows, err := repository.pool.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to list titles: %w", err), resource)
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resource)
		}
		titles = append(titles, title)
	}

	return titles, total, dberr.Wrap(rows.Err(), resource)
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query := selectTitles() + fmt.Sprintf(" AND t.%s = $1", schema.CoreTitle.ID)

	title, err := scanTitle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return title, nil
}

// # Write Model

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	err := postgres.WithTx(context, repository.pool, func(transaction pgx.Tx) error {
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, NULLIF($3, ''), $4) RETURNING %s`,
			schema.CoreTitle.Table,
			schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
			schema.CoreTitle.ID,
		)
		if err := transaction.QueryRow(context, query, title.Name, title.Year, title.Description, title.CategoryID).Scan(&title.ID); err != nil {
			return err
		}
		return syncGenres(context, transaction, title.ID, title.GenreIDs())
	})
	return wrapWrite(err)
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, title *Title, replaceGenres bool) error {
	err := postgres.WithTx(context, repository.pool, func(transaction pgx.Tx) error {
		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NULLIF($4, ''), %s = $5 WHERE %s = $1`,
			schema.CoreTitle.Table,
			schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
			schema.CoreTitle.ID,
		)
		tag, err := transaction.Exec(context, query, title.ID, title.Name, title.Year, title.Description, title.CategoryID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(resource)
		}

		if !replaceGenres {
			return nil
		}
		return syncGenres(context, transaction, title.ID, title.GenreIDs())
	})
	return wrapWrite(err)
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

// # Helpers

// syncGenres replaces every genre link of a title with genreIDs in one batch.
func syncGenres(context context.Context, transaction pgx.Tx, titleID int64, genreIDs []int64) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTitleGenre.Table, schema.CoreTitleGenre.TitleID)
	if _, err := transaction.Exec(context, deleteQuery, titleID); err != nil {
		return fmt.Errorf("postgres: failed to clear genres: %w", err)
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CoreTitleGenre.Table, schema.CoreTitleGenre.TitleID, schema.CoreTitleGenre.GenreID)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, titleID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to link genres: %w", err)
	}
	return nil
}

func wrapWrite(err error) error {
	if dberr.IsForeignKeyViolation(err, "") {
		return errDanglingReference.WithCause(err)
	}
	return dberr.Wrap(err, resource)
}
