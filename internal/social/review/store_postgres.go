// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/policy"
)

// PostgresRepository implements [Repository] on the social schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
	db   postgres.Querier
}

// NewPostgresRepository constructs a pool-backed [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, db: pool}
}

// WithinTx implements [Repository].
func (repository *PostgresRepository) WithinTx(context context.Context, fn func(store Store) error) error {
	return postgres.WithTx(context, repository.pool, func(transaction pgx.Tx) error {
		return fn(&PostgresRepository{pool: repository.pool, db: transaction})
	})
}

// selectReviews joins the author so responses carry the username.
func selectReviews() string {
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
		schema.UserAccount.Username,
		schema.SocialReview.Text, schema.SocialReview.Score, schema.SocialReview.PubDate,
		schema.SocialReview.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialReview.AuthorID,
	)
}

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	review := &Review{}
	dest := append([]any{
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return review, nil
}

// ReviewExists implements [Store].
func (repository *PostgresRepository) ReviewExists(context context.Context, authorID string, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.AuthorID, schema.SocialReview.TitleID)

	var exists bool
	if err := repository.db.QueryRow(context, query, authorID, titleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check review: %w", err)
	}
	return exists, nil
}

// TitleExists implements [Store].
func (repository *PostgresRepository) TitleExists(context context.Context, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check title: %w", err)
	}
	return exists, nil
}

// List implements [Store].
func (repository *PostgresRepository) List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.SocialReview.Table, schema.SocialReview.TitleID)
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resource)
	}

	query := selectReviews() + fmt.Sprintf(` WHERE r.%s = $1 ORDER BY r.%s ASC, r.%s ASC LIMIT $2 OFFSET $3`,
		schema.SocialReview.TitleID, schema.SocialReview.PubDate, schema.SocialReview.ID)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resource)
		}
		reviews = append(reviews, review)
	}

	return reviews, total, dberr.Wrap(rows.Err(), resource)
}

// FindByID implements [Store].
func (repository *PostgresRepository) FindByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := selectReviews() + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`, schema.SocialReview.ID, schema.SocialReview.TitleID)

	review, err := scanReview(repository.db.QueryRow(context, query, reviewID, titleID))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return review, nil
}

// Create implements [Store].
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
			RETURNING %s, %s, %s
		)
		SELECT i.%s, i.%s, a.%s FROM inserted i JOIN %s a ON a.%s = i.%s`,
		schema.SocialReview.Table,
		schema.SocialReview.TitleID, schema.SocialReview.AuthorID, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.ID, schema.SocialReview.PubDate, schema.SocialReview.AuthorID,
		schema.SocialReview.ID, schema.SocialReview.PubDate, schema.UserAccount.Username,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialReview.AuthorID,
	)

	err := repository.db.QueryRow(context, query, review.TitleID, review.AuthorID, review.Text, review.Score).
		Scan(&review.ID, &review.PubDate, &review.Author)
	if err != nil {
		err = dberr.MapUniqueViolation(err, schema.SocialReview.AuthorTitleConstraint, policy.ErrDuplicateReview)
		switch {
		case dberr.IsForeignKeyViolation(err, schema.SocialReview.TitleConstraint):
			return apperr.NotFound(titleResource)
		case dberr.IsForeignKeyViolation(err, schema.SocialReview.AuthorConstraint):
			return apperr.NotFound("User")
		}
		return dberr.Wrap(err, resource)
	}
	return nil
}

// Update implements [Store].
func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2`,
		schema.SocialReview.Table, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.ID, schema.SocialReview.TitleID)

	tag, err := repository.db.Exec(context, query, review.ID, review.TitleID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

// Delete implements [Store].
func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID)

	tag, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
