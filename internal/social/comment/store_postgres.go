// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the social schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectComments joins the author so responses carry the username.
func selectComments() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID,
		schema.UserAccount.Username,
		schema.SocialComment.Text, schema.SocialComment.PubDate,
		schema.SocialComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.AuthorID,
	)
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author, &comment.Text, &comment.PubDate)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ThreadExists implements [Repository].
func (repository *PostgresRepository) ThreadExists(context context.Context, thread Thread) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, thread.ReviewID, thread.TitleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check review: %w", err)
	}
	return exists, nil
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.ReviewID)
	if err := repository.pool.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resource)
	}

	query := selectComments() + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s ASC, c.%s ASC LIMIT $2 OFFSET $3`,
		schema.SocialComment.ReviewID, schema.SocialComment.PubDate, schema.SocialComment.ID)

	rows, err := repository.pool.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resource)
		}
		comments = append(comments, comment)
	}

	return comments, total, dberr.Wrap(rows.Err(), resource)
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := selectComments() + fmt.Sprintf(` WHERE c.%s = $1 AND c.%s = $2`, schema.SocialComment.ID, schema.SocialComment.ReviewID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, commentID, reviewID))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return comment, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
			RETURNING %s, %s, %s
		)
		SELECT i.%s, i.%s, a.%s FROM inserted i JOIN %s a ON a.%s = i.%s`,
		schema.SocialComment.Table,
		schema.SocialComment.ReviewID, schema.SocialComment.AuthorID, schema.SocialComment.Text,
		schema.SocialComment.ID, schema.SocialComment.PubDate, schema.SocialComment.AuthorID,
		schema.SocialComment.ID, schema.SocialComment.PubDate, schema.UserAccount.Username,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.AuthorID,
	)

	err := repository.pool.QueryRow(context, query, comment.ReviewID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.PubDate, &comment.Author)
	switch {
	case dberr.IsForeignKeyViolation(err, schema.SocialComment.ReviewConstraint):
		return apperr.NotFound("Review")
	case dberr.IsForeignKeyViolation(err, schema.SocialComment.AuthorConstraint):
		return apperr.NotFound("User")
	}
	return dberr.Wrap(err, resource)
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2`,
		schema.SocialComment.Table, schema.SocialComment.Text, schema.SocialComment.ID, schema.SocialComment.ReviewID)

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.ReviewID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialComment.Table, schema.SocialComment.ID, schema.SocialComment.ReviewID)

	tag, err := repository.pool.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
