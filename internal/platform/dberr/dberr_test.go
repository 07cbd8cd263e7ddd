// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

/*
TestWrap verifies the classification of storage errors.
*/
func TestWrap(t *testing.T) {
	classified := apperr.Forbidden("No")

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), status: http.StatusNotFound},
		{name: "already classified", err: classified, status: http.StatusForbidden},
		{name: "unknown", err: errors.New("broken pipe"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperr.As(dberr.Wrap(tt.err, "Title"))
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tt.status, appErr.HTTPStatus)
			}
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Title"))
}

/*
TestMapUniqueViolation verifies only the named constraint is remapped.
*/
func TestMapUniqueViolation(t *testing.T) {
	target := apperr.BadRequest("DUPLICATE_REVIEW", "Already reviewed")
	violation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_review_author_title"}
	otherViolation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_account_email"}
	fkViolation := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "fk_review_author"}

	assert.ErrorIs(t, dberr.MapUniqueViolation(violation, "uq_review_author_title", target), target)
	assert.Same(t, error(otherViolation), dberr.MapUniqueViolation(otherViolation, "uq_review_author_title", target))
	assert.True(t, dberr.IsUniqueViolation(otherViolation, ""))
	assert.False(t, dberr.IsUniqueViolation(fkViolation, ""))
	assert.True(t, dberr.IsForeignKeyViolation(fmt.Errorf("insert: %w", fkViolation), ""))
	assert.True(t, dberr.IsForeignKeyViolation(fkViolation, "fk_review_author"))
	assert.False(t, dberr.IsForeignKeyViolation(fkViolation, "fk_review_title"))
	assert.False(t, dberr.IsForeignKeyViolation(violation, ""))
}
