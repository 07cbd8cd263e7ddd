// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestPgx5DSN verifies every accepted DSN form is rewritten to the pgx5 scheme.
*/
func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "postgres://u:p@db:5432/yamdb", want: "pgx5://u:p@db:5432/yamdb"},
		{in: "postgresql://u:p@db/yamdb?sslmode=disable", want: "pgx5://u:p@db/yamdb?sslmode=disable"},
		{in: "pgx5://u@db/yamdb", want: "pgx5://u@db/yamdb"},
		{in: "host=db user=u", want: "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pgx5DSN(tt.in))
		})
	}
}

/*
TestMigrateLogger verifies verbosity follows the handler level.
*/
func TestMigrateLogger(t *testing.T) {
	quiet := &migrateLogger{logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))}
	assert.False(t, quiet.Verbose())

	verbose := &migrateLogger{logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	assert.True(t, verbose.Verbose())
}

/*
TestOpen_MissingSource verifies a bad migrations directory fails at open.
*/
func TestOpen_MissingSource(t *testing.T) {
	_, err := Open("postgres://u:p@127.0.0.1:1/yamdb", t.TempDir()+"/absent", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "migration: failed to initialize")
}
