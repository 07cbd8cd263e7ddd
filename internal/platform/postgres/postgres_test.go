// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestPoolSettings_Defaults verifies unset and inconsistent values are normalized.
*/
func TestPoolSettings_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		settings PoolSettings
		want     PoolSettings
	}{
		{"unset", PoolSettings{}, PoolSettings{MaxConns: 25, MinConns: 0, StatementTimeout: 30 * time.Second}},
		{"server", DefaultPoolSettings(), DefaultPoolSettings()},
		{"cli", PoolSettings{MaxConns: 2, MinConns: 0, StatementTimeout: 5 * time.Minute}, PoolSettings{MaxConns: 2, MinConns: 0, StatementTimeout: 5 * time.Minute}},
		{"min_above_max", PoolSettings{MaxConns: 2, MinConns: 9}, PoolSettings{MaxConns: 2, MinConns: 2, StatementTimeout: 30 * time.Second}},
		{"negative_min", PoolSettings{MaxConns: 10, MinConns: -1}, PoolSettings{MaxConns: 10, MinConns: 5, StatementTimeout: 30 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.withDefaults())
		})
	}
}

/*
TestOperation verifies span names use the statement keyword.
*/
func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", operation("\n\t\tselect 1"))
	assert.Equal(t, "WITH", operation("WITH inserted AS (...) SELECT"))
	assert.Equal(t, "query", operation("   "))
}

/*
TestQueryTracer verifies start and end pair up without a configured provider.
*/
func TestQueryTracer(t *testing.T) {
	tracer := newQueryTracer()

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	require.NotNil(t, ctx)

	assert.NotPanics(t, func() {
		tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})
	})
}
