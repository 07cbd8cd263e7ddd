// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

/*
TestApplyPoolSize verifies idle limits scale with the pool.
*/
func TestApplyPoolSize(t *testing.T) {
	tests := []struct {
		size        int
		wantPool    int
		wantMinIdle int
		wantMaxIdle int
	}{
		{0, 10, 2, 5},
		{3, 3, 1, 1},
		{50, 50, 10, 25},
	}

	for _, tt := range tests {
		options := &redis.Options{}
		applyPoolSize(options, tt.size)
		assert.Equal(t, tt.wantPool, options.PoolSize)
		assert.Equal(t, tt.wantMinIdle, options.MinIdleConns)
		assert.Equal(t, tt.wantMaxIdle, options.MaxIdleConns)
	}
}

/*
TestNewClient_InvalidURL verifies a malformed URL fails before dialing.
*/
func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "mysql://nope", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "invalid URL")
}
