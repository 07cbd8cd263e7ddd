// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/comment"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "admin-token" {
		return &sec.AuthClaims{UserID: "u-admin", Username: "boss", Role: "admin"}, nil
	}
	return nil, errors.New("bad token")
}

type stubResolver struct{}

func (stubResolver) ResolveIdentity(_ context.Context, userID string) (*sec.TokenSubject, error) {
	return &sec.TokenSubject{UserID: userID, Username: "boss", Role: "admin"}, nil
}

// newRouter builds the full routing tree. Services are nil, so only requests
// rejected before reaching a service may be sent.
func newRouter(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	return api.NewRouter(ctx, &config.Config{Environment: "test"}, logger, stubVerifier{}, stubResolver{}, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(nil),
		Accounts:   account.NewHandler(nil),
		Categories: taxonomy.NewHandler(nil),
		Genres:     taxonomy.NewHandler(nil),
		Titles:     title.NewHandler(nil),
		Reviews:    review.NewHandler(nil),
		Comments:   comment.NewHandler(nil),
	})
}

func serve(t *testing.T, router http.Handler, method, target string, header map[string]string) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, target, nil)
	for key, value := range header {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var body map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	}
	return recorder.Code, body
}

/*
TestRouter_Fallbacks verifies unknown paths and verbs answer with the JSON error envelope.
*/
func TestRouter_Fallbacks(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})
	admin := map[string]string{"Authorization": "Bearer admin-token"}

	tests := []struct {
		name   string
		method string
		target string
		header map[string]string
		status int
		code   string
	}{
		{"unknown_path", http.MethodGet, "/api/v1/nothing", nil, http.StatusNotFound, "NOT_FOUND"},
		{"put_title", http.MethodPut, "/api/v1/titles/1", nil, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"put_category", http.MethodPut, "/api/v1/categories/", nil, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"put_comment", http.MethodPut, "/api/v1/titles/1/reviews/2/comments/3", nil, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"delete_me", http.MethodDelete, "/api/v1/users/me", admin, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"malformed_header", http.MethodGet, "/api/v1/users/me", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired_token", http.MethodGet, "/api/v1/users/me", map[string]string{"Authorization": "Bearer stale"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"anonymous_title_write", http.MethodPost, "/api/v1/titles", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, router, tt.method, tt.target, tt.header)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

/*
TestRouter_Localized verifies error messages follow Accept-Language.
*/
func TestRouter_Localized(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	status, body := serve(t, router, http.MethodPost, "/api/v1/titles", map[string]string{"Accept-Language": "ru-RU,ru;q=0.9"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Учетные данные не были предоставлены.", body["error"])
}

/*
TestHealth verifies liveness and readiness probes.
*/
func TestHealth(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		target string
		deps   api.HealthDependencies
		status int
	}{
		{"liveness", "/health", api.HealthDependencies{CheckDatabase: broken}, http.StatusOK},
		{"ready", "/ready", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK},
		{"database_down", "/ready", api.HealthDependencies{CheckDatabase: broken, CheckCache: healthy}, http.StatusServiceUnavailable},
		{"cache_down", "/ready", api.HealthDependencies{CheckDatabase: healthy, CheckCache: broken}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, newRouter(t, tt.deps), http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, status)
			if status == http.StatusServiceUnavailable {
				assert.Equal(t, "SERVICE_UNAVAILABLE", body["code"])
				assert.NotEmpty(t, body["details"])
			}
		})
	}
}
