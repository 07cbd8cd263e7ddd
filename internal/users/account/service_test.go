// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Fakes

type fakeAccounts struct {
	byID map[string]*account.User
}

func newFakeAccounts(users ...*account.User) *fakeAccounts {
	f := &fakeAccounts{byID: map[string]*account.User{}}
	for _, user := range users {
		f.byID[user.ID] = user
	}
	return f
}

func (f *fakeAccounts) List(_ context.Context, filter account.Filter, limit, offset int) ([]*account.User, int, error) {
	var matched []*account.User
	for _, user := range f.byID {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			copied := *user
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*account.User, error) {
	for _, user := range f.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*account.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeAccounts) Create(_ context.Context, user *account.User) error {
	for _, existing := range f.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return account.ErrAccountTaken
		}
	}
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, user *account.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func seed() *fakeAccounts {
	return newFakeAccounts(
		&account.User{ID: "u-admin", Username: "boss", Email: "boss@example.com", Role: policy.RoleAdmin},
		&account.User{ID: "u-user", Username: "critic", Email: "critic@example.com", Role: policy.RoleUser},
		&account.User{ID: "u-mod", Username: "keeper", Email: "keeper@example.com", Role: policy.RoleModerator},
	)
}

func newService(repo *fakeAccounts) *account.Service {
	return account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Service Tests

/*
TestUpdateMe_RoleIntegrity verifies self-updates never change the stored role.
*/
func TestUpdateMe_RoleIntegrity(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		role    policy.Role
	}{
		{"user_cannot_promote", "u-user", policy.RoleUser},
		{"moderator_keeps_role", "u-mod", policy.RoleModerator},
		{"admin_cannot_demote_self", "u-admin", policy.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seed()
			service := newService(repo)
			actor := policy.NewActor(tt.actorID, "", tt.role, false)

			forged := "admin"
			if tt.role == policy.RoleAdmin {
				forged = "user"
			}

			user, err := service.UpdateMe(context.Background(), actor, account.UpdateInput{
				Bio:  pointer.To("Watches everything twice."),
				Role: &forged,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
			assert.Equal(t, tt.role, repo.byID[tt.actorID].Role)
			assert.Equal(t, "Watches everything twice.", repo.byID[tt.actorID].Bio)
		})
	}
}

/*
TestUpdateMe_Anonymous verifies an anonymous actor is rejected with 401.
*/
func TestUpdateMe_Anonymous(t *testing.T) {
	_, err := newService(seed()).UpdateMe(context.Background(), policy.Anonymous(), account.UpdateInput{})
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

/*
TestReservedUsername verifies "me" is refused on create and on rename.
*/
func TestReservedUsername(t *testing.T) {
	service := newService(seed())

	_, err := service.Create(context.Background(), account.CreateInput{Username: "Me", Email: "x@example.com"})
	assert.ErrorIs(t, err, policy.ErrReservedIdentifier)

	_, err = service.Update(context.Background(), "critic", account.UpdateInput{Username: pointer.To("me")})
	assert.ErrorIs(t, err, policy.ErrReservedIdentifier)

	_, err = service.UpdateMe(context.Background(), policy.NewActor("u-user", "critic", policy.RoleUser, false),
		account.UpdateInput{Username: pointer.To("ME")})
	assert.ErrorIs(t, err, policy.ErrReservedIdentifier)
}

/*
TestCreate covers default role, explicit role, unknown role and duplicates.
*/
func TestCreate(t *testing.T) {
	service := newService(seed())

	user, err := service.Create(context.Background(), account.CreateInput{Username: "newbie", Email: "newbie@example.com"})
	require.NoError(t, err)
	assert.Equal(t, policy.DefaultRole, user.Role)
	assert.NotEmpty(t, user.ID)

	user, err = service.Create(context.Background(), account.CreateInput{Username: "mod2", Email: "mod2@example.com", Role: "moderator"})
	require.NoError(t, err)
	assert.Equal(t, policy.RoleModerator, user.Role)

	_, err = service.Create(context.Background(), account.CreateInput{Username: "odd", Email: "odd@example.com", Role: "root"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	_, err = service.Create(context.Background(), account.CreateInput{Username: "critic", Email: "other@example.com"})
	assert.ErrorIs(t, err, account.ErrAccountTaken)
}

/*
TestUpdate_AdminChangesRole verifies administrators may change roles.
*/
func TestUpdate_AdminChangesRole(t *testing.T) {
	repo := seed()

	user, err := newService(repo).Update(context.Background(), "critic", account.UpdateInput{Role: pointer.To("moderator")})
	require.NoError(t, err)
	assert.Equal(t, policy.RoleModerator, user.Role)
	assert.Equal(t, policy.RoleModerator, repo.byID["u-user"].Role)
}

/*
TestResolveIdentity verifies tokens resolve to the stored role and fail once the account is gone.
*/
func TestResolveIdentity(t *testing.T) {
	repo := seed()
	service := newService(repo)

	subject, err := service.ResolveIdentity(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.Equal(t, "boss", subject.Username)
	assert.Equal(t, "admin", subject.Role)

	_, err = service.Update(context.Background(), "boss", account.UpdateInput{Role: pointer.To("user")})
	require.NoError(t, err)
	subject, err = service.ResolveIdentity(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.Equal(t, "user", subject.Role)

	require.NoError(t, service.Delete(context.Background(), "boss"))
	_, err = service.ResolveIdentity(context.Background(), "u-admin")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestList verifies search and paging.
*/
func TestList(t *testing.T) {
	tests := []struct {
		name   string
		search string
		params pagination.Params
		total  int
		want   []string
	}{
		{"all_first_page", "", pagination.Params{Page: 1, Limit: 2}, 3, []string{"boss", "critic"}},
		{"all_second_page", "", pagination.Params{Page: 2, Limit: 2}, 3, []string{"keeper"}},
		{"substring", "i", pagination.Params{Page: 1, Limit: 10}, 1, []string{"critic"}},
		{"case_insensitive", "KEEP", pagination.Params{Page: 1, Limit: 10}, 1, []string{"keeper"}},
		{"no_match", "zzz", pagination.Params{Page: 1, Limit: 10}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(seed())

			users, total, err := service.List(context.Background(), account.Filter{Search: tt.search}, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)

			var names []string
			for _, user := range users {
				names = append(names, user.Username)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

// # Handler Tests

// serve routes a request as actor through the account handler.
func serve(t *testing.T, repo *fakeAccounts, actor *sec.AuthClaims, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := account.NewHandler(newService(repo)).Routes()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if actor != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), actor))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

var (
	adminClaims = &sec.AuthClaims{UserID: "u-admin", Username: "boss", Role: "admin"}
	userClaims  = &sec.AuthClaims{UserID: "u-user", Username: "critic", Role: "user"}
)

/*
TestHandler_Access verifies the account routes enforce authentication and admin rights.
*/
func TestHandler_Access(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		method string
		target string
		body   string
		status int
	}{
		{"anonymous_me", nil, http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"user_me", userClaims, http.MethodGet, "/me", "", http.StatusOK},
		{"anonymous_list", nil, http.MethodGet, "/", "", http.StatusUnauthorized},
		{"user_list", userClaims, http.MethodGet, "/", "", http.StatusForbidden},
		{"admin_list", adminClaims, http.MethodGet, "/", "", http.StatusOK},
		{"user_delete_other", userClaims, http.MethodDelete, "/keeper", "", http.StatusForbidden},
		{"admin_delete_other", adminClaims, http.MethodDelete, "/keeper", "", http.StatusNoContent},
		{"admin_delete_me", adminClaims, http.MethodDelete, "/me", "", http.StatusMethodNotAllowed},
		{"admin_get_missing", adminClaims, http.MethodGet, "/ghost", "", http.StatusNotFound},
		{"admin_create", adminClaims, http.MethodPost, "/", `{"username":"fresh","email":"fresh@example.com"}`, http.StatusCreated},
		{"admin_create_reserved", adminClaims, http.MethodPost, "/", `{"username":"me","email":"me@example.com"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, seed(), tt.claims, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestHandler_PatchMeIgnoresRole verifies the wire-level role field is dropped.
*/
func TestHandler_PatchMeIgnoresRole(t *testing.T) {
	repo := seed()

	recorder := serve(t, repo, userClaims, http.MethodPatch, "/me", `{"role":"admin","first_name":"Ann"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "user", body.Data["role"])
	assert.Equal(t, "Ann", body.Data["first_name"])
	assert.Equal(t, policy.RoleUser, repo.byID["u-user"].Role)
}
