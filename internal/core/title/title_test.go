// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Fakes

type fakeResolver struct {
	terms []*taxonomy.Term
}

func (f *fakeResolver) FindBySlugs(_ context.Context, slugs []string) ([]*taxonomy.Term, error) {
	var found []*taxonomy.Term
	for _, term := range f.terms {
		if slices.Contains(slugs, term.Slug) {
			found = append(found, term)
		}
	}
	return found, nil
}

type fakeTitles struct {
	rows []*title.Title
}

func (f *fakeTitles) List(_ context.Context, filter title.Filter, limit, offset int) ([]*title.Title, int, error) {
	var matched []*title.Title
	for _, row := range f.rows {
		if filter.Year != nil && row.Year != *filter.Year {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && (row.Category == nil || row.Category.Slug != filter.Category) {
			continue
		}
		if filter.Genre != "" && !slices.ContainsFunc(row.Genres, func(term taxonomy.Term) bool { return term.Slug == filter.Genre }) {
			continue
		}
		matched = append(matched, row)
	}
	end := min(offset+limit, len(matched))
	return matched[min(offset, end):end], len(matched), nil
}

func (f *fakeTitles) FindByID(_ context.Context, id int64) (*title.Title, error) {
	for _, row := range f.rows {
		if row.ID == id {
			clone := *row
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Title")
}

func (f *fakeTitles) Create(_ context.Context, t *title.Title) error {
	t.ID = int64(len(f.rows) + 1)
	clone := *t
	f.rows = append(f.rows, &clone)
	return nil
}

func (f *fakeTitles) Update(_ context.Context, t *title.Title, replaceGenres bool) error {
	for i, row := range f.rows {
		if row.ID == t.ID {
			clone := *t
			if !replaceGenres {
				clone.Genres = row.Genres
			}
			f.rows[i] = &clone
			return nil
		}
	}
	return apperr.NotFound("Title")
}

func (f *fakeTitles) Delete(_ context.Context, id int64) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Title")
}

// # Fixtures

var (
	film   = &taxonomy.Term{ID: 1, Name: "Film", Slug: "movie"}
	drama  = &taxonomy.Term{ID: 10, Name: "Drama", Slug: "drama"}
	comedy = &taxonomy.Term{ID: 11, Name: "Comedy", Slug: "comedy"}
)

func fixedNow() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

func newService() (*title.Service, *fakeTitles) {
	repo := &fakeTitles{}
	service := title.NewService(repo,
		&fakeResolver{terms: []*taxonomy.Term{film}},
		&fakeResolver{terms: []*taxonomy.Term{drama, comedy}},
		fixedNow,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return service, repo
}

/*
TestCreate covers year validation and slug resolution.
*/
func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   title.CreateInput
		wantErr string
		field   string
	}{
		{"current_year", title.CreateInput{Name: "Solaris", Year: 2026, Category: "movie", Genres: []string{"drama"}}, "", ""},
		{"no_taxonomy", title.CreateInput{Name: "Stalker", Year: 1979}, "", ""},
		{"future_year", title.CreateInput{Name: "Sequel", Year: 2027}, "VALIDATION_ERROR", "year"},
		{"blank_name", title.CreateInput{Name: "  ", Year: 2000}, "VALIDATION_ERROR", "name"},
		{"unknown_category", title.CreateInput{Name: "X", Year: 2000, Category: "book"}, "VALIDATION_ERROR", "category"},
		{"unknown_genre", title.CreateInput{Name: "X", Year: 2000, Genres: []string{"drama", "horror"}}, "VALIDATION_ERROR", "genre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService()

			created, err := service.Create(context.Background(), tt.input)
			if tt.wantErr != "" {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.wantErr, ae.Code)
				require.NotEmpty(t, ae.Details)
				assert.Equal(t, tt.field, ae.Details[0].Field)
				assert.Empty(t, repo.rows)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.Nil(t, created.Rating)
		})
	}
}

/*
TestCreate_DuplicateGenres verifies repeated slugs link a genre once.
*/
func TestCreate_DuplicateGenres(t *testing.T) {
	service, _ := newService()

	created, err := service.Create(context.Background(), title.CreateInput{
		Name: "Solaris", Year: 1972, Genres: []string{"drama", "drama", "comedy"},
	})
	require.NoError(t, err)
	assert.Len(t, created.Genres, 2)
	assert.ElementsMatch(t, []int64{10, 11}, created.GenreIDs())
}

/*
TestUpdate verifies partial updates keep untouched fields and genres.
*/
func TestUpdate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateInput{
		Name: "Solaris", Year: 1972, Category: "movie", Genres: []string{"drama"},
	})
	require.NoError(t, err)

	renamed := "Solaris (1972)"
	updated, err := service.Update(ctx, created.ID, title.UpdateInput{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Name)
	assert.Equal(t, "movie", updated.Category.Slug)
	assert.Len(t, updated.Genres, 1)

	detached := ""
	updated, err = service.Update(ctx, created.ID, title.UpdateInput{Category: &detached, Genres: []string{}})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	assert.Empty(t, updated.Genres)

	_, err = service.Update(ctx, created.ID, title.UpdateInput{Year: pointer.To(2030)})
	assert.ErrorIs(t, err, title.ErrFutureYear)

	_, err = service.Update(ctx, 999, title.UpdateInput{Name: &renamed})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestList verifies filters are trimmed and forwarded.
*/
func TestList(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	for _, input := range []title.CreateInput{
		{Name: "Solaris", Year: 1972, Category: "movie", Genres: []string{"drama"}},
		{Name: "Stalker", Year: 1979, Category: "movie", Genres: []string{"drama"}},
		{Name: "Mimino", Year: 1977, Genres: []string{"comedy"}},
	} {
		_, err := service.Create(ctx, input)
		require.NoError(t, err)
	}

	year := 1977
	tests := []struct {
		name   string
		filter title.Filter
		want   int
	}{
		{"all", title.Filter{}, 3},
		{"category", title.Filter{Category: " movie "}, 2},
		{"genre", title.Filter{Genre: "comedy"}, 1},
		{"name", title.Filter{Name: "STAL"}, 1},
		{"year", title.Filter{Year: &year}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := service.List(ctx, tt.filter, pagination.Params{Page: 1, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}
}

/*
TestHandler verifies access rules, payload mapping and the genre field name.
*/
func TestHandler(t *testing.T) {
	admin := &sec.AuthClaims{UserID: "a", Username: "boss", Role: "admin"}
	user := &sec.AuthClaims{UserID: "u", Username: "critic", Role: "user"}

	tests := []struct {
		name   string
		claims *sec.AuthClaims
		method string
		target string
		body   string
		status int
	}{
		{"anonymous_list", nil, http.MethodGet, "/?genre=drama&year=1972", "", http.StatusOK},
		{"bad_year_filter", nil, http.MethodGet, "/?year=soon", "", http.StatusBadRequest},
		{"anonymous_get", nil, http.MethodGet, "/1", "", http.StatusOK},
		{"missing", nil, http.MethodGet, "/42", "", http.StatusNotFound},
		{"malformed_id", nil, http.MethodGet, "/abc", "", http.StatusNotFound},
		{"user_create", user, http.MethodPost, "/", `{"name":"X","year":2000}`, http.StatusForbidden},
		{"admin_create", admin, http.MethodPost, "/", `{"name":"X","year":2000,"genre":["comedy"]}`, http.StatusCreated},
		{"admin_create_no_year", admin, http.MethodPost, "/", `{"name":"X"}`, http.StatusBadRequest},
		{"admin_patch", admin, http.MethodPatch, "/1", `{"description":"Ocean"}`, http.StatusOK},
		{"anonymous_delete", nil, http.MethodDelete, "/1", "", http.StatusUnauthorized},
		{"admin_delete", admin, http.MethodDelete, "/1", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService()
			_, err := service.Create(context.Background(), title.CreateInput{
				Name: "Solaris", Year: 1972, Category: "movie", Genres: []string{"drama"},
			})
			require.NoError(t, err)

			router := title.NewHandler(service).Routes(nil)

			request := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestHandler_Representation checks the embedded taxonomy and the null rating.
*/
func TestHandler_Representation(t *testing.T) {
	service, _ := newService()
	_, err := service.Create(context.Background(), title.CreateInput{
		Name: "Solaris", Year: 1972, Category: "movie", Genres: []string{"drama"},
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	title.NewHandler(service).Routes(nil).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/1", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, map[string]any{"name": "Film", "slug": "movie"}, envelope.Data["category"])
	assert.Equal(t, []any{map[string]any{"name": "Drama", "slug": "drama"}}, envelope.Data["genre"])
	assert.Contains(t, envelope.Data, "rating")
	assert.Nil(t, envelope.Data["rating"])
}
