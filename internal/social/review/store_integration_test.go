// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

const migrationsDir = "../../../data/migrations"

// setupDatabase starts a disposable PostgreSQL container and applies the schema.
func setupDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("yamdb"),
		postgres.WithUsername("yamdb"),
		postgres.WithPassword("yamdb"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsDir, logger))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

type fixture struct {
	pool    *pgxpool.Pool
	reviews *review.Service
	titles  *title.PostgresRepository
	actors  []policy.Actor
	titleID int64
}

func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	pool := setupDatabase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	accounts := account.NewService(account.NewAccountRepository(pool), logger)
	var actors []policy.Actor
	for _, name := range []string{"critic", "reader"} {
		user, err := accounts.Create(ctx, account.CreateInput{Username: name, Email: name + "@yamdb.local"})
		require.NoError(t, err)
		actors = append(actors, policy.NewActor(user.ID, user.Username, policy.RoleUser, false))
	}

	genres := taxonomy.NewPostgresRepository(pool, taxonomy.Genres)
	drama := &taxonomy.Term{Name: "Drama", Slug: "drama"}
	require.NoError(t, genres.Create(ctx, drama))

	titles := title.NewPostgresRepository(pool)
	film := &title.Title{Name: "Solaris", Year: 1972, Genres: []taxonomy.Term{*drama}}
	require.NoError(t, titles.Create(ctx, film))

	return &fixture{
		pool:    pool,
		reviews: review.NewService(review.NewPostgresRepository(pool), logger),
		titles:  titles,
		actors:  actors,
		titleID: film.ID,
	}
}

/*
TestPostgres_ReviewLifecycle exercises the review store against a real schema.

It covers the one-review-per-title rule, title scoping, and the rating aggregate.
*/
func TestPostgres_ReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	critic, reader := f.actors[0], f.actors[1]

	// ── 1. No reviews yet ──
	film, err := f.titles.FindByID(ctx, f.titleID)
	require.NoError(t, err)
	assert.Nil(t, film.Rating)
	require.Len(t, film.Genres, 1)
	assert.Equal(t, "drama", film.Genres[0].Slug)

	// ── 2. Two authors review ──
	first, err := f.reviews.Create(ctx, critic, f.titleID, "Slow and hypnotic.", 9)
	require.NoError(t, err)
	assert.Equal(t, "critic", first.Author)
	assert.False(t, first.PubDate.IsZero())

	_, err = f.reviews.Create(ctx, reader, f.titleID, "Too long.", 4)
	require.NoError(t, err)

	// ── 3. Second review by the same author ──
	_, err = f.reviews.Create(ctx, critic, f.titleID, "Changed my mind.", 2)
	assert.ErrorIs(t, err, policy.ErrDuplicateReview)

	// ── 4. Rating reflects both scores ──
	film, err = f.titles.FindByID(ctx, f.titleID)
	require.NoError(t, err)
	require.NotNil(t, film.Rating)
	assert.InDelta(t, 6.5, *film.Rating, 0.001)

	// ── 5. Scoped lookups ──
	_, err = f.reviews.Get(ctx, f.titleID+1, first.ID)
	assert.ErrorIs(t, err, apperr.NotFound("Review"))

	_, _, err = f.reviews.List(ctx, f.titleID+1, pagination.Params{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, apperr.NotFound("Title"))

	page, total, err := f.reviews.List(ctx, f.titleID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)
}

/*
TestPostgres_ConstraintBackstop verifies the unique constraint maps to the duplicate review error
when the pre-check is bypassed.
*/
func TestPostgres_ConstraintBackstop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	store := review.NewPostgresRepository(f.pool)

	first := &review.Review{TitleID: f.titleID, AuthorID: f.actors[0].ID, Text: "First.", Score: 7}
	require.NoError(t, store.Create(ctx, first))

	again := &review.Review{TitleID: f.titleID, AuthorID: f.actors[0].ID, Text: "Again.", Score: 3}
	assert.ErrorIs(t, store.Create(ctx, again), policy.ErrDuplicateReview)

	orphan := &review.Review{TitleID: f.titleID + 100, AuthorID: f.actors[1].ID, Text: "Lost.", Score: 5}
	assert.ErrorIs(t, store.Create(ctx, orphan), apperr.NotFound("Title"))

	ghost := &review.Review{TitleID: f.titleID, AuthorID: uuid.New(), Text: "Nobody.", Score: 5}
	assert.ErrorIs(t, store.Create(ctx, ghost), apperr.NotFound("User"))
}

/*
TestPostgres_TitleListing verifies totals past the last page and literal wildcards in the name filter.
*/
func TestPostgres_TitleListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	promo := &title.Title{Name: "100% Wolf", Year: 2020}
	require.NoError(t, f.titles.Create(ctx, promo))

	tests := []struct {
		name   string
		filter title.Filter
		offset int
		total  int
		want   []string
	}{
		{name: "first_page", total: 2, want: []string{"100% Wolf", "Solaris"}},
		{name: "past_last_page", offset: 10, total: 2, want: nil},
		{name: "percent_is_literal", filter: title.Filter{Name: "%"}, total: 1, want: []string{"100% Wolf"}},
		{name: "underscore_is_literal", filter: title.Filter{Name: "_"}, total: 0, want: nil},
		{name: "case_insensitive", filter: title.Filter{Name: "SOLAR"}, total: 1, want: []string{"Solaris"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			titles, total, err := f.titles.List(ctx, tt.filter, 10, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)

			var names []string
			for _, film := range titles {
				names = append(names, film.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
