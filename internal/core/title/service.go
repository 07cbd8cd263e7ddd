// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// TermResolver resolves taxonomy slugs. Implemented by [taxonomy.Repository].
type TermResolver interface {
	FindBySlugs(context context.Context, slugs []string) ([]*taxonomy.Term, error)
}

// Service orchestrates the title catalog.
type Service struct {
	repo       Repository
	categories TermResolver
	genres     TermResolver
	now        func() time.Time
	logger     *slog.Logger
}

// NewService constructs a new [Service]. now supplies the current year for
// release date validation.
func NewService(repo Repository, categories, genres TermResolver, now func() time.Time, logger *slog.Logger) *Service {
	return &Service{repo: repo, categories: categories, genres: genres, now: now, logger: logger}
}

// CreateInput carries a new title. Category and Genres are slugs.
type CreateInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

// UpdateInput is a partial update. Nil fields are left untouched, an empty
// Category detaches the category and a non-nil empty Genres clears the genres.
type UpdateInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

// # Queries

func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Genre = strings.TrimSpace(filter.Genre)
	filter.Name = strings.TrimSpace(filter.Name)
	return service.repo.List(context, filter, page.Limit, page.Offset())
}

func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// # Commands

/*
Create validates and stores a new title, then returns it hydrated.

Returns:
  - *Title: The stored title with its category and genres
  - error: VALIDATION_ERROR for bad fields or unknown slugs, [ErrFutureYear]
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	title := &Title{
		Name:        strings.TrimSpace(input.Name),
		Year:        input.Year,
		Description: strings.TrimSpace(input.Description),
	}

	// ── 1. Field rules ──
	if err := service.check(title); err != nil {
		return nil, err
	}

	// ── 2. Taxonomy resolution ──
	if err := service.resolveCategory(context, title, input.Category); err != nil {
		return nil, err
	}
	if err := service.resolveGenres(context, title, input.Genres); err != nil {
		return nil, err
	}

	// ── 3. Persist ──
	if err := service.repo.Create(context, title); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_created",
		slog.Int64("title_id", title.ID),
		slog.String("name", title.Name),
	)

	return service.repo.FindByID(context, title.ID)
}

// Update applies a partial change to an existing title.
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = strings.TrimSpace(*input.Name)
	}
	title.Year = pointer.Fallback(input.Year, title.Year)
	if input.Description != nil {
		title.Description = strings.TrimSpace(*input.Description)
	}

	if err := service.check(title); err != nil {
		return nil, err
	}

	if input.Category != nil {
		if err := service.resolveCategory(context, title, *input.Category); err != nil {
			return nil, err
		}
	}

	replaceGenres := input.Genres != nil
	if replaceGenres {
		if err := service.resolveGenres(context, title, input.Genres); err != nil {
			return nil, err
		}
	}

	if err := service.repo.Update(context, title, replaceGenres); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_updated", slog.Int64("title_id", id))

	return service.repo.FindByID(context, id)
}

func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.logger.InfoContext(context, "title_deleted", slog.Int64("title_id", id))
	return nil
}

// # Helpers

func (service *Service) check(title *Title) error {
	validator := &validate.Validator{}
	validator.Required("name", title.Name).MaxLen("name", title.Name, MaxNameLength)
	if err := validator.Err(); err != nil {
		return err
	}

	if title.Year > service.now().Year() {
		return ErrFutureYear
	}
	return nil
}

// resolveCategory binds the category slug. An empty slug detaches the category.
func (service *Service) resolveCategory(context context.Context, title *Title, categorySlug string) error {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		title.Category, title.CategoryID = nil, nil
		return nil
	}

	found, err := service.categories.FindBySlugs(context, []string{categorySlug})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return validate.Invalid("category", fmt.Sprintf("Unknown category %q", categorySlug))
	}

	title.Category = found[0]
	title.CategoryID = &found[0].ID
	return nil
}

// resolveGenres binds every genre slug. Duplicates collapse; one unknown slug fails the whole set.
func (service *Service) resolveGenres(context context.Context, title *Title, genreSlugs []string) error {
	wanted := make([]string, 0, len(genreSlugs))
	for _, genreSlug := range genreSlugs {
		genreSlug = strings.TrimSpace(genreSlug)
		if genreSlug != "" && !slices.Contains(wanted, genreSlug) {
			wanted = append(wanted, genreSlug)
		}
	}

	found, err := service.genres.FindBySlugs(context, wanted)
	if err != nil {
		return err
	}

	title.Genres = make([]taxonomy.Term, 0, len(found))
	for _, genre := range found {
		title.Genres = append(title.Genres, *genre)
	}

	for _, genreSlug := range wanted {
		if !slices.ContainsFunc(found, func(term *taxonomy.Term) bool { return term.Slug == genreSlug }) {
			return validate.Invalid("genre", fmt.Sprintf("Unknown genre %q", genreSlug))
		}
	}
	return nil
}
