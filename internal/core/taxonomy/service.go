// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slug"
)

type Service struct {
	repo   Repository
	kind   Kind
	logger *slog.Logger
}

func NewService(repo Repository, kind Kind, logger *slog.Logger) *Service {
	return &Service{repo: repo, kind: kind, logger: logger}
}

func (service *Service) List(context context.Context, search string, page pagination.Params) ([]*Term, int, error) {
	return service.repo.List(context, strings.TrimSpace(search), page.Limit, page.Offset())
}

// Create stores a new term. An empty slug is derived from the name.
func (service *Service) Create(context context.Context, name, termSlug string) (*Term, error) {
	name = strings.TrimSpace(name)
	termSlug = strings.TrimSpace(termSlug)

	if termSlug == "" {
		termSlug = slug.FromMax(name, MaxSlugLength)
	}

	validator := &validate.Validator{}
	validator.Required("name", name).
		MaxLen("name", name, MaxNameLength).
		Required("slug", termSlug).
		MaxLen("slug", termSlug, MaxSlugLength).
		Slug("slug", termSlug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	term := &Term{Name: name, Slug: termSlug}
	if err := service.repo.Create(context, term); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "taxonomy_term_created",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", term.Slug),
	)

	return term, nil
}

func (service *Service) Delete(context context.Context, termSlug string) error {
	if err := service.repo.DeleteBySlug(context, termSlug); err != nil {
		return err
	}

	service.logger.InfoContext(context, "taxonomy_term_deleted",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", termSlug),
	)

	return nil
}
