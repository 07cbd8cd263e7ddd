// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Service orchestrates reviews of a title.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

// # Queries

// List returns the reviews of an existing title.
func (service *Service) List(context context.Context, titleID int64, page pagination.Params) ([]*Review, int, error) {
	if err := service.requireTitle(context, service.repo, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, titleID, page.Limit, page.Offset())
}

func (service *Service) Get(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.FindByID(context, titleID, reviewID)
}

// # Commands

/*
Create publishes the actor's review of a title.

The existence checks and the insert share one transaction so the uniqueness
guard reads what the insert will write.

Returns:
  - *Review: The stored review with author and publication date
  - error: NOT_FOUND for a missing title, [policy.ErrDuplicateReview], VALIDATION_ERROR
*/
func (service *Service) Create(context context.Context, actor policy.Actor, titleID int64, text string, score int) (*Review, error) {
	review := &Review{TitleID: titleID, AuthorID: actor.ID, Text: strings.TrimSpace(text), Score: score}

	// ── 1. Field rules ──
	if err := check(review); err != nil {
		return nil, err
	}

	// ── 2. Guarded insert ──
	err := service.repo.WithinTx(context, func(store Store) error {
		if err := service.requireTitle(context, store, titleID); err != nil {
			return err
		}
		if err := policy.AssertReviewAllowed(context, store, actor, titleID, true); err != nil {
			return err
		}
		return store.Create(context, review)
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.String("author", actor.Username),
	)

	return review, nil
}

// Update edits a review. Authors, moderators and administrators may edit.
func (service *Service) Update(context context.Context, actor policy.Actor, titleID, reviewID int64, input UpdateInput) (*Review, error) {
	review, err := service.owned(context, actor, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = strings.TrimSpace(*input.Text)
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := check(review); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_updated",
		slog.Int64("review_id", reviewID),
		slog.String("actor", actor.Username),
	)

	return review, nil
}

// Delete removes a review. Authors, moderators and administrators may delete.
func (service *Service) Delete(context context.Context, actor policy.Actor, titleID, reviewID int64) error {
	if _, err := service.owned(context, actor, titleID, reviewID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "review_deleted",
		slog.Int64("review_id", reviewID),
		slog.String("actor", actor.Username),
	)

	return nil
}

// # Helpers

// owned loads a review and checks the actor may modify it.
func (service *Service) owned(context context.Context, actor policy.Actor, titleID, reviewID int64) (*Review, error) {
	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := policy.Require(actor, policy.CanAccessOwnedResource(actor, false, review.AuthorID)); err != nil {
		return nil, err
	}
	return review, nil
}

func (service *Service) requireTitle(context context.Context, store Store, titleID int64) error {
	exists, err := store.TitleExists(context, titleID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFound(titleResource)
	}
	return nil
}

func check(review *Review) error {
	validator := &validate.Validator{}
	validator.Required("text", review.Text).
		Range("score", review.Score, MinScore, MaxScore)
	return validator.Err()
}
