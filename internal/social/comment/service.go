// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Service orchestrates comments on reviews.
//
// Every operation first checks that the review belongs to the title of the path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context, thread Thread, page pagination.Params) ([]*Comment, int, error) {
	if err := service.requireThread(context, thread); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, thread.ReviewID, page.Limit, page.Offset())
}

func (service *Service) Get(context context.Context, thread Thread, commentID int64) (*Comment, error) {
	if err := service.requireThread(context, thread); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, thread.ReviewID, commentID)
}

// Create posts a comment by actor on the review.
func (service *Service) Create(context context.Context, actor policy.Actor, thread Thread, text string) (*Comment, error) {
	comment := &Comment{ReviewID: thread.ReviewID, AuthorID: actor.ID, Text: strings.TrimSpace(text)}

	if err := check(comment); err != nil {
		return nil, err
	}
	if err := service.requireThread(context, thread); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", thread.ReviewID),
		slog.String("author", actor.Username),
	)

	return comment, nil
}

// Update edits the text. Authors, moderators and administrators may edit.
func (service *Service) Update(context context.Context, actor policy.Actor, thread Thread, commentID int64, text *string) (*Comment, error) {
	comment, err := service.owned(context, actor, thread, commentID)
	if err != nil {
		return nil, err
	}

	if text != nil {
		comment.Text = strings.TrimSpace(*text)
	}
	if err := check(comment); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_updated",
		slog.Int64("comment_id", commentID),
		slog.String("actor", actor.Username),
	)

	return comment, nil
}

// Delete removes a comment. Authors, moderators and administrators may delete.
func (service *Service) Delete(context context.Context, actor policy.Actor, thread Thread, commentID int64) error {
	if _, err := service.owned(context, actor, thread, commentID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, thread.ReviewID, commentID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted",
		slog.Int64("comment_id", commentID),
		slog.String("actor", actor.Username),
	)

	return nil
}

func (service *Service) owned(context context.Context, actor policy.Actor, thread Thread, commentID int64) (*Comment, error) {
	comment, err := service.Get(context, thread, commentID)
	if err != nil {
		return nil, err
	}

	if err := policy.Require(actor, policy.CanAccessOwnedResource(actor, false, comment.AuthorID)); err != nil {
		return nil, err
	}
	return comment, nil
}

func (service *Service) requireThread(context context.Context, thread Thread) error {
	exists, err := service.repo.ThreadExists(context, thread)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}

func check(comment *Comment) error {
	return (&validate.Validator{}).Required("text", comment.Text).Err()
}
