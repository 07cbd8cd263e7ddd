// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// CommentIDParam names the URL parameter holding the comment identifier.
const CommentIDParam = "commentID"

// Handler implements the HTTP layer for comments.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns the comment endpoints, mounted under
// /titles/{titleID}/reviews/{reviewID}/comments.
//
// # Endpoints
//   - GET, POST /                     : Comments of the review (writes authenticated).
//   - GET, PATCH, DELETE /{commentID} : Single comment (writes by author or staff).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Authorize(policy.CanAccessCollection)).Get("/", handler.list)
	router.With(middleware.Authorize(policy.CanAccessCollection)).Post("/", handler.create)

	router.Get("/{commentID}", handler.get)
	router.With(middleware.RequireAuth).Patch("/{commentID}", handler.update)
	router.With(middleware.RequireAuth).Delete("/{commentID}", handler.delete)

	return router
}

type textRequest struct {
	Text string `json:"text" validate:"required"`
}

type patchRequest struct {
	Text *string `json:"text" validate:"omitempty,min=1"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	thread, err := threadOf(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	comments, total, err := handler.commentService.List(request.Context(), thread, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	thread, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Get(request.Context(), thread, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	thread, err := threadOf(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input textRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), requestutil.Actor(request), thread, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	thread, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input patchRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), requestutil.Actor(request), thread, commentID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	thread, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), requestutil.Actor(request), thread, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Helpers

func threadOf(request *http.Request) (Thread, error) {
	titleID, reviewID, err := review.PathIDs(request)
	if err != nil {
		return Thread{}, err
	}
	return Thread{TitleID: titleID, ReviewID: reviewID}, nil
}

func pathIDs(request *http.Request) (Thread, int64, error) {
	thread, err := threadOf(request)
	if err != nil {
		return Thread{}, 0, err
	}

	commentID, err := requestutil.Int64Param(request, CommentIDParam, resource)
	if err != nil {
		return Thread{}, 0, err
	}
	return thread, commentID, nil
}
