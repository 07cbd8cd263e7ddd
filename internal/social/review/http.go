// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

const (
	// TitleIDParam and ReviewIDParam name the URL parameters of the review routes.
	TitleIDParam  = "titleID"
	ReviewIDParam = "reviewID"
)

// Handler implements the HTTP layer for reviews.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns the review endpoints, mounted under /titles/{titleID}/reviews.
//
// # Endpoints
//   - GET, POST /                    : Reviews of the title (writes authenticated).
//   - GET, PATCH, DELETE /{reviewID} : Single review (writes by author or staff).
//
// nested registers child resources (comments) under /{reviewID}.
func (handler *Handler) Routes(nested func(r chi.Router)) chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Authorize(policy.CanAccessCollection)).Get("/", handler.list)
	router.With(middleware.Authorize(policy.CanAccessCollection)).Post("/", handler.create)

	router.Route("/{reviewID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.With(middleware.RequireAuth).Patch("/", handler.update)
		r.With(middleware.RequireAuth).Delete("/", handler.delete)

		if nested != nil {
			nested(r)
		}
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

type updateRequest struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

// # Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.Int64Param(request, TitleIDParam, titleResource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.List(request.Context(), titleID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := PathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.Int64Param(request, TitleIDParam, titleResource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Create(request.Context(), requestutil.Actor(request), titleID, input.Text, input.Score)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := PathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Update(request.Context(), requestutil.Actor(request), titleID, reviewID, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := PathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.Delete(request.Context(), requestutil.Actor(request), titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// PathIDs parses the title and review identifiers of a nested route.
func PathIDs(request *http.Request) (titleID, reviewID int64, err error) {
	if titleID, err = requestutil.Int64Param(request, TitleIDParam, titleResource); err != nil {
		return 0, 0, err
	}
	if reviewID, err = requestutil.Int64Param(request, ReviewIDParam, resource); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
