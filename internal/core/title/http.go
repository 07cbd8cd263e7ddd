// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// TitleIDParam names the URL parameter holding the title identifier.
const TitleIDParam = "titleID"

// Handler implements the HTTP layer for the title catalog.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] configured with the title endpoints.
//
// # Endpoints
//   - GET, POST /                   : Filtered listing, creation (admin).
//   - GET, PATCH, DELETE /{titleID} : Single title (writes admin).
//
// nested registers child resources (reviews) under /{titleID}.
func (handler *Handler) Routes(nested func(r chi.Router)) chi.Router {
	router := chi.NewRouter()
	adminOnly := middleware.Authorize(policy.CanAccessAdminResource)

	router.With(adminOnly).Get("/", handler.list)
	router.With(adminOnly).Post("/", handler.create)

	router.Route("/{titleID}", func(r chi.Router) {
		r.With(adminOnly).Get("/", handler.get)
		r.With(adminOnly).Patch("/", handler.update)
		r.With(adminOnly).Delete("/", handler.delete)

		if nested != nil {
			nested(r)
		}
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        *int     `json:"year" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"omitempty,max=50,slug"`
	Genres      []string `json:"genre" validate:"omitempty,dive,max=50,slug"`
}

type updateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Genres      []string `json:"genre" validate:"omitempty,dive,max=50,slug"`
}

// # Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Category: requestutil.Query(request, "category"),
		Genre:    requestutil.Query(request, "genre"),
		Name:     requestutil.Query(request, "name"),
	}

	if raw := requestutil.Query(request, "year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.Invalid("year", "Enter a whole number"))
			return
		}
		filter.Year = &year
	}

	page := pagination.FromRequest(request)
	titles, total, err := handler.titleService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, TitleIDParam, resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Year:        *input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, TitleIDParam, resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, TitleIDParam, resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
