// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/policy"
)

// MaxBodyBytes caps the size of JSON request bodies.
const MaxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body, decodes it into target and runs the
struct-tag validation rules declared on it.

Parameters:
  - request: *http.Request
  - writer: http.ResponseWriter (used to enforce [MaxBodyBytes])
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, VALIDATION_ERROR if a rule fails
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, MaxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return validate.ErrInvalidJSON
		}
		return validate.ErrInvalidJSON.WithCause(err)
	}

	return validate.Struct(target)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a numeric URL parameter.

A malformed identifier can never address a row, so it is reported as
NOT_FOUND for resource.
*/
func Int64Param(request *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}

	return id, nil
}

/*
Query returns the trimmed value of a query parameter.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
Actor returns the acting identity of the request (anonymous when no token was sent).
*/
func Actor(request *http.Request) policy.Actor {
	return ctxutil.GetActor(request.Context())
}

/*
RequiredActor ensures the request is authenticated and returns the actor.

Returns:
  - policy.Actor: The authenticated actor
  - error: policy.ErrUnauthenticated if no credentials were presented
*/
func RequiredActor(request *http.Request) (policy.Actor, error) {
	actor := Actor(request)
	if !actor.IsAuthenticated() {
		return actor, policy.ErrUnauthenticated
	}
	return actor, nil
}
