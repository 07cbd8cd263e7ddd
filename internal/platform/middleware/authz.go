// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/policy"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService] so tests
// can inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityResolver loads the current role and flags of the account behind a token.
//
// A missing account must be reported as an [apperr.AppError] with status 404.
type IdentityResolver interface {
	ResolveIdentity(context context.Context, userID string) (*sec.TokenSubject, error)
}

// Decision is an authorization evaluator over the acting identity and the
// read-only nature of the request.
type Decision func(actor policy.Actor, isSafeMethod bool) bool

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Reload the account via [IdentityResolver]; role and superuser come from
//     storage, not from the token. A deleted account gets 401.
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Live Identity ──────────────────────────────────────────────
			subject, err := resolver.ResolveIdentity(request.Context(), claims.UserID)
			if err != nil {
				if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			current := *claims
			current.Username = subject.Username
			current.Role = subject.Role
			current.Superuser = subject.Superuser

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), &current)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("username", current.Username)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !ctxutil.GetActor(request.Context()).IsAuthenticated() {
			respond.Error(writer, request, policy.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// Authorize blocks requests rejected by decide.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Anonymous callers get
// 401 and identified callers lacking rights get 403, see [policy.Require].
//
//	router.With(middleware.Authorize(policy.CanAccessAdminResource)).Post("/", handler.create)
func Authorize(decide Decision) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())
			allowed := decide(actor, policy.IsSafeMethod(request.Method))

			if err := policy.Require(actor, allowed); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// ManageAccounts adapts [policy.CanManageAccounts] to a [Decision].
func ManageAccounts(actor policy.Actor, _ bool) bool {
	return policy.CanManageAccounts(actor)
}
