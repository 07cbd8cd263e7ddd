// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/i18n"
)

// Locale resolves the response language once per request and stores it on the context.
func Locale() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tag := i18n.ResolveTag(request)
			writer.Header().Set("Content-Language", tag.String())

			ctx := ctxutil.WithLocale(request.Context(), tag)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
