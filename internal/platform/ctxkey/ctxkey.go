// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey declares the keys under which middleware stores per-request
// values. Read them through package ctxutil rather than directly.
package ctxkey

// key is unexported so no other package can mint a colliding key.
type key int

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = iota + 1

	// KeyUser holds the verified access token claims.
	KeyUser

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger

	// KeyLocale holds the negotiated response language.
	KeyLocale
)
