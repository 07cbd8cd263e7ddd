// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across YaMDB layers:
// server timings, rate limits, token issuer, header names, and key prefixes.
package constants

import "time"

// # Metadata

const (
	AppName    = "yamdb-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds one request from routing to the last byte written.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Per client IP.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Buckets idle longer than RateLimitClientTTL are swept every RateLimitCleanupInterval.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the "iss" claim of every access token.
	AuthIssuer = "yamdb.app"

	// AllowedOriginSuffix is the production origin accepted by CORS.
	AllowedOriginSuffix = "yamdb.app"
)

// # HTTP

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderRetryAfter    = "Retry-After"
)

// # Health Payload

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
)

// # Redis Keys

const (
	RedisPrefixSignupCooldown = "auth:signup_cooldown:"
)
