// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie and CSRF field configuration.
  - Persistence: Document collection names and Redis key prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "camellia"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Generous enough to cover multipart image uploads on slow links.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions & CSRF

const (
	// SessionCookieName is the name of the cookie carrying the opaque session ID.
	SessionCookieName = "camellia_session"

	// DefaultSessionTTL is the session lifetime when SESSION_TTL is not configured.
	DefaultSessionTTL = 24 * time.Hour

	// CSRFFieldName is the hidden form field carrying the anti-forgery token.
	CSRFFieldName = "_csrf"

	// CSRFHeaderName is the request header alternative to the form field.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFSecretLength is the byte length of the per-session CSRF secret.
	CSRFSecretLength = 32
)

// # Uploads

const (
	// UploadFieldName is the sole multipart form field accepted for product images.
	UploadFieldName = "image"

	// MaxUploadBytes bounds the multipart form held in memory while parsing.
	MaxUploadBytes = 10 << 20 // 10 MiB
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Document Collections

const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionSessions = "sessions"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "web:session:"
)
