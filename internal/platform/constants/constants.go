// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Identity: Reserved owner designation and JWT issuer.
  - Guest Mode: Prompt scheduling and configuration fault marker.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "avhub-api"
	AppVersion = "0.1.0-dev"
)

// # Owner Designation

const (
	// OwnerUsername is the reserved, singleton username for the platform owner.
	// Signup with this username is rejected unless paired with [OwnerEmail].
	OwnerUsername = "AV3"

	// OwnerEmail is the single email address the owner username is bound to.
	// The binding is enforced at signup, never derived at read time.
	OwnerEmail = "sircats42@gmail.com"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

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

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "av3hub.app"
)

// # Provisioning & Session Resolution

const (
	// ProfileRetryInterval is how long the session resolver waits before
	// re-fetching a profile record that has not been provisioned yet.
	ProfileRetryInterval = 2 * time.Second

	// ProvisionPollInterval is how often the provisioner worker drains the
	// pending-profile queue.
	ProvisionPollInterval = 1 * time.Second
)

// # Guest Mode

const (
	// GuestPromptInitialDelay is how long after entering guest mode the
	// sign-up prompt first appears.
	GuestPromptInitialDelay = 30 * time.Second

	// GuestPromptRearmDelay is how long the prompt stays away after the
	// visitor chooses to continue as guest.
	GuestPromptRearmDelay = 120 * time.Second

	// ConfigFaultMarker is the substring that identifies a configuration-shaped
	// fault at the recovery boundary.
	ConfigFaultMarker = "backend configuration"
)

// # Request Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaHub   = "hub"
	SchemaUsers = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
	RedisKeyProvisionJobs = "users:provision:pending"
)

// # Blob Storage Buckets

const (
	BucketAvatars  = "avatars"
	BucketPrograms = "programs"
)
