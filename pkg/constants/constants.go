// Package constants defines system-wide constants for the academic administration service.
package constants

import "time"

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for values stored in request contexts.
type ContextKey string

const (
	// ContextKeyRequestID holds the per-request correlation ID
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID holds the OpenTelemetry trace ID of the request
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyClaims holds the verified token claims
	ContextKeyClaims ContextKey = "claims"

	// ContextKeyUserID holds the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
)

// ================================================================================
// HTTP Headers
// ================================================================================

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// ================================================================================
// Pagination
// ================================================================================

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultRiskHistoryLimit is used when a history request carries no limit
	DefaultRiskHistoryLimit = 10
)

// ================================================================================
// Authentication
// ================================================================================

const (
	// LoginMaxFailures is the number of failed logins tolerated inside LoginFailureWindow
	LoginMaxFailures = 5

	// LoginFailureWindow starts at the first failed login and bounds the count
	LoginFailureWindow = 15 * time.Minute

	// AccessTokenDefaultTTL is the default lifetime for access tokens
	AccessTokenDefaultTTL = 1 * time.Hour

	// TokenIssuer is the iss claim of every token this service signs
	TokenIssuer = "acadmin"
)

// ================================================================================
// Environments
// ================================================================================

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// ================================================================================
// Events
// ================================================================================

const (
	EventRiskAssessed        = "risk.assessed"
	EventReservationCreated  = "reservation.created"
	EventReservationCanceled = "reservation.cancelled"
	EventApplicationDecided  = "internship.application_decided"
	EventTokenRevoked        = "auth.token_revoked"
)
