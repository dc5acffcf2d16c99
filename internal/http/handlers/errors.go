// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses via the `fail()` helper. These codes give clients a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless noted.
//   - Generic codes (not_found, method_not_allowed) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (list_failed) are reserved for business logic
//     errors that cannot be conveyed by status alone.
//
// Handlers select the most specific matching code and pass it to `fail()`
// along with the corresponding HTTP status and message. Clients are expected
// to branch on these codes for programmatic error handling.
//
// The recovery and rate-limiting middleware emit "internal_error" and
// "rate_limited" envelopes of the same shape directly; those codes live
// with the middleware because importing this package from there would
// invert the dependency.
package handlers

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeListFailed = "list_failed"
)
