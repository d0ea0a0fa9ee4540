package integration

import "errors"

// ---------------------------------------------------------------------------
// Integration Errors
// ---------------------------------------------------------------------------

var (
	// Fatal errors: abort before any mutation
	ErrUnauthorized        = errors.New("integration: unknown API key")
	ErrIntegrationInactive = errors.New("integration: integration is not active")
	ErrIntegrationNotFound = errors.New("integration: integration not found")

	// Upstream errors: scoped to one entity kind, non-fatal to a sync run
	ErrUpstreamFetch    = errors.New("integration: upstream fetch failed")
	ErrUpstreamResponse = errors.New("integration: invalid upstream response")

	// Record errors: scoped to one record, counted and skipped
	ErrRecordResolution = errors.New("integration: record resolution failed")
	ErrRecordShape      = errors.New("integration: unexpected record shape")

	// Signature mismatch is logged, never fatal, unless the company
	// opts into strict signature checking
	ErrSignatureMismatch = errors.New("integration: webhook signature mismatch")
)
