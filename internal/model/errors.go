package model

import "errors"

// Error kinds surfaced by the analysis pipeline. Components pass them
// through unchanged (wrapped with %w at most); only the HTTP handler
// translates them into boundary-facing messages.
var (
	// ErrInvalidQuery marks an empty or malformed channel query.
	ErrInvalidQuery = errors.New("invalid channel query")

	// ErrNotFound marks a query that resolved to no channel.
	ErrNotFound = errors.New("channel not found")

	// ErrUpstreamUnavailable marks a network, rate-limit, or service
	// failure while talking to YouTube.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
