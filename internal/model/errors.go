package model

import "errors"

// Validation errors surfaced to the caller. Detector failures are never
// among them: those degrade into unavailable signal scores instead.
var (
	// ErrEmptyDocument is returned when the input document is empty or
	// entirely whitespace
	ErrEmptyDocument = errors.New("document is empty")

	// ErrInvalidConfig is returned for malformed weights or an
	// out-of-range threshold, before any scoring work begins
	ErrInvalidConfig = errors.New("invalid configuration")
)
