package services

import (
	"errors"

	"github.com/dmolina/promptbox/internal/llm"
)

// Standard service errors
var (
	// ErrCredentialMissing is the provider sentinel surfaced at the service
	// boundary so callers need not import llm directly.
	ErrCredentialMissing = llm.ErrCredentialMissing

	ErrRateLimited        = errors.New("rate limited")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrModelUnavailable   = errors.New("model unavailable")
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidFormat marks model output that could not be parsed into the
	// structure an operation expects
	ErrInvalidFormat = errors.New("invalid format")
)

// IsRetryableError determines if an error could succeed on a later attempt.
// The pipeline itself never retries; this exists for callers that want to
// surface a "try again" hint.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServiceUnavailable)
}

// IsPermanentError determines if an error is permanent
func IsPermanentError(err error) bool {
	return errors.Is(err, ErrCredentialMissing) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidFormat)
}
