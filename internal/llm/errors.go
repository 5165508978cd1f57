package llm

import (
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// AuthError indicates a missing or rejected credential.
type AuthError struct {
	Cause error
}

func (e *AuthError) Error() string {
	if e.Cause == nil {
		return "authentication failed: no API key configured"
	}
	return fmt.Sprintf("authentication failed: %v", e.Cause)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// QuotaError indicates rate or quota exhaustion, either reported by the
// backend (HTTP 429) or enforced locally by the daily usage tracker.
type QuotaError struct {
	Cause error
}

func (e *QuotaError) Error() string {
	if e.Cause == nil {
		return "quota exceeded"
	}
	return fmt.Sprintf("quota exceeded: %v", e.Cause)
}

func (e *QuotaError) Unwrap() error { return e.Cause }

// classifyError maps backend failures onto the error taxonomy. Anything that
// is not an auth or quota signal passes through unchanged.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return &AuthError{Cause: err}
		case 429:
			return &QuotaError{Cause: err}
		}
	}
	return err
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsQuotaError reports whether err is a quota failure.
func IsQuotaError(err error) bool {
	var quotaErr *QuotaError
	return errors.As(err, &quotaErr)
}
