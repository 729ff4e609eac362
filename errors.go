package stellaria

import (
	"errors"
	"fmt"

	"github.com/stellaria/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidDateRange is returned by ParamsBuilder.Build when the
	// range's start date is after its end date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidCount is returned by ParamsBuilder.Build when the random
	// sample count is outside [1, MaxCount].
	ErrInvalidCount = errors.New("invalid count")

	// ErrDateOutOfRange is returned by ParamsBuilder.Build when a date
	// falls outside the archive window (FirstEntryDate through today).
	ErrDateOutOfRange = errors.New("date out of range")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrNotFound is returned when no entry exists for the request.
	ErrNotFound = errors.New("entry not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StellariaError is implemented by all SDK errors.
type StellariaError interface {
	error
	StellariaError() // marker method
}

// APIError represents an HTTP error from the NASA API.
type APIError struct {
	StatusCode int
	Code       string // upstream error code, e.g. "API_KEY_INVALID"
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// StellariaError implements the StellariaError interface.
func (e *APIError) StellariaError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StellariaError implements the StellariaError interface.
func (e *NetworkError) StellariaError() {}

// ParamsError reports why a staged parameter set failed validation. It
// wraps one of the builder sentinels (ErrInvalidDateRange, ErrInvalidCount,
// ErrDateOutOfRange) and is always recoverable: adjust the inputs and
// build again.
type ParamsError struct {
	Sentinel error
	Detail   string
}

func (e *ParamsError) Error() string {
	return fmt.Sprintf("invalid parameters: %s", e.Detail)
}

// Unwrap returns the sentinel this error wraps.
func (e *ParamsError) Unwrap() error {
	return e.Sentinel
}

// StellariaError implements the StellariaError interface.
func (e *ParamsError) StellariaError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}
