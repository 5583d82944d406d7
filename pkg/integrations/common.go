package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound matches upstream 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and matches 5xx responses.
	ErrNetwork = errors.New("network error")

	// ErrRateLimited matches responses rejected because the API quota is exhausted.
	ErrRateLimited = errors.New("rate limited")
)

// StatusError is returned for any non-2xx upstream response.
// It keeps the upstream status code and message so callers can report them.
//
// StatusError matches the sentinel errors through errors.Is:
//
//	errors.Is(err, integrations.ErrNotFound)    // 404
//	errors.Is(err, integrations.ErrRateLimited) // 429, or 403 with no quota left
//	errors.Is(err, integrations.ErrNetwork)     // 5xx
type StatusError struct {
	StatusCode  int
	Message     string
	RateLimited bool
	// Body is the start of the raw response body.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

// Is reports whether the status error corresponds to target.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.RateLimited
	case ErrNetwork:
		return e.StatusCode >= 500
	}
	return false
}

// StatusCode extracts the upstream status code from err, or 0 if err does
// not carry one.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// NewHTTPClient creates an HTTP client with the standard upstream timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
