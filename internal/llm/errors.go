package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit is returned when the vendor answered 429.
type ErrRateLimit struct {
	RetryAfter time.Duration // zero when the vendor gave no hint
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned when the model's output is not valid JSON
// or does not match the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is returned when the vendor cannot serve the
// request. Permanent failures, such as a rejected API key, are not worth
// retrying.
type ErrProviderUnavailable struct {
	Status    int
	Permanent bool
	Err       error
}

func (e *ErrProviderUnavailable) Error() string {
	switch {
	case e.Err == nil:
		return "LLM provider unavailable"
	case e.Status != 0:
		return fmt.Sprintf("LLM provider unavailable (HTTP %d): %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is returned when structured output was cut off by
// the token limit. Content holds the partial output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model response truncated at the token limit"
}

// classify turns a failed vendor call into one of the typed errors.
// status is 0 when no HTTP response was received.
func classify(status int, header http.Header, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	case status >= 400 && status < 500 && status != http.StatusRequestTimeout:
		return &ErrProviderUnavailable{Status: status, Permanent: true, Err: err}
	default:
		return &ErrProviderUnavailable{Status: status, Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
