package zoom

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// maxErrorBodyBytes caps how much of an error response body is kept for the
// error message.
const maxErrorBodyBytes = 512

// AuthError indicates the provider rejected our credentials or token.
// It stops the whole run and disables scheduled runs until the credentials
// are re-verified.
type AuthError struct {
	Op     string
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: authentication rejected (status %d): %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: authentication rejected (status %d)", e.Op, e.Status)
}

// RateLimitError indicates the provider is throttling us. RetryAfter is the
// provider-supplied wait, zero when the response carried none.
type RateLimitError struct {
	Op         string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limited, retry after %s", e.Op, e.RetryAfter)
	}
	return fmt.Sprintf("%s: rate limited", e.Op)
}

// TransportError indicates a network-level failure or a server-side (5xx)
// response. It is transparently retried and surfaces only after the retry
// schedule is exhausted.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: server error (status %d)", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError indicates an expected absence, e.g. a transcript the
// provider has not finished processing. Callers skip it silently.
type NotFoundError struct {
	Op       string
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Op, e.Resource)
}

// RequestError indicates a non-retryable client error (4xx other than the
// auth, not-found and rate-limit classes).
type RequestError struct {
	Op     string
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: request rejected (status %d): %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: request rejected (status %d)", e.Op, e.Status)
}

// IsAuth reports whether err is classified as an authentication failure.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsRateLimit reports whether err is classified as provider throttling.
func IsRateLimit(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// IsNotFound reports whether err is an expected-absence outcome.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// retryable reports whether the retry layer may attempt err again.
// Network failures, 5xx and 429 are retryable; everything else propagates
// immediately.
func retryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var re *RateLimitError
	return errors.As(err, &re)
}

// classifyResponse converts a non-2xx HTTP response into a structured error
// at the transport boundary. The body is consumed (up to a small cap) so the
// caller can close the response unconditionally.
func classifyResponse(op string, resp *http.Response) error {
	detail := readErrorDetail(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Op: op, Status: resp.StatusCode, Detail: detail}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Op: op, Resource: resp.Request.URL.Path}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Op: op, RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return &TransportError{Op: op, Status: resp.StatusCode}
	default:
		return &RequestError{Op: op, Status: resp.StatusCode, Detail: detail}
	}
}

func readErrorDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return string(b)
}

// parseRetryAfter parses a Retry-After header value in seconds. HTTP-date
// values are ignored; the retry layer falls back to its fixed schedule.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
