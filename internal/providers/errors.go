package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when no upstream provider is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// TransportError covers connection failures and non-success HTTP statuses.
type TransportError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: unexpected status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: transport: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a response arrived but was malformed or missing a required field.
type DecodeError struct {
	Provider string
	Op       string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s: missing or invalid %s", e.Provider, e.Op, e.Field)
	}
	return fmt.Sprintf("%s %s: decode: %v", e.Provider, e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsTransport reports whether err is a transport-level failure, rate limits included.
func IsTransport(err error) bool {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return true
	}
	_, ok := AsRateLimitError(err)
	return ok
}

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool {
	var dErr *DecodeError
	return errors.As(err, &dErr)
}

// Kind classifies err for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsDecode(err):
		return "decode"
	case IsTransport(err):
		return "transport"
	default:
		return "other"
	}
}
