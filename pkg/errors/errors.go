package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrTransport marks failures below HTTP: unreachable host, reset connection, timeout.
	ErrTransport = errors.New("network error")
	// ErrMalformedResponse marks a response whose body does not have the expected shape.
	ErrMalformedResponse = errors.New("malformed server response")
)

// ServerError is a non-2xx response the server rejected with.
type ServerError struct {
	Status  int
	Message string
}

// NewServerError builds a ServerError from a response body, taking the first
// non-empty string field among keys and falling back to fallback.
func NewServerError(status int, body []byte, fallback string, keys ...string) *ServerError {
	return &ServerError{
		Status:  status,
		Message: MessageFromBody(body, fallback, keys...),
	}
}

func (e *ServerError) Error() string {
	return e.Message
}

// MessageFromBody extracts a human-readable message from a JSON error body.
func MessageFromBody(body []byte, fallback string, keys ...string) string {
	if len(keys) == 0 {
		keys = []string{"error"}
	}
	if gjson.ValidBytes(body) {
		for _, k := range keys {
			if r := gjson.GetBytes(body, k); r.Exists() && r.Type == gjson.String {
				if msg := strings.TrimSpace(r.String()); msg != "" {
					return msg
				}
			}
		}
	}
	return fallback
}

// Transport wraps err so that errors.Is(err, ErrTransport) holds.
func Transport(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}

// Malformed wraps a decode failure so that errors.Is(err, ErrMalformedResponse) holds.
func Malformed(op string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, ErrMalformedResponse)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
}

// IsServerError reports whether err is (or wraps) a ServerError and returns it.
func IsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
