package http

import "time"

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// MaxBodyBytes is the default cap on a response body (artifacts included).
	MaxBodyBytes = 64 << 20

	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderAccept        = "Accept"

	ContentTypeJSON = "application/json"
)
