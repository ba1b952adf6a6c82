package http

import (
	"net/http"
	"time"
)

// ClientConfig holds configuration for the HTTP client.
type ClientConfig struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	// MaxBodyBytes caps a response body; zero means MaxBodyBytes.
	MaxBodyBytes int64
}

// Request describes one outgoing call. Body is JSON-encoded unless it is a []byte.
type Request struct {
	Method  string
	URL     string
	Body    any
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the canonical text for the response status.
func (r *Response) StatusText() string {
	return http.StatusText(r.StatusCode)
}

// clientImpl implements IClient.
type clientImpl struct {
	client *http.Client
	config ClientConfig
}
