package gateway

import (
	"sync"

	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/log"
)

// Request is one authenticated call. Path is relative to the API base URL.
type Request struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

// Gateway is the single chokepoint for authenticated HTTP calls.
type Gateway struct {
	l       log.Logger
	client  pkghttp.IClient
	baseURL string

	mu      sync.RWMutex
	session Session
}
