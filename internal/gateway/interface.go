package gateway

import (
	"context"

	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/log"
)

// Doer performs authenticated calls against the backend.
//
//go:generate mockery --name Doer
type Doer interface {
	Do(ctx context.Context, req Request) (*pkghttp.Response, error)
}

// Session is the side of the session manager the gateway needs: the current
// credentials and a way to tear the session down on 401.
type Session interface {
	Credentials() (token string, generation uint64)
	Invalidate(ctx context.Context, generation uint64)
}

// New creates the authenticated request gateway. The session is attached
// later with Attach because the session manager itself calls through the
// gateway.
func New(l log.Logger, client pkghttp.IClient, baseURL string) *Gateway {
	return &Gateway{
		l:       l,
		client:  client,
		baseURL: baseURL,
	}
}
