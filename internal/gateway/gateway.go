package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	pkgErrors "reportctl/pkg/errors"
	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/log"
)

// Attach binds the session whose token is sent and which is invalidated on 401.
func (g *Gateway) Attach(s Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = s
}

// Do sends req with the current credentials. Any status other than 401 is
// returned as is; 401 invalidates the session that issued the request and
// yields ErrSessionInvalid.
func (g *Gateway) Do(ctx context.Context, req Request) (*pkghttp.Response, error) {
	g.mu.RLock()
	sess := g.session
	g.mu.RUnlock()
	if sess == nil {
		return nil, ErrNoSession
	}

	token, generation := sess.Credentials()
	requestID := uuid.NewString()
	ctx = log.WithRequestID(ctx, requestID)

	h := http.Header{}
	h.Set(pkghttp.HeaderContentType, pkghttp.ContentTypeJSON)
	h.Set(pkghttp.HeaderRequestID, requestID)
	if token != "" {
		h.Set(pkghttp.HeaderAuthorization, "Bearer "+token)
	}
	for k, v := range req.Headers {
		h.Set(k, v)
	}
	headers := make(map[string]string, len(h))
	for k := range h {
		headers[k] = h.Get(k)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := g.client.Do(ctx, pkghttp.Request{
		Method:  method,
		URL:     g.baseURL + req.Path,
		Body:    req.Body,
		Headers: headers,
	})
	if err != nil {
		g.l.Warnf(ctx, "gateway.Do: %s %s failed: %v", method, req.Path, err)
		return nil, pkgErrors.Transport("gateway.Do", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.l.Infof(ctx, "gateway.Do: %s %s returned 401, invalidating session", method, req.Path)
		sess.Invalidate(ctx, generation)
		return nil, ErrSessionInvalid
	}

	g.l.Debugf(ctx, "gateway.Do: %s %s -> %d", method, req.Path, resp.StatusCode)
	return resp, nil
}
