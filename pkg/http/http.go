package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Get performs a GET request.
func (c *clientImpl) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url, Headers: headers})
}

// Post performs a POST request with JSON body.
func (c *clientImpl) Post(ctx context.Context, url string, body any, headers map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, Body: body, Headers: headers})
}

// Do performs req. Only idempotent methods are retried, on transport errors
// and 5xx; the last response is returned as is.
func (c *clientImpl) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	payload, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	attempts := 1
	if isIdempotent(req.Method) {
		attempts += c.config.Retries
	}

	var resp *Response
	for i := 0; i < attempts; i++ {
		resp, err = c.once(ctx, req, payload)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if ctx.Err() != nil || errors.Is(err, ErrBodyTooLarge) {
			break
		}
		if i < attempts-1 && c.config.RetryWait > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.config.RetryWait):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", attempts, err)
	}
	return resp, nil
}

func (c *clientImpl) once(ctx context.Context, req Request, payload []byte) (*Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, c.config.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.config.MaxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.config.MaxBodyBytes)
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		out, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		return out, nil
	}
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}
