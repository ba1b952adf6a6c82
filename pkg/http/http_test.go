package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRetriesIdempotentRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 2, RetryWait: time.Millisecond})
	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(resp.Body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientReturnsLastServerErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"down"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 1, RetryWait: time.Millisecond})
	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.JSONEq(t, `{"error":"down"}`, string(resp.Body))
}

func TestClientDoesNotRetryPost(t *testing.T) {
	var calls atomic.Int32
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, ContentTypeJSON, r.Header.Get(HeaderContentType))
		assert.Equal(t, "abc", r.Header.Get(HeaderRequestID))
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 3, RetryWait: time.Millisecond})
	resp, err := c.Post(context.Background(), srv.URL, map[string]string{"k": "v"}, map[string]string{HeaderRequestID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "v", got["k"])
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 1, RetryWait: time.Millisecond})
	_, err := c.Get(context.Background(), url, nil)
	assert.Error(t, err)
}

func TestClientRejectsOversizedBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write(bytes.Repeat([]byte("x"), 1024+16))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 2, RetryWait: time.Millisecond, MaxBodyBytes: 1024})
	resp, err := c.Get(context.Background(), srv.URL, nil)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientAcceptsBodyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), 1024))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, MaxBodyBytes: 1024})
	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 1024)
}

func TestClientDefaultBodyLimit(t *testing.T) {
	c := NewClient(ClientConfig{}).(*clientImpl)
	assert.Equal(t, int64(MaxBodyBytes), c.config.MaxBodyBytes)
}
