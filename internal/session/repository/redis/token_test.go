package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportctl/pkg/log"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.data[key] = value.(string)
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return f.err
}

func (f *fakeRedis) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, f.err
}

func (f *fakeRedis) Close() error { return nil }
func (f *fakeRedis) Ping(_ context.Context) error { return f.err }

func TestRedisTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := New(rdb, "reportctl:auth_token", log.NewNop())

	tok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, repo.Save(ctx, "tok"))
	assert.Equal(t, "tok", rdb.data["reportctl:auth_token"])

	tok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	require.NoError(t, repo.Clear(ctx))
	tok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestRedisLoadPropagatesFailures(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")

	_, err := New(rdb, "k", log.NewNop()).Load(context.Background())
	assert.EqualError(t, err, "connection refused")
}
