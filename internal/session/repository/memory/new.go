package memory

import (
	"context"
	"sync"

	"reportctl/internal/session/repository"
)

type implRepository struct {
	mu    sync.Mutex
	token string
}

// New returns a process-local token store.
func New() repository.TokenRepository {
	return &implRepository{}
}

func (r *implRepository) Load(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token, nil
}

func (r *implRepository) Save(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	return nil
}

func (r *implRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	return nil
}
