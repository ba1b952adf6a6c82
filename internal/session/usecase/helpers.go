package usecase

import (
	"encoding/json"
	"time"

	"reportctl/internal/model"
	"reportctl/internal/session"
)

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

type meResponse struct {
	User *model.User `json:"user"`
}

func decode(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

func (uc *implUseCase) snapshot() model.Session {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	s := uc.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// apply publishes next and notifies listeners. Callers hold transitionMu.
func (uc *implUseCase) apply(next model.Session) {
	uc.mu.Lock()
	uc.state = next
	uc.mu.Unlock()

	uc.listenersMu.Lock()
	listeners := append([]session.Listener(nil), uc.listeners...)
	uc.listenersMu.Unlock()

	snap := uc.snapshot()
	for _, l := range listeners {
		l(snap)
	}
}

func (uc *implUseCase) expiresAt(token string) time.Time {
	if uc.inspector == nil {
		return time.Time{}
	}
	t, _ := uc.inspector.ExpiresAt(token)
	return t
}
