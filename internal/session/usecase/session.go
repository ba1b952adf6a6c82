package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/session"
	pkgErrors "reportctl/pkg/errors"
)

// Initialize restores the persisted session, if any, and verifies it with
// the backend. On a failure other than 401 the session is left VERIFYING
// with its token so a later call can retry.
func (uc *implUseCase) Initialize(ctx context.Context) error {
	if uc.Current().Authenticated() {
		return nil
	}

	token, err := uc.repo.Load(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "session.usecase.Initialize: load token: %v", err)
		return fmt.Errorf("session.usecase.Initialize: load token: %w", err)
	}
	if token == "" {
		return nil
	}

	uc.transitionMu.Lock()
	next := uc.snapshot()
	next.Token = token
	next.User = nil
	next.Status = model.SessionVerifying
	next.ExpiresAt = uc.expiresAt(token)
	next.Generation++
	uc.apply(next)
	uc.transitionMu.Unlock()
	generation := next.Generation

	resp, err := uc.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: session.PathMe})
	if err != nil {
		if errors.Is(err, gateway.ErrSessionInvalid) {
			uc.l.Infof(ctx, "session.usecase.Initialize: stored token rejected")
			return nil
		}
		uc.l.Warnf(ctx, "session.usecase.Initialize: verify: %v", err)
		return err
	}
	if !resp.OK() {
		fallback := fmt.Sprintf("%s: %d %s", session.MsgVerificationFailed, resp.StatusCode, resp.StatusText())
		uc.l.Warnf(ctx, "session.usecase.Initialize: verify: %s", fallback)
		return pkgErrors.NewServerError(resp.StatusCode, resp.Body, fallback)
	}

	var out meResponse
	if err := decode(resp.Body, &out); err != nil || out.User == nil {
		uc.l.Warnf(ctx, "session.usecase.Initialize: malformed /me response: %v", err)
		return pkgErrors.Malformed("session.usecase.Initialize", err)
	}

	uc.transitionMu.Lock()
	defer uc.transitionMu.Unlock()

	cur := uc.snapshot()
	if cur.Generation != generation || cur.Status != model.SessionVerifying {
		// Replaced or ended while the request was in flight.
		return nil
	}
	cur.User = out.User
	cur.Status = model.SessionAuthenticated
	uc.apply(cur)
	uc.l.Infof(ctx, "session.usecase.Initialize: authenticated as %s", out.User.Username)
	return nil
}

// Logout clears the persisted token and the in-memory session. It is safe to
// call any number of times.
func (uc *implUseCase) Logout(ctx context.Context) error {
	uc.transitionMu.Lock()
	defer uc.transitionMu.Unlock()
	return uc.logoutLocked(ctx)
}

// Invalidate ends the session only if generation is still the current one,
// so concurrent 401s and 401s from a replaced session are absorbed.
func (uc *implUseCase) Invalidate(ctx context.Context, generation uint64) {
	uc.transitionMu.Lock()
	defer uc.transitionMu.Unlock()

	if uc.snapshot().Generation != generation {
		uc.l.Debugf(ctx, "session.usecase.Invalidate: stale generation %d ignored", generation)
		return
	}
	if err := uc.logoutLocked(ctx); err != nil {
		uc.l.Errorf(ctx, "session.usecase.Invalidate: %v", err)
	}
}

func (uc *implUseCase) Current() model.Session {
	return uc.snapshot()
}

func (uc *implUseCase) Credentials() (string, uint64) {
	s := uc.snapshot()
	return s.Token, s.Generation
}

func (uc *implUseCase) Subscribe(l session.Listener) {
	uc.listenersMu.Lock()
	defer uc.listenersMu.Unlock()
	uc.listeners = append(uc.listeners, l)
}

func (uc *implUseCase) logoutLocked(ctx context.Context) error {
	clearErr := uc.repo.Clear(ctx)
	if clearErr != nil {
		uc.l.Errorf(ctx, "session.usecase.Logout: clear token: %v", clearErr)
	}

	cur := uc.snapshot()
	if cur.Status == model.SessionAnonymous && cur.Token == "" {
		return clearErr
	}

	uc.apply(model.Session{
		Status:     model.SessionAnonymous,
		Generation: cur.Generation + 1,
	})
	uc.l.Infof(ctx, "session.usecase.Logout: session ended")
	return clearErr
}
