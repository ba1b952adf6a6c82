package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportctl/internal/apitest"
	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/session"
	"reportctl/internal/session/repository"
	"reportctl/internal/session/repository/memory"
	pkgErrors "reportctl/pkg/errors"
	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/jwt"
	"reportctl/pkg/log"
)

type fixture struct {
	srv  *apitest.Server
	repo repository.TokenRepository
	gw   *gateway.Gateway
	uc   session.UseCase

	mu     sync.Mutex
	events []model.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New(t)
	srv.AddUser("a@b.com", "alice", "secret")

	client := pkghttp.NewClient(pkghttp.ClientConfig{Timeout: 2 * time.Second, RetryWait: time.Millisecond})
	gw := gateway.New(log.NewNop(), client, srv.URL)
	repo := memory.New()

	f := &fixture{srv: srv, repo: repo, gw: gw}
	f.uc = New(log.NewNop(), repo, gw, client, jwt.New(), srv.URL)
	f.uc.Subscribe(func(s model.Session) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, s)
	})
	return f
}

func (f *fixture) statuses() []model.SessionStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.SessionStatus, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Status)
	}
	return out
}

func (f *fixture) storedToken(t *testing.T) string {
	t.Helper()
	tok, err := f.repo.Load(context.Background())
	require.NoError(t, err)
	return tok
}

func TestInitializeWithoutTokenStaysAnonymous(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.Initialize(context.Background()))
	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
	assert.Zero(t, f.srv.Calls(apitest.RouteMe))
	assert.Empty(t, f.statuses())
}

func TestInitializeVerifiesStoredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Save(ctx, f.srv.IssueToken("a@b.com")))

	require.NoError(t, f.uc.Initialize(ctx))

	cur := f.uc.Current()
	assert.True(t, cur.Authenticated())
	require.NotNil(t, cur.User)
	assert.Equal(t, "alice", cur.User.Username)
	assert.Equal(t, model.UserID("1"), cur.User.ID)
	assert.Equal(t, []model.SessionStatus{model.SessionVerifying, model.SessionAuthenticated}, f.statuses())

	// Already authenticated: nothing to do.
	require.NoError(t, f.uc.Initialize(ctx))
	assert.Equal(t, 1, f.srv.Calls(apitest.RouteMe))
}

func TestInitializeWithRejectedTokenLogsOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Save(ctx, "stale"))

	require.NoError(t, f.uc.Initialize(ctx))

	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
	assert.Empty(t, f.storedToken(t))
	assert.Equal(t, []model.SessionStatus{model.SessionVerifying, model.SessionAnonymous}, f.statuses())
}

func TestInitializeKeepsTokenOnServerFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := f.srv.IssueToken("a@b.com")
	require.NoError(t, f.repo.Save(ctx, tok))
	f.srv.Override(apitest.RouteMe, http.StatusInternalServerError, map[string]string{})

	err := f.uc.Initialize(ctx)
	se, ok := pkgErrors.IsServerError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, "Token verification failed: 500 Internal Server Error", se.Message)

	cur := f.uc.Current()
	assert.Equal(t, model.SessionVerifying, cur.Status)
	assert.Equal(t, tok, cur.Token)
	assert.Equal(t, tok, f.storedToken(t))

	f.srv.ClearOverride(apitest.RouteMe)
	require.NoError(t, f.uc.Initialize(ctx))
	assert.True(t, f.uc.Current().Authenticated())
}

func TestInitializeRejectsMalformedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Save(ctx, "tok"))
	f.srv.Override(apitest.RouteMe, http.StatusOK, map[string]string{"status": "ok"})

	err := f.uc.Initialize(ctx)
	assert.ErrorIs(t, err, pkgErrors.ErrMalformedResponse)
	assert.Equal(t, model.SessionVerifying, f.uc.Current().Status)
}

func TestLoginAuthenticatesAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.uc.Current().Generation

	u, err := f.uc.Login(ctx, model.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	cur := f.uc.Current()
	assert.True(t, cur.Authenticated())
	assert.Greater(t, cur.Generation, before)
	assert.Equal(t, cur.Token, f.storedToken(t))
	assert.True(t, cur.ExpiresAt.IsZero())
}

func TestLoginReadsExpiryFromJWT(t *testing.T) {
	f := newFixture(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(exp),
	}).SignedString([]byte("server-side-secret-server-side-secret"))
	require.NoError(t, err)
	f.srv.Override(apitest.RouteLogin, http.StatusOK, map[string]any{
		"access_token": tok,
		"user":         map[string]any{"id": 9, "username": "bob", "email": "bob@b.com"},
	})

	_, err = f.uc.Login(context.Background(), model.Credentials{Email: "bob@b.com", Password: "x"})
	require.NoError(t, err)
	assert.True(t, exp.Equal(f.uc.Current().ExpiresAt))
}

func TestLoginWithIncompleteResponseChangesNothing(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing token", body: map[string]any{"user": map[string]any{"id": 1, "username": "alice"}}},
		{name: "missing user", body: map[string]any{"access_token": "tok"}},
		{name: "not json", body: "<html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.srv.Override(apitest.RouteLogin, http.StatusOK, tt.body)
			before := f.uc.Current()

			_, err := f.uc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "secret"})
			assert.ErrorIs(t, err, pkgErrors.ErrMalformedResponse)
			assert.Equal(t, before, f.uc.Current())
			assert.Empty(t, f.storedToken(t))
			assert.Empty(t, f.statuses())
		})
	}
}

func TestLoginPropagatesServerMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "wrong"})
	se, ok := pkgErrors.IsServerError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "Invalid email or password", se.Message)
	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
}

func TestLoginValidatesBeforeSending(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), model.Credentials{Email: "a@b.com"})
	assert.ErrorIs(t, err, session.ErrRequiredField)
	assert.Zero(t, f.srv.Calls(apitest.RouteLogin))
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, model.Registration{Email: "c@d.com", Username: "carol", Password: "a", ConfirmPassword: "b"})
	assert.ErrorIs(t, err, session.ErrPasswordMismatch)
	assert.Zero(t, f.srv.Calls(apitest.RouteRegister))

	msg, err := f.uc.Register(ctx, model.Registration{Email: "c@d.com", Username: "carol", Password: "a", ConfirmPassword: "a"})
	require.NoError(t, err)
	assert.Equal(t, "Registration successful", msg)

	_, err = f.uc.Register(ctx, model.Registration{Email: "c@d.com", Username: "carol", Password: "a", ConfirmPassword: "a"})
	se, ok := pkgErrors.IsServerError(err)
	require.True(t, ok)
	assert.Equal(t, "User with this email already exists", se.Message)

	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
	assert.Empty(t, f.statuses())
}

func TestRegisterFallsBackToDefaultMessage(t *testing.T) {
	f := newFixture(t)
	f.srv.Override(apitest.RouteRegister, http.StatusCreated, map[string]any{})

	msg, err := f.uc.Register(context.Background(), model.Registration{Email: "c@d.com", Username: "carol", Password: "a", ConfirmPassword: "a"})
	require.NoError(t, err)
	assert.Equal(t, session.MsgRegistered, msg)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Logout(ctx))
	assert.Empty(t, f.statuses())

	_, err := f.uc.Login(ctx, model.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx))
	require.NoError(t, f.uc.Logout(ctx))

	assert.Equal(t, []model.SessionStatus{model.SessionAuthenticated, model.SessionAnonymous}, f.statuses())
	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
	assert.Empty(t, f.uc.Current().Token)
	assert.Empty(t, f.storedToken(t))
}

func TestConcurrent401sLogOutOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Login(ctx, model.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	f.srv.RevokeTokens()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.gw.Do(ctx, gateway.Request{Path: "/api/reports"})
			assert.ErrorIs(t, err, gateway.ErrSessionInvalid)
		}()
	}
	wg.Wait()

	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
	assert.Equal(t, []model.SessionStatus{model.SessionAuthenticated, model.SessionAnonymous}, f.statuses())
}

func TestStaleInvalidateIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Login(ctx, model.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	_, old := f.uc.Credentials()

	_, err = f.uc.Login(ctx, model.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	f.uc.Invalidate(ctx, old)
	assert.True(t, f.uc.Current().Authenticated())

	_, cur := f.uc.Credentials()
	f.uc.Invalidate(ctx, cur)
	assert.Equal(t, model.SessionAnonymous, f.uc.Current().Status)
}
