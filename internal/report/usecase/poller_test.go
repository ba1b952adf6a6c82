package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportctl/internal/apitest"
	"reportctl/internal/gateway"
	"reportctl/internal/model"
	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/log"
)

type stubSession struct {
	mu    sync.Mutex
	token string
	gen   uint64
}

func (s *stubSession) Credentials() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.gen
}

func (s *stubSession) Invalidate(context.Context, uint64) {}

func newBackendGateway(t *testing.T) (*apitest.Server, *gateway.Gateway) {
	t.Helper()
	srv := apitest.New(t)
	srv.AddUser("a@b.com", "alice", "secret")
	client := pkghttp.NewClient(pkghttp.ClientConfig{Timeout: 2 * time.Second, RetryWait: time.Millisecond})
	gw := gateway.New(log.NewNop(), client, srv.URL)
	gw.Attach(&stubSession{token: srv.IssueToken("a@b.com"), gen: 1})
	return srv, gw
}

func TestPollingRefreshesImmediatelyAndOnInterval(t *testing.T) {
	srv, gw := newBackendGateway(t)
	srv.SetReports(apitest.Report("a", "https://github.com/acme/a", "completed"))
	uc := newTestUseCase(t, gw, Config{PollInterval: 20 * time.Millisecond})

	uc.Start()
	uc.Start()

	require.Eventually(t, func() bool { return len(uc.List()) == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return srv.Calls(apitest.RouteReports) >= 4 }, time.Second, 5*time.Millisecond)

	srv.SetReports(
		apitest.Report("b", "https://github.com/acme/b", "processing"),
		apitest.Report("a", "https://github.com/acme/a", "completed"),
	)
	require.Eventually(t, func() bool { return len(uc.List()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestStopEndsPollingAndClearsList(t *testing.T) {
	srv, gw := newBackendGateway(t)
	srv.SetReports(apitest.Report("a", "https://github.com/acme/a", "completed"))
	uc := newTestUseCase(t, gw, Config{PollInterval: 20 * time.Millisecond})

	uc.Start()
	require.Eventually(t, func() bool { return len(uc.List()) == 1 }, time.Second, 5*time.Millisecond)

	uc.Stop()
	assert.Empty(t, uc.List())

	// Let requests already on the wire land, then nothing more may be sent.
	time.Sleep(30 * time.Millisecond)
	calls := srv.Calls(apitest.RouteReports)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, calls, srv.Calls(apitest.RouteReports))
	assert.Empty(t, uc.List())
}

func TestHungRequestDoesNotDelayNextTick(t *testing.T) {
	srv, gw := newBackendGateway(t)
	release := make(chan struct{})
	var once sync.Once
	srv.Hook(apitest.RouteReports, func() {
		blocked := false
		once.Do(func() { blocked = true })
		if blocked {
			<-release
		}
	})
	defer close(release)

	uc := newTestUseCase(t, gw, Config{PollInterval: 20 * time.Millisecond})
	uc.Start()

	require.Eventually(t, func() bool { return srv.Calls(apitest.RouteReports) >= 3 }, time.Second, 5*time.Millisecond)
}

func TestOnSessionChangeDrivesPolling(t *testing.T) {
	srv, gw := newBackendGateway(t)
	srv.SetReports(apitest.Report("a", "https://github.com/acme/a", "completed"))
	uc := newTestUseCase(t, gw, Config{PollInterval: time.Hour})
	user := &model.User{ID: "1", Username: "alice"}

	uc.OnSessionChange(model.Session{Status: model.SessionVerifying, Token: "t", Generation: 1})
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, srv.Calls(apitest.RouteReports))

	uc.OnSessionChange(model.Session{Status: model.SessionAuthenticated, Token: "t", User: user, Generation: 1})
	require.Eventually(t, func() bool { return len(uc.List()) == 1 }, time.Second, 5*time.Millisecond)

	// Same session again: the running poller is kept.
	uc.OnSessionChange(model.Session{Status: model.SessionAuthenticated, Token: "t", User: user, Generation: 1})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, srv.Calls(apitest.RouteReports))

	// A new login restarts with a fresh refresh.
	uc.OnSessionChange(model.Session{Status: model.SessionAuthenticated, Token: "u", User: user, Generation: 2})
	require.Eventually(t, func() bool { return srv.Calls(apitest.RouteReports) == 2 }, time.Second, 5*time.Millisecond)

	uc.OnSessionChange(model.Session{Status: model.SessionAnonymous, Generation: 3})
	assert.Empty(t, uc.List())
	uc.mu.Lock()
	assert.Nil(t, uc.stop)
	uc.mu.Unlock()
}
