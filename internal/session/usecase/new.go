package usecase

import (
	"sync"

	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/session"
	"reportctl/internal/session/repository"
	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/jwt"
	"reportctl/pkg/log"
)

// Gateway is the authenticated transport the session verifies tokens through.
type Gateway interface {
	gateway.Doer
	Attach(s gateway.Session)
}

// implUseCase - the process-wide session manager
type implUseCase struct {
	l         log.Logger
	repo      repository.TokenRepository
	gw        gateway.Doer
	client    pkghttp.IClient
	inspector jwt.IInspector
	baseURL   string

	// transitionMu serializes transitions together with listener delivery.
	transitionMu sync.Mutex

	mu    sync.RWMutex
	state model.Session

	listenersMu sync.Mutex
	listeners   []session.Listener
}

// New creates the session manager and attaches it to gw, so that every 401
// seen by the gateway ends the session that issued the request.
// Login and Register go through client directly since they carry no token.
func New(
	l log.Logger,
	repo repository.TokenRepository,
	gw Gateway,
	client pkghttp.IClient,
	inspector jwt.IInspector,
	baseURL string,
) session.UseCase {
	uc := &implUseCase{
		l:         l,
		repo:      repo,
		gw:        gw,
		client:    client,
		inspector: inspector,
		baseURL:   baseURL,
		state:     model.Session{Status: model.SessionAnonymous},
	}
	gw.Attach(uc)
	return uc
}
