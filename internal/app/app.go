package app

import (
	"reportctl/config"
	"reportctl/internal/gateway"
	"reportctl/internal/report"
	reportRepo "reportctl/internal/report/repository"
	"reportctl/internal/session"
	sessionRepo "reportctl/internal/session/repository"
	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/log"
)

// App is the report lifecycle facade used by the CLI. It owns the single
// session and the single report list and keeps their lifetimes coupled.
type App struct {
	l   log.Logger
	cfg *config.Config

	client  pkghttp.IClient
	gw      *gateway.Gateway
	session session.UseCase
	reports report.UseCase

	checks  []healthCheck
	closers []func() error
}

type Config struct {
	Logger log.Logger
	Config *config.Config

	// OneShot skips background polling for processes that run one command
	// and exit; the list is fetched only on demand.
	OneShot bool

	// Optional overrides; when nil they are built from Config.
	HTTPClient pkghttp.IClient
	TokenRepo  sessionRepo.TokenRepository
	Mirror     reportRepo.ArtifactRepository
}
