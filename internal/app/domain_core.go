package app

import (
	"reportctl/internal/gateway"
	pkghttp "reportctl/pkg/http"
)

func (a *App) setupTransport(cfg Config) {
	a.client = cfg.HTTPClient
	if a.client == nil {
		a.client = pkghttp.NewClient(pkghttp.ClientConfig{
			Timeout:      a.cfg.API.Timeout,
			Retries:      a.cfg.API.Retries,
			RetryWait:    a.cfg.API.RetryWait,
			MaxBodyBytes: a.cfg.API.MaxBodyBytes,
		})
	}
	a.gw = gateway.New(a.l, a.client, a.cfg.API.BaseURL)
	a.addCheck("api", a.checkAPI)
}
