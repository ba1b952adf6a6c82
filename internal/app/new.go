package app

import (
	"context"
	"errors"

	"reportctl/internal/model"
)

// New wires the transport, the gateway, the session and the synchronizer.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Config == nil {
		return nil, errors.New("app: config is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("app: logger is required")
	}

	a := &App{
		l:   cfg.Logger,
		cfg: cfg.Config,
	}

	a.setupTransport(cfg)

	if err := a.setupSessionDomain(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := a.setupReportDomain(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}

	if cfg.OneShot {
		a.session.Subscribe(func(s model.Session) {
			if !s.Authenticated() {
				a.reports.Stop()
			}
		})
		return a, nil
	}

	// Polling runs exactly while the session is authenticated.
	a.session.Subscribe(a.reports.OnSessionChange)

	return a, nil
}

// Close stops polling and releases storage connections.
func (a *App) Close() error {
	if a.reports != nil {
		a.reports.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
