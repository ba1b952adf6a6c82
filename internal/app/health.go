package app

import (
	"context"
	"fmt"

	pkgErrors "reportctl/pkg/errors"
)

// CheckResult is the outcome of one readiness check. Err is nil when the
// backend is reachable.
type CheckResult struct {
	Name string
	Err  error
}

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

func (a *App) addCheck(name string, fn func(ctx context.Context) error) {
	a.checks = append(a.checks, healthCheck{name: name, fn: fn})
}

// Ready checks every configured backend: the report API always, Redis when
// it holds the token, MinIO when it mirrors artifacts.
func (a *App) Ready(ctx context.Context) []CheckResult {
	results := make([]CheckResult, 0, len(a.checks))
	for _, c := range a.checks {
		err := c.fn(ctx)
		if err != nil {
			a.l.Warnf(ctx, "app.Ready: %s: %v", c.name, err)
		}
		results = append(results, CheckResult{Name: c.name, Err: err})
	}
	return results
}

// checkAPI treats any answer below 500 as reachable; authentication is not
// part of readiness.
func (a *App) checkAPI(ctx context.Context) error {
	resp, err := a.client.Get(ctx, a.cfg.API.BaseURL, nil)
	if err != nil {
		return pkgErrors.Transport("app.checkAPI", err)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("app.checkAPI: %s answered %d %s", a.cfg.API.BaseURL, resp.StatusCode, resp.StatusText())
	}
	return nil
}
