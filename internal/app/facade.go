package app

import (
	"context"

	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/report"
	"reportctl/internal/session"
)

// Initialize restores and verifies the persisted session.
func (a *App) Initialize(ctx context.Context) error {
	return a.session.Initialize(ctx)
}

func (a *App) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	return a.session.Login(ctx, creds)
}

func (a *App) Register(ctx context.Context, reg model.Registration) (string, error) {
	return a.session.Register(ctx, reg)
}

func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// Session returns a snapshot of the current session.
func (a *App) Session() model.Session {
	return a.session.Current()
}

// ListReports refreshes the list and returns it.
func (a *App) ListReports(ctx context.Context) ([]model.Report, error) {
	if !a.session.Current().Authenticated() {
		return nil, session.ErrNotAuthenticated
	}
	if err := a.reports.Refresh(ctx); err != nil {
		return nil, err
	}
	// A 401 during the refresh has ended the session by now.
	if !a.session.Current().Authenticated() {
		return nil, gateway.ErrSessionInvalid
	}
	return a.reports.List(), nil
}

// Reports returns the list as last synchronized, without a network call.
func (a *App) Reports() []model.Report {
	return a.reports.List()
}

// WatchReports calls fn with the list after every change.
func (a *App) WatchReports(fn func([]model.Report)) (unsubscribe func()) {
	return a.reports.Subscribe(fn)
}

// WatchSession calls fn after every session transition.
func (a *App) WatchSession(fn session.Listener) {
	a.session.Subscribe(fn)
}

// LastSyncError is the error of the last failed refresh, if it has not
// been followed by a successful one.
func (a *App) LastSyncError() error {
	return a.reports.LastError()
}

func (a *App) RequestReport(ctx context.Context, form model.ReportForm) (model.Report, error) {
	if !a.session.Current().Authenticated() {
		return model.Report{}, session.ErrNotAuthenticated
	}
	return a.reports.Submit(ctx, form)
}

// DownloadReport saves the artifact of report id, named after displayName.
func (a *App) DownloadReport(ctx context.Context, id, displayName string) (report.DownloadOutput, error) {
	if !a.session.Current().Authenticated() {
		return report.DownloadOutput{}, session.ErrNotAuthenticated
	}
	return a.reports.Download(ctx, report.DownloadInput{ID: id, DisplayName: displayName})
}
