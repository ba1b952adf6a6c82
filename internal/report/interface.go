package report

import (
	"context"

	"reportctl/internal/model"
)

// UseCase keeps the local report list consistent with the backend.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Refresh(ctx context.Context) error
	Submit(ctx context.Context, form model.ReportForm) (model.Report, error)
	Download(ctx context.Context, input DownloadInput) (DownloadOutput, error)

	// Start begins polling; Stop ends it and clears the list.
	Start()
	Stop()

	List() []model.Report
	Subscribe(fn func([]model.Report)) (unsubscribe func())
	LastError() error
	OnSessionChange(s model.Session)
}
