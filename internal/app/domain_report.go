package app

import (
	"context"

	configMinio "reportctl/config/minio"
	reportFile "reportctl/internal/report/repository/file"
	reportMinio "reportctl/internal/report/repository/minio"
	reportUsecase "reportctl/internal/report/usecase"
)

func (a *App) setupReportDomain(ctx context.Context, cfg Config) error {
	artifacts := reportFile.New(a.cfg.Download.Dir, a.l)

	mirror := cfg.Mirror
	if mirror == nil && a.cfg.MinIO.Enabled {
		client, err := configMinio.Connect(ctx, a.cfg.MinIO)
		if err != nil {
			a.l.Errorf(ctx, "app.setupReportDomain: %v", err)
			return err
		}
		a.closers = append(a.closers, client.Close)
		bucket := a.cfg.MinIO.Bucket
		a.addCheck("minio", func(ctx context.Context) error {
			return configMinio.HealthCheck(ctx, client, bucket)
		})
		mirror = reportMinio.New(client, a.cfg.MinIO.Bucket, a.l)
		a.l.Infof(ctx, "app.setupReportDomain: mirroring artifacts to bucket %s", a.cfg.MinIO.Bucket)
	}

	a.reports = reportUsecase.New(a.l, a.gw, artifacts, mirror, reportUsecase.Config{
		PollInterval:   a.cfg.Sync.PollInterval,
		ReconcileDelay: a.cfg.Sync.ReconcileDelay,
	})
	return nil
}
