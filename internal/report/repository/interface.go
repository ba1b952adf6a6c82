package repository

import "context"

// ArtifactRepository stores downloaded report artifacts and returns where
// the artifact ended up.
//
//go:generate mockery --name ArtifactRepository
type ArtifactRepository interface {
	Save(ctx context.Context, opt SaveOptions) (string, error)
}

type SaveOptions struct {
	ReportID    string
	Name        string
	ContentType string
	Data        []byte
}
