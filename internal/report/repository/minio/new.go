package minio

import (
	"reportctl/internal/report/repository"
	"reportctl/pkg/log"
	pkgMinio "reportctl/pkg/minio"
)

const objectPrefix = "reports/"

type implRepository struct {
	minio  pkgMinio.MinIO
	bucket string
	l      log.Logger
}

// New returns an artifact store that mirrors artifacts into bucket.
func New(minio pkgMinio.MinIO, bucket string, l log.Logger) repository.ArtifactRepository {
	return &implRepository{
		minio:  minio,
		bucket: bucket,
		l:      l,
	}
}
