package file

import (
	"reportctl/internal/report/repository"
	"reportctl/pkg/log"
)

type implRepository struct {
	dir string
	l   log.Logger
}

// New returns an artifact store writing into dir.
func New(dir string, l log.Logger) repository.ArtifactRepository {
	return &implRepository{
		dir: dir,
		l:   l,
	}
}
