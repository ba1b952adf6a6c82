package file

import (
	"reportctl/internal/session/repository"
	"reportctl/pkg/log"
)

type implRepository struct {
	path string
	l    log.Logger
}

// New returns a token store backed by a single file at path.
func New(path string, l log.Logger) repository.TokenRepository {
	return &implRepository{
		path: path,
		l:    l,
	}
}
