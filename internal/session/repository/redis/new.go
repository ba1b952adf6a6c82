package redis

import (
	"reportctl/internal/session/repository"
	"reportctl/pkg/log"
	pkgRedis "reportctl/pkg/redis"
)

type implRepository struct {
	redis pkgRedis.IRedis
	key   string
	l     log.Logger
}

// New returns a token store keeping the token under key.
func New(redis pkgRedis.IRedis, key string, l log.Logger) repository.TokenRepository {
	return &implRepository{
		redis: redis,
		key:   key,
		l:     l,
	}
}
