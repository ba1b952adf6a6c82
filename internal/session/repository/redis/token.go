package redis

import (
	"context"

	pkgRedis "reportctl/pkg/redis"
)

func (r *implRepository) Load(ctx context.Context) (string, error) {
	tok, err := r.redis.Get(ctx, r.key)
	if err != nil {
		if pkgRedis.IsNil(err) {
			return "", nil
		}
		r.l.Errorf(ctx, "session.repository.redis.Load: %v", err)
		return "", err
	}
	return tok, nil
}

func (r *implRepository) Save(ctx context.Context, token string) error {
	// No TTL: the backend decides when the token expires.
	if err := r.redis.Set(ctx, r.key, token, 0); err != nil {
		r.l.Errorf(ctx, "session.repository.redis.Save: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) Clear(ctx context.Context) error {
	if err := r.redis.Delete(ctx, r.key); err != nil {
		r.l.Errorf(ctx, "session.repository.redis.Clear: %v", err)
		return err
	}
	return nil
}
