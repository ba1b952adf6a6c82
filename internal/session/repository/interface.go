package repository

import "context"

// TokenRepository persists the single opaque session token.
// Load returns "" and no error when nothing is stored.
//
//go:generate mockery --name TokenRepository
type TokenRepository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
