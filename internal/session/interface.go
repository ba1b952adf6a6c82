package session

import (
	"context"

	"reportctl/internal/model"
)

// Listener observes session transitions. Listeners run synchronously, in
// transition order, and must not call back into the session.
type Listener func(model.Session)

//go:generate mockery --name UseCase
type UseCase interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Register(ctx context.Context, reg model.Registration) (string, error)
	Logout(ctx context.Context) error
	Invalidate(ctx context.Context, generation uint64)

	Current() model.Session
	Credentials() (token string, generation uint64)
	Subscribe(l Listener)
}
