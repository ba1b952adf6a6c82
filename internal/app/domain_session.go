package app

import (
	"context"
	"fmt"

	"reportctl/config"
	configRedis "reportctl/config/redis"
	sessionRepo "reportctl/internal/session/repository"
	sessionFile "reportctl/internal/session/repository/file"
	sessionMemory "reportctl/internal/session/repository/memory"
	sessionRedis "reportctl/internal/session/repository/redis"
	sessionUsecase "reportctl/internal/session/usecase"
	"reportctl/pkg/jwt"
)

func (a *App) setupSessionDomain(ctx context.Context, cfg Config) error {
	repo := cfg.TokenRepo
	if repo == nil {
		var err error
		repo, err = a.tokenRepository(ctx)
		if err != nil {
			return err
		}
	}

	a.session = sessionUsecase.New(a.l, repo, a.gw, a.client, jwt.New(), a.cfg.API.BaseURL)
	a.l.Debugf(ctx, "app.setupSessionDomain: token store %s", a.cfg.Session.Store)
	return nil
}

func (a *App) tokenRepository(ctx context.Context) (sessionRepo.TokenRepository, error) {
	switch a.cfg.Session.Store {
	case config.TokenStoreMemory:
		return sessionMemory.New(), nil
	case config.TokenStoreRedis:
		client, err := configRedis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			a.l.Errorf(ctx, "app.tokenRepository: %v", err)
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.addCheck("redis", func(ctx context.Context) error {
			return configRedis.HealthCheck(ctx, client)
		})
		return sessionRedis.New(client, a.cfg.Session.RedisKey, a.l), nil
	case config.TokenStoreFile, "":
		return sessionFile.New(a.cfg.Session.TokenFile, a.l), nil
	}
	return nil, fmt.Errorf("app.tokenRepository: unknown token store %q", a.cfg.Session.Store)
}
