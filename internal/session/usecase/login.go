package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"reportctl/internal/model"
	"reportctl/internal/session"
	pkgErrors "reportctl/pkg/errors"
	pkghttp "reportctl/pkg/http"
	"reportctl/pkg/log"
)

// Login exchanges credentials for a token. A successful login replaces any
// current session.
func (uc *implUseCase) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if err := session.ValidateCredentials(creds); err != nil {
		return model.User{}, err
	}

	ctx, headers := uc.requestHeaders(ctx)
	resp, err := uc.client.Post(ctx, uc.baseURL+session.PathLogin, creds, headers)
	if err != nil {
		uc.l.Warnf(ctx, "session.usecase.Login: %v", err)
		return model.User{}, pkgErrors.Transport("session.usecase.Login", err)
	}
	if !resp.OK() {
		return model.User{}, pkgErrors.NewServerError(resp.StatusCode, resp.Body, session.MsgLoginFailed)
	}

	var out loginResponse
	if err := decode(resp.Body, &out); err != nil {
		uc.l.Warnf(ctx, "session.usecase.Login: %v", err)
		return model.User{}, pkgErrors.Malformed("session.usecase.Login", err)
	}
	if out.AccessToken == "" || out.User == nil {
		uc.l.Warnf(ctx, "session.usecase.Login: response lacks token or user")
		return model.User{}, pkgErrors.Malformed("session.usecase.Login", nil)
	}

	uc.transitionMu.Lock()
	defer uc.transitionMu.Unlock()

	if err := uc.repo.Save(ctx, out.AccessToken); err != nil {
		return model.User{}, fmt.Errorf("session.usecase.Login: save token: %w", err)
	}

	cur := uc.snapshot()
	uc.apply(model.Session{
		Token:      out.AccessToken,
		User:       out.User,
		Status:     model.SessionAuthenticated,
		ExpiresAt:  uc.expiresAt(out.AccessToken),
		Generation: cur.Generation + 1,
	})
	uc.l.Infof(ctx, "session.usecase.Login: logged in as %s", out.User.Username)
	return *out.User, nil
}

// Register creates an account. It never changes the session.
func (uc *implUseCase) Register(ctx context.Context, reg model.Registration) (string, error) {
	if err := session.ValidateRegistration(reg); err != nil {
		return "", err
	}

	ctx, headers := uc.requestHeaders(ctx)
	resp, err := uc.client.Post(ctx, uc.baseURL+session.PathRegister, reg, headers)
	if err != nil {
		uc.l.Warnf(ctx, "session.usecase.Register: %v", err)
		return "", pkgErrors.Transport("session.usecase.Register", err)
	}
	if !resp.OK() {
		return "", pkgErrors.NewServerError(resp.StatusCode, resp.Body, session.MsgRegisterFailed)
	}
	return pkgErrors.MessageFromBody(resp.Body, session.MsgRegistered, "message"), nil
}

func (uc *implUseCase) requestHeaders(ctx context.Context) (context.Context, map[string]string) {
	id := uuid.NewString()
	return log.WithRequestID(ctx, id), map[string]string{pkghttp.HeaderRequestID: id}
}
