package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspect parses the token without verifying its signature.
func (i *inspectorImpl) Inspect(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}
	if strings.Count(token, ".") != 2 {
		return nil, ErrNotJWT
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// ExpiresAt returns the exp claim, if the token has one.
func (i *inspectorImpl) ExpiresAt(token string) (time.Time, bool) {
	claims, err := i.Inspect(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
