package jwt

import "errors"

var (
	ErrEmptyToken    = errors.New("jwt: empty token")
	ErrNotJWT        = errors.New("jwt: token is not a JWT")
	ErrInvalidClaims = errors.New("jwt: invalid claims type")
)
