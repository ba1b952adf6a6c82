package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims are the claims the backend puts into access tokens.
type Claims struct {
	Fresh bool   `json:"fresh,omitempty"`
	Type  string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// inspectorImpl implements IInspector.
type inspectorImpl struct{}
