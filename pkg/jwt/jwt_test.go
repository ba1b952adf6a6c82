package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return tok
}

func TestInspectReadsClaimsWithoutKey(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	i := New()
	claims, err := i.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "access", claims.Type)

	got, ok := i.ExpiresAt(tok)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestInspectRejectsOpaqueTokens(t *testing.T) {
	i := New()

	_, err := i.Inspect("")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = i.Inspect("opaque-token")
	assert.ErrorIs(t, err, ErrNotJWT)

	_, ok := i.ExpiresAt("a.b.c")
	assert.False(t, ok)
}
