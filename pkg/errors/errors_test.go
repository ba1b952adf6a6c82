package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		keys     []string
		expected string
	}{
		{name: "error field", body: `{"error":"bad dates"}`, expected: "bad dates"},
		{name: "description wins when listed first", body: `{"error":"x","description":"not ready"}`, keys: []string{"description", "error"}, expected: "not ready"},
		{name: "falls through empty description", body: `{"error":"gone","description":"  "}`, keys: []string{"description", "error"}, expected: "gone"},
		{name: "non string field", body: `{"error":42}`, expected: "fallback"},
		{name: "not json", body: `<html>502</html>`, expected: "fallback"},
		{name: "empty body", body: ``, expected: "fallback"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MessageFromBody([]byte(tc.body), "fallback", tc.keys...))
		})
	}
}

func TestServerErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("report.usecase.Submit: %w", NewServerError(400, []byte(`{"error":"bad"}`), "fallback"))

	se, ok := IsServerError(err)
	require.True(t, ok)
	assert.Equal(t, 400, se.Status)
	assert.Equal(t, "bad", se.Error())
}

func TestTransportAndMalformed(t *testing.T) {
	cause := errors.New("connection refused")

	err := Transport("gateway.Do", cause)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)

	assert.ErrorIs(t, Malformed("session.Login", nil), ErrMalformedResponse)
	assert.ErrorIs(t, Malformed("session.Login", cause), cause)
}
