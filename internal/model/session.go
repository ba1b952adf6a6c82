package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// SessionStatus is the authentication state of the process-wide session.
type SessionStatus string

const (
	SessionAnonymous     SessionStatus = "ANONYMOUS"
	SessionVerifying     SessionStatus = "VERIFYING"
	SessionAuthenticated SessionStatus = "AUTHENTICATED"
)

// User is the identity returned by the backend.
type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserID accepts both numeric and string ids from the backend.
type UserID string

// UnmarshalJSON implements json.Unmarshaler for UserID.
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// Session is a snapshot of the process-wide authentication state.
type Session struct {
	Token     string
	User      *User
	Status    SessionStatus
	ExpiresAt time.Time

	// Generation increases on every transition that replaces or ends the
	// session; results produced under an older generation are stale.
	Generation uint64
}

// Authenticated reports whether the session is usable for API calls.
func (s Session) Authenticated() bool {
	return s.Status == SessionAuthenticated && s.Token != "" && s.User != nil
}
