package jwt

import "time"

// IInspector reads claims from bearer tokens issued by the backend.
// The client never holds the signing key, so nothing is verified here;
// the backend remains the only authority on token validity.
// Implementations are safe for concurrent use.
type IInspector interface {
	Inspect(token string) (*Claims, error)
	ExpiresAt(token string) (time.Time, bool)
}

// New creates a new token inspector. Returns the interface.
func New() IInspector {
	return &inspectorImpl{}
}
