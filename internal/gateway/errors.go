package gateway

import "errors"

var (
	// ErrSessionInvalid is returned instead of a response when the backend
	// answered 401. The session has already been torn down when the caller
	// sees it, so callers should not report it to the user again.
	ErrSessionInvalid = errors.New("session is no longer valid")
	ErrNoSession      = errors.New("gateway: no session attached")
)
