package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("session: not authenticated")
	ErrPasswordMismatch = errors.New("session: passwords do not match")
	ErrInvalidEmail     = errors.New("session: invalid email address")
	ErrRequiredField    = errors.New("session: required field is empty")
)
