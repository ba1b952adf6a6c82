package http

import "errors"

// ErrBodyTooLarge is returned when a response body exceeds ClientConfig.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")
