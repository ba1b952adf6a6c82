package main

import (
	"fmt"

	"reportctl/internal/session"
)

var errNotLoggedIn = fmt.Errorf("%w: run reportctl login", session.ErrNotAuthenticated)
