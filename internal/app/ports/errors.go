package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrNoSession means no session has been initialised yet.
	ErrNoSession = errors.New("no world state loaded")
)
