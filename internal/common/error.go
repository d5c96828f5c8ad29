package common

import "errors"

var (
	// ErrNoSession is returned when an operation needs an authenticated
	// session and none is stored.
	ErrNoSession = errors.New("no active session")

	// ErrSessionExpired marks a session dropped because its client-side
	// expiry passed.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidToken is returned for a token that cannot be opened or parsed.
	ErrInvalidToken = errors.New("invalid token")
)
