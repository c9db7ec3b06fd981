package casino

import "errors"

var (
	// ErrSessionNotFound means the casino bot has no session for the user
	ErrSessionNotFound = errors.New("casino session not found")

	// ErrUnauthorized means the configured API key was rejected
	ErrUnauthorized = errors.New("casino API key rejected")
)
