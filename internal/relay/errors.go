package relay

import (
	"errors"
)

var (
	// errUnauthorized means the platform rejected the configured API key.
	// Reconnecting cannot fix it, so the client shuts down.
	errUnauthorized = errors.New("unauthorized")

	// errStopped marks a session torn down by Stop rather than by the network.
	errStopped = errors.New("client stopped")
)
