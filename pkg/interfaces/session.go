package interfaces

import (
	"context"

	"github.com/medicore/hms-console/pkg/types"
)

// SessionStore is the sole source of truth for "is a user logged in"
// and what they can do
type SessionStore interface {
	TokenSource

	// Current returns a copy of the session state
	Current() types.Session
	// OnInvalidate registers a callback fired whenever the session
	// ends, so dependent screens can drop cached lists
	OnInvalidate(fn func())
}

// Authenticator performs the login/logout flows against the API
type Authenticator interface {
	Login(ctx context.Context, email, password string, role types.UserRole) (types.Session, error)
	Logout()
}
