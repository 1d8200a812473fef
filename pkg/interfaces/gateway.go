package interfaces

import (
	"context"
	"encoding/json"
)

// Gateway is the single path every screen uses to reach the records
// API. Implementations attach the bearer token when one is held and
// classify every response into a *types.ConsoleError; no caller may
// special-case a status code itself.
type Gateway interface {
	// Request issues an API call and returns the parsed 2xx body
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// TokenSource supplies the bearer token for outbound requests and
// accepts the forced-logout signal when the server rejects it. The
// token must be read fresh on every call: a 401 from one in-flight
// request clears it for all others.
type TokenSource interface {
	// Token returns the current bearer token, empty when logged out
	Token() string
	// Invalidate clears the session in response to a 401
	Invalidate()
}
