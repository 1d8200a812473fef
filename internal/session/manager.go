package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/medicore/hms-console/pkg/interfaces"
	"github.com/medicore/hms-console/pkg/logger"
	"github.com/medicore/hms-console/pkg/types"
)

// Manager performs the login and logout flows against the records API
type Manager struct {
	store   *Store
	gateway interfaces.Gateway
	logger  *logger.Logger
}

// NewManager creates a session manager
func NewManager(store *Store, gateway interfaces.Gateway, log *logger.Logger) *Manager {
	return &Manager{
		store:   store,
		gateway: gateway,
		logger:  log,
	}
}

// Login authenticates against POST /auth/login. The request carries
// no bearer token; the store is empty until login succeeds. A doctor
// whose embedded user record is not active is rejected without
// persisting the token; the admin role has no equivalent check.
func (m *Manager) Login(ctx context.Context, email, password string, role types.UserRole) (types.Session, error) {
	req := types.LoginRequest{
		Email:    email,
		Password: password,
		Role:     string(role),
	}

	raw, err := m.gateway.Request(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		if types.IsNetwork(err) {
			return types.Session{}, err
		}
		return types.Session{}, types.NewAuthError(types.ErrCodeInvalidCredentials, loginFailureMessage(err))
	}

	var resp types.LoginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return types.Session{}, types.NewUnexpectedError("invalid login response: "+string(raw), 0)
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "login failed"
		}
		m.logger.Audit(email, "login", "session", false, map[string]interface{}{"reason": msg})
		return types.Session{}, types.NewAuthError(types.ErrCodeInvalidCredentials, msg)
	}

	// Prefer the role the server reports over the one requested
	grantedRole := types.UserRole(strings.ToLower(resp.Role))
	if grantedRole == "" {
		grantedRole = role
	}

	if grantedRole == types.RoleDoctor && resp.User != nil &&
		!strings.EqualFold(resp.User.Status, "active") {
		m.logger.Audit(email, "login", "session", false, map[string]interface{}{"reason": "inactive doctor account"})
		return types.Session{}, types.NewAuthError(types.ErrCodeInactiveAccount, "account is not active, contact admin")
	}

	session := types.Session{
		IsAuthenticated: true,
		Token:           resp.Token,
		Email:           email,
		Role:            grantedRole,
	}
	if err := m.store.Establish(session); err != nil {
		return types.Session{}, err
	}

	m.logger.Audit(email, "login", "session", true, map[string]interface{}{"role": string(grantedRole)})
	return session, nil
}

// Logout ends the session and clears all persisted state
func (m *Manager) Logout() {
	m.store.Invalidate()
}

// loginFailureMessage extracts a user-facing message from a gateway
// classification
func loginFailureMessage(err error) string {
	var ce *types.ConsoleError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return "login failed"
}
