package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medicore/hms-console/pkg/logger"
	"github.com/medicore/hms-console/pkg/types"
)

// Store holds the authentication token, user email and role. It is
// the sole source of truth for "is a user logged in": every outbound
// request reads the token from here, and a 401 from any request
// clears it here for all of them.
type Store struct {
	mu      sync.RWMutex
	session types.Session
	file    *StateFile
	logger  *logger.Logger
	subs    []func()
}

// NewStore creates a session store backed by the given state file
func NewStore(file *StateFile, log *logger.Logger) *Store {
	return &Store{
		file:   file,
		logger: log,
	}
}

// Restore rebuilds the session from the persisted state so a console
// restart does not force a re-login. The token is not re-validated;
// an expired or revoked token is only discovered on the next API
// call, which forces logout.
func (s *Store) Restore() error {
	state, err := s.file.Load()
	if err != nil {
		return err
	}

	authenticated, _ := strconv.ParseBool(state[keyIsAuthenticated])
	token := state[keyToken]
	if !authenticated || token == "" {
		return nil
	}

	s.mu.Lock()
	s.session = types.Session{
		IsAuthenticated: true,
		Token:           token,
		Email:           state[keyUserEmail],
		Role:            types.UserRole(state[keyUserRole]),
	}
	s.mu.Unlock()

	entry := s.logger.WithComponent("session").WithField("email", state[keyUserEmail])
	if exp, ok := peekExpiry(token); ok {
		entry = entry.WithField("token_expires_at", exp.Format(time.RFC3339))
	}
	entry.Info("Session restored from state file")
	return nil
}

// Establish stores a freshly authenticated session and persists it.
// The state file is written first so memory and persisted state never
// disagree: a failed write leaves the store logged out.
func (s *Store) Establish(session types.Session) error {
	session.IsAuthenticated = session.Token != ""

	if err := s.file.Save(map[string]string{
		keyToken:           session.Token,
		keyUserEmail:       session.Email,
		keyUserRole:        string(session.Role),
		keyIsAuthenticated: strconv.FormatBool(session.IsAuthenticated),
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the session state
func (s *Store) Current() types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token, empty when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// OnInvalidate registers a callback fired when the session ends.
// Dependent screens use it to drop cached lists so a newly logged-in
// user never sees the previous user's data.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Invalidate ends the session, clears the persisted state and
// notifies subscribers. Safe to call from any goroutine, including a
// 401 handler on a screen the user has already left.
func (s *Store) Invalidate() {
	s.mu.Lock()
	wasAuthenticated := s.session.IsAuthenticated
	email := s.session.Email
	s.session = types.Session{}
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if err := s.file.Clear(); err != nil {
		s.logger.WithComponent("session").WithError(err).Error("Failed to clear persisted session")
	}

	if !wasAuthenticated {
		return
	}

	s.logger.Audit(email, "logout", "session", true, nil)
	for _, fn := range subs {
		fn()
	}
}

// peekExpiry reads the exp claim without verifying the token. This is
// display-only: the server remains the sole authority on validity.
func peekExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
