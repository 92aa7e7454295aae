package auth

import (
	"sync"

	"github.com/google/uuid"

	"hr-performance-tracker/internal/apperror"
)

// Session is the context carried through every authorized call: who is acting
// and with which role. It exists from a successful login until logout.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionManager gates all authorized actions. There is no expiry, lockout or
// rate limiting; a failed login simply leaves the caller logged out.
type SessionManager struct {
	credentials *CredentialStore

	mu       sync.RWMutex
	sessions map[string]Session
}

func NewSessionManager(credentials *CredentialStore) *SessionManager {
	return &SessionManager{
		credentials: credentials,
		sessions:    make(map[string]Session),
	}
}

func (m *SessionManager) Login(username, password string) (Session, error) {
	role, err := m.credentials.Verify(username, password)
	if err != nil {
		return Session{}, err
	}

	session := Session{
		Token:    uuid.NewString(),
		Username: username,
		Role:     role,
	}

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	return session, nil
}

// Logout clears the session unconditionally; an unknown token is not an error.
func (m *SessionManager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func (m *SessionManager) Get(token string) (Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return Session{}, apperror.New(apperror.CodeUnauthorized, "please log in to continue")
	}
	return session, nil
}
