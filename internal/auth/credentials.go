package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"hr-performance-tracker/internal/apperror"
	"hr-performance-tracker/internal/config"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type credential struct {
	passwordHash []byte
	role         string
}

// CredentialStore is the static in-process username/password table. Passwords
// are held only as bcrypt hashes, computed once at construction.
type CredentialStore struct {
	users map[string]credential
}

func NewCredentialStore(seedUsers []config.SeedUser) (*CredentialStore, error) {
	users := make(map[string]credential, len(seedUsers))
	for _, seed := range seedUsers {
		if seed.Role != RoleAdmin && seed.Role != RoleUser {
			return nil, fmt.Errorf("unknown role %q for user %q", seed.Role, seed.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", seed.Username, err)
		}
		users[seed.Username] = credential{
			passwordHash: hash,
			role:         seed.Role,
		}
	}
	return &CredentialStore{users: users}, nil
}

// Verify returns the stored role when the username exists and the password
// matches its hash. Unknown users and wrong passwords are indistinguishable
// to the caller.
func (s *CredentialStore) Verify(username, password string) (string, error) {
	cred, ok := s.users[username]
	if !ok {
		return "", apperror.New(apperror.CodeUnauthorized, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(cred.passwordHash, []byte(password)); err != nil {
		return "", apperror.New(apperror.CodeUnauthorized, "invalid username or password")
	}
	return cred.role, nil
}
