// Package auth implements the credential store (bcrypt password hashes) and
// the token service (HS256-signed, time-bounded access tokens).
package auth

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore turns plaintext passwords into salted bcrypt hashes and
// checks later submissions against them. It keeps no per-user state and is
// safe for concurrent use.
type CredentialStore struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewCredentialStore returns a store hashing with the given bcrypt cost.
// Zero selects bcrypt.DefaultCost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// Create builds a new, not yet persisted user with the password hashed.
func (s *CredentialStore) Create(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	return &models.User{Email: email, PasswordHash: string(hash)}, nil
}

// Verify reports whether password matches the user's stored hash.
func (s *CredentialStore) Verify(user *models.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// VerifyAbsent spends the same bcrypt work as Verify against a throwaway
// hash and always reports false. Login calls it for unknown emails so the
// response time does not reveal whether an account exists.
func (s *CredentialStore) VerifyAbsent(password string) bool {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("absent-account"), s.cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
	return false
}
