// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token checks and account
// removal.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/server/auth"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/repomanager"
)

// UserService provides account operations:
// - Register / Persist: hash and store new users
// - Login: verify credentials and issue an access token
// - Authenticate: resolve an access token to a user id
// - Delete: remove a user together with their bucketlists
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	creds       *auth.CredentialStore
	tokens      *auth.TokenService
	logger      logging.Logger
}

// NewUserService wires a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, creds *auth.CredentialStore,
	tokens *auth.TokenService, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		creds:       creds,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// Register hashes password and stores a new user under email.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.creds.Create(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Persist(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Persist writes user inside a transaction. On success user.ID and
// user.CreatedAt are filled in; on any failure, including a failed commit,
// they are left zero.
func (s *UserService) Persist(ctx context.Context, user *models.User) error {
	var created models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
		})
		if err != nil {
			return err
		}
		created = *u
		return nil
	})
	if err != nil {
		user.ID = 0
		user.CreatedAt = time.Time{}
		if errors.Is(err, common.ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("persist user: %w", err)
	}

	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	return nil
}

// Login checks email and password and returns a token issued at now.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string, now time.Time) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.creds.VerifyAbsent(password)
			return "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if !s.creds.Verify(user, password) {
		return "", common.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, now)
}

// Authenticate returns the user id carried by token.
func (s *UserService) Authenticate(token string, now time.Time) (int64, error) {
	return s.tokens.Decode(token, now)
}

// Delete removes the user and every bucketlist they own in one transaction.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	var removed int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.repomanager.Bucketlists(tx).DeleteByOwner(ctx, userID)
		if err != nil {
			return err
		}
		removed = n
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("delete user %d: %w", userID, err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", userID, "bucketlists", removed)
	return nil
}
