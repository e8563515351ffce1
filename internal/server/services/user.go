// Package services contains server-side business logic that sits above the
// repositories. This file implements UserService: registration, login, and
// minting access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/privafile/privafile/internal/common"
	"github.com/privafile/privafile/internal/cryptox"
	"github.com/privafile/privafile/internal/dbx"
	"github.com/privafile/privafile/internal/server/auth"
	"github.com/privafile/privafile/internal/server/models"
	"github.com/privafile/privafile/internal/server/repositories/repomanager"
)

const (
	userNameMinLen = 3
	userNameMaxLen = 50
	passwordMinLen = 8
)

// UserService handles account lifecycle and credential verification.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authority   *auth.Authority
	tokenTTL    time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, authority *auth.Authority, tokenTTL time.Duration) *UserService {
	return &UserService{db: db, repomanager: m, authority: authority, tokenTTL: tokenTTL}
}

// Register creates a new account. The username-uniqueness check and the
// insert run in one transaction so concurrent registrations of the same
// name cannot both succeed.
func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {
	if err := validateUserName(userName); err != nil {
		return nil, err
	}
	if len(password) < passwordMinLen {
		return nil, common.ErrInvalidPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     userName,
		PasswordHash: hash,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.GetByUserName(ctx, userName); err == nil {
			return common.ErrUsernameTaken
		} else if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("checking username: %w", err)
		}
		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.authority.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	return token, nil
}

func validateUserName(userName string) error {
	if len(userName) < userNameMinLen || len(userName) > userNameMaxLen {
		return common.ErrInvalidUsername
	}
	for _, r := range userName {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return common.ErrInvalidUsername
		}
	}
	return nil
}
