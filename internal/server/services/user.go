// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and mints the bearer
// tokens presented on every authenticated request.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/dbx"
	"github.com/dmitrijs2005/artkeeper/internal/server/auth"
	"github.com/dmitrijs2005/artkeeper/internal/server/config"
	"github.com/dmitrijs2005/artkeeper/internal/server/models"
	"github.com/dmitrijs2005/artkeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength is the minimum accepted plaintext password length.
const minPasswordLength = 6

// UserService provides authentication-related operations:
// - Register: validate credentials, create the account, mint a token
// - Login: verify credentials and mint a token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// Register creates a new account for the given email and plaintext password
// and returns a freshly minted bearer token. A duplicate email yields
// common.ErrDuplicateEmail; malformed input yields common.ErrValidation.
// The existence check and the insert run in one transaction, with the unique
// index on email as the backstop for racing registrations.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateEmail
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return "", common.ErrDuplicateEmail
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.generateToken(user.ID)
}

// Login verifies the provided password against the stored hash and, on
// success, returns a new bearer token. Unknown email and wrong password are
// both reported as common.ErrorUnauthorized so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	return s.generateToken(user.ID)
}

// --- helpers below ---

func (s *UserService) generateToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

func validateCredentials(email, password string) error {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return fmt.Errorf("%w: malformed email", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password too short", common.ErrValidation)
	}
	return nil
}
