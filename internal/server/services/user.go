// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, and
// issuing/validating session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/dkalnins/auctionhub/internal/common"
	"github.com/dkalnins/auctionhub/internal/server/auth"
	"github.com/dkalnins/auctionhub/internal/server/config"
	"github.com/dkalnins/auctionhub/internal/server/models"
	"github.com/dkalnins/auctionhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	minUsernameLength = 3
)

// UserService provides authentication-related operations:
// - Register: validate input, hash the password, create the user, mint a token
// - Login: verify credentials and mint a token
// - ValidateToken: check a token's signature/expiry and extract the user id
// - GetProfile: load public identity fields by id
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user and returns the stored record plus a session
// token. The password is bcrypt-hashed before it reaches the repository; the
// returned record carries the hash, and the transport layer must not expose it.
//
// Duplicate email/username is reported as common.ErrEmailTaken or
// common.ErrUsernameTaken. The pre-check below picks the precise variant for
// the common case; the unique constraints in the users table remain the
// authority under concurrent registration, and the repository maps their
// violations to the same two errors.
func (s *UserService) Register(ctx context.Context, fullName, email, username, password string) (*models.User, string, error) {
	if fullName == "" || email == "" || username == "" || password == "" {
		return nil, "", common.ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, "", common.ErrPasswordTooShort
	}
	if len(username) < minUsernameLength {
		return nil, "", common.ErrUsernameTooShort
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", common.ErrInvalidEmail
	}

	repo := s.repomanager.Users(s.db)

	existing, err := repo.GetByEmailOrUsername(ctx, email, username)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, "", fmt.Errorf("error checking existing user: %w", err)
	}
	if existing != nil {
		if existing.Email == email {
			return nil, "", common.ErrEmailTaken
		}
		return nil, "", common.ErrUsernameTaken
	}

	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) || errors.Is(err, common.ErrUsernameTaken) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the supplied password against the stored bcrypt hash and,
// on success, returns the user plus a fresh session token. Unknown identifier
// and wrong password both collapse into common.ErrorUnauthorized so the
// response cannot be used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	if identifier == "" || password == "" {
		return nil, "", common.ErrMissingFields
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, []byte(password)) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// ValidateToken returns the user id encoded in token. It is a pure function
// of the token and the signing secret; no store lookup happens here.
func (s *UserService) ValidateToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// GetProfile loads the identity for an already-validated user id. Returns
// common.ErrorNotFound when the id no longer resolves to a record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) generateToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
