package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
	"github.com/lpavone/examtrack/internal/pkg/auth"
)

// Generic login failure message. Unknown usernames and wrong passwords are
// deliberately indistinguishable to avoid username enumeration.
const loginFailedMessage = "Incorrect username and/or password."

// UserReader is the user-credential storage collaborator.
type UserReader interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService defines the interface for credential verification and
// session-to-principal resolution
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo UserReader
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserReader, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login verifies the credential pair and returns the matching user record
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("username", username).Msg("Login attempt for unknown username")
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, loginFailedMessage)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Debug().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, loginFailedMessage)
	}

	return user, nil
}

// GetUserByID resolves a principal id back to its full user record
func (s *authServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}
