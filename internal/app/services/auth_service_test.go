package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
	"github.com/lpavone/examtrack/internal/pkg/auth"
)

// memUserStore is an in-memory UserReader.
type memUserStore struct {
	users []*models.User
}

func (s *memUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (AuthService, *models.User) {
	t.Helper()

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	user := &models.User{ID: 1, Username: "john.doe", Name: "John Doe", Password: hash}
	svc := NewAuthService(&memUserStore{users: []*models.User{user}}, zerolog.Nop())
	return svc, user
}

func TestLoginSuccess(t *testing.T) {
	svc, seeded := newAuthFixture(t)

	user, err := svc.Login(context.Background(), "john.doe", "password")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, "John Doe", user.Name)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, errWrongPassword := svc.Login(context.Background(), "john.doe", "nope")
	require.Error(t, errWrongPassword)
	assert.ErrorIs(t, errWrongPassword, apperrors.ErrInvalidCredentials)

	_, errUnknownUser := svc.Login(context.Background(), "who.dis", "password")
	require.Error(t, errUnknownUser)
	assert.ErrorIs(t, errUnknownUser, apperrors.ErrInvalidCredentials)

	// Wrong username and wrong password must produce the same message.
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
	assert.Equal(t, "Incorrect username and/or password.", errUnknownUser.Error())
}

func TestGetUserByID(t *testing.T) {
	svc, seeded := newAuthFixture(t)

	user, err := svc.GetUserByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "john.doe", user.Username)

	_, err = svc.GetUserByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
