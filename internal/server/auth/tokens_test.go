package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	users map[string]*models.User
	err   error
}

func (f *fakeFinder) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func newService(users map[string]*models.User) *TokenService {
	return NewTokenService("secret", time.Hour, &fakeFinder{users: users})
}

func TestTokenService_AuthenticateCurrentToken(t *testing.T) {
	user := &models.User{ID: "u1"}
	s := newService(map[string]*models.User{"u1": user})

	tok, err := s.Issue("u1")
	require.NoError(t, err)
	user.Token = &tok

	got, err := s.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestTokenService_AuthenticateRevoked(t *testing.T) {
	user := &models.User{ID: "u1"}
	s := newService(map[string]*models.User{"u1": user})

	tok, err := s.Issue("u1")
	require.NoError(t, err)

	// logged out
	_, err = s.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	// superseded by a later login
	newer, err := s.Issue("u1")
	require.NoError(t, err)
	user.Token = &newer
	_, err = s.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestTokenService_AuthenticateUnknownUser(t *testing.T) {
	s := newService(map[string]*models.User{})

	tok, err := s.Issue("ghost")
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestTokenService_AuthenticateInvalidToken(t *testing.T) {
	s := newService(nil)

	_, err := s.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenService_AuthenticateStoreError(t *testing.T) {
	s := NewTokenService("secret", time.Hour, &fakeFinder{err: errors.New("db down")})

	tok, err := s.Issue("u1")
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorContains(t, err, "db down")
}
