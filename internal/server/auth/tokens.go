package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// UserFinder is the part of the credential store the token service needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// TokenService issues session tokens and resolves them back to users.
type TokenService struct {
	secretKey []byte
	validity  time.Duration
	users     UserFinder
}

func NewTokenService(secretKey string, validity time.Duration, users UserFinder) *TokenService {
	return &TokenService{secretKey: []byte(secretKey), validity: validity, users: users}
}

func (s *TokenService) Issue(userID string) (string, error) {
	return GenerateToken(userID, s.secretKey, s.validity)
}

func (s *TokenService) Verify(token string) (string, error) {
	return GetUserIDFromToken(token, s.secretKey)
}

// Authenticate verifies token and loads its user. A token that is valid but
// no longer the one stored for the user (logged out or superseded by a later
// login) yields common.ErrorUnauthorized.
func (s *TokenService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !isCurrent(user, token) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// isCurrent is the revocation check.
func isCurrent(user *models.User, token string) bool {
	if user.Token == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*user.Token), []byte(token)) == 1
}
