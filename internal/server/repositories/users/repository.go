package users

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository is the credential store. Lookups that match nothing return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// SetToken stores the current session token; nil means logged out.
	SetToken(ctx context.Context, id string, token *string) error
	SetAvatar(ctx context.Context, id string, avatarURL string) error
	// Verify marks the unverified user holding verificationToken as verified
	// and clears the token, in one step.
	Verify(ctx context.Context, verificationToken string) (*models.User, error)
}
