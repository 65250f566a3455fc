package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository stores contacts. Every method is scoped by ownerID; a contact
// that exists under another owner is reported as common.ErrorNotFound.
type Repository interface {
	List(ctx context.Context, ownerID string) ([]models.Contact, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Create(ctx context.Context, ownerID string, fields models.ContactFields) (*models.Contact, error)
	Update(ctx context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error)
	UpdateFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}
