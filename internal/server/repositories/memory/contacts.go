package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/google/uuid"
)

type storedContact struct {
	models.Contact
	seq uint64
}

type ContactRepository struct {
	mu    sync.RWMutex
	items map[string]*storedContact
	seq   uint64
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{items: make(map[string]*storedContact)}
}

// List returns the owner's contacts in insertion order.
func (r *ContactRepository) List(_ context.Context, ownerID string) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]*storedContact, 0)
	for _, c := range r.items {
		if c.OwnerID == ownerID {
			owned = append(owned, c)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].seq < owned[j].seq })

	result := make([]models.Contact, 0, len(owned))
	for _, c := range owned {
		result = append(result, c.Contact)
	}
	return result, nil
}

func (r *ContactRepository) GetByID(_ context.Context, ownerID, id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	out := c.Contact
	return &out, nil
}

func (r *ContactRepository) Create(_ context.Context, ownerID string, fields models.ContactFields) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.seq++
	c := &storedContact{
		Contact: models.Contact{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			Name:      fields.Name,
			Email:     fields.Email,
			Phone:     fields.Phone,
			Favorite:  fields.Favorite,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: r.seq,
	}
	r.items[c.ID] = c

	out := c.Contact
	return &out, nil
}

func (r *ContactRepository) Update(_ context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error) {
	return r.mutate(ownerID, id, func(c *models.Contact) {
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}
	})
}

func (r *ContactRepository) UpdateFavorite(_ context.Context, ownerID, id string, favorite bool) (*models.Contact, error) {
	return r.mutate(ownerID, id, func(c *models.Contact) { c.Favorite = favorite })
}

func (r *ContactRepository) Delete(_ context.Context, ownerID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.owned(ownerID, id); err != nil {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *ContactRepository) mutate(ownerID, id string, fn func(*models.Contact)) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	fn(&c.Contact)
	c.UpdatedAt = time.Now().UTC()

	out := c.Contact
	return &out, nil
}

// owned must be called with mu held.
func (r *ContactRepository) owned(ownerID, id string) (*storedContact, error) {
	c, ok := r.items[id]
	if !ok || c.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return c, nil
}
