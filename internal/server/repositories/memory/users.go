// Package memory holds map-backed repositories used when no database DSN is
// configured and in tests. Values are copied on the way in and out so callers
// never share state with the store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/google/uuid"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if user.VerificationToken != nil {
		for _, u := range r.byID {
			if u.VerificationToken != nil && *u.VerificationToken == *user.VerificationToken {
				return nil, common.ErrorAlreadyExists
			}
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) SetToken(_ context.Context, id string, token *string) error {
	return r.update(id, func(u *models.User) { u.Token = cloneString(token) })
}

func (r *UserRepository) SetAvatar(_ context.Context, id string, avatarURL string) error {
	return r.update(id, func(u *models.User) { u.AvatarURL = avatarURL })
}

func (r *UserRepository) Verify(_ context.Context, verificationToken string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if !u.Verified && u.VerificationToken != nil && *u.VerificationToken == verificationToken {
			u.Verified = true
			u.VerificationToken = nil
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) update(id string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(u)
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Token = cloneString(u.Token)
	c.VerificationToken = cloneString(u.VerificationToken)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
