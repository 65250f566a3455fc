package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
)

// ContactService exposes the caller's contacts. Every method takes the
// authenticated owner id; contacts of other owners are reported as
// common.ErrorNotFound.
type ContactService struct {
	repo contacts.Repository
	log  logging.Logger
}

func NewContactService(repo contacts.Repository, log logging.Logger) *ContactService {
	if log == nil {
		log = logging.Nop{}
	}
	return &ContactService{repo: repo, log: log.With("module", "contacts")}
}

func (s *ContactService) List(ctx context.Context, ownerID string) ([]models.Contact, error) {
	list, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return list, nil
}

func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	c, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, wrapNotFound(err, "error loading contact")
	}
	return c, nil
}

func (s *ContactService) Create(ctx context.Context, ownerID string, req validation.ContactCreate) (*models.Contact, error) {
	if err := validation.Validate(&req); err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, ownerID, req.Fields())
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}
	s.log.Info(ctx, "contact created", "contact_id", c.ID, "owner_id", ownerID)
	return c, nil
}

func (s *ContactService) Update(ctx context.Context, ownerID, id string, req validation.ContactUpdate) (*models.Contact, error) {
	if err := validation.Validate(&req); err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, ownerID, id, req.Patch())
	if err != nil {
		return nil, wrapNotFound(err, "error updating contact")
	}
	return c, nil
}

func (s *ContactService) SetFavorite(ctx context.Context, ownerID, id string, req validation.Favorite) (*models.Contact, error) {
	if err := validation.Validate(&req); err != nil {
		return nil, err
	}
	c, err := s.repo.UpdateFavorite(ctx, ownerID, id, *req.Favorite)
	if err != nil {
		return nil, wrapNotFound(err, "error updating favorite")
	}
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, ownerID, id string) error {
	ok, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	s.log.Info(ctx, "contact deleted", "contact_id", id, "owner_id", ownerID)
	return nil
}

// wrapNotFound passes common.ErrorNotFound through untouched and annotates
// everything else.
func wrapNotFound(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
