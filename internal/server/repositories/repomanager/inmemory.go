package repomanager

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/memory"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/users"
)

type InMemoryRepositoryManager struct {
	users    *memory.UserRepository
	contacts *memory.ContactRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    memory.NewUserRepository(),
		contacts: memory.NewContactRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Contacts() contacts.Repository {
	return m.contacts
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
