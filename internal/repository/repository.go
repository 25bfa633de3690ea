package repository

import "shopbot/internal/domain"

// UserRepository defines user persistence operations
type UserRepository interface {
	LoadUsers() ([]domain.User, error)
	SaveUsers(users []domain.User) error
}

// CatalogRepository defines product and contact persistence operations.
// Collections are stored as whole ordered snapshots: the services own
// the in-memory state and write it through after every mutation.
type CatalogRepository interface {
	LoadProducts() ([]domain.Product, error)
	SaveProducts(products []domain.Product) error
	LoadContacts() ([]domain.Contact, error)
	SaveContacts(contacts []domain.Contact) error
}
