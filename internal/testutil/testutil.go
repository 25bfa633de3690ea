package testutil

import (
	"shopbot/internal/domain"
	"shopbot/internal/repository"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, username string, role domain.Role) domain.User {
	return domain.User{ID: userID, Username: username, Role: role}
}

// NewTestProduct creates a test product
func NewTestProduct(name, description string) domain.Product {
	return domain.Product{Name: name, Description: description}
}

// NewTestContact creates a test contact
func NewTestContact(name, value string) domain.Contact {
	return domain.Contact{Name: name, Value: value}
}

// MemoryUserRepo is an in-memory repository.UserRepository that
// records every saved snapshot
type MemoryUserRepo struct {
	Users []domain.User
	Saves int
}

var _ repository.UserRepository = (*MemoryUserRepo)(nil)

func (r *MemoryUserRepo) LoadUsers() ([]domain.User, error) {
	return append([]domain.User(nil), r.Users...), nil
}

func (r *MemoryUserRepo) SaveUsers(users []domain.User) error {
	r.Users = append([]domain.User(nil), users...)
	r.Saves++
	return nil
}

// MemoryCatalogRepo is an in-memory repository.CatalogRepository
type MemoryCatalogRepo struct {
	Products     []domain.Product
	Contacts     []domain.Contact
	ProductSaves int
	ContactSaves int
}

var _ repository.CatalogRepository = (*MemoryCatalogRepo)(nil)

func (r *MemoryCatalogRepo) LoadProducts() ([]domain.Product, error) {
	return append([]domain.Product(nil), r.Products...), nil
}

func (r *MemoryCatalogRepo) SaveProducts(products []domain.Product) error {
	r.Products = append([]domain.Product(nil), products...)
	r.ProductSaves++
	return nil
}

func (r *MemoryCatalogRepo) LoadContacts() ([]domain.Contact, error) {
	return append([]domain.Contact(nil), r.Contacts...), nil
}

func (r *MemoryCatalogRepo) SaveContacts(contacts []domain.Contact) error {
	r.Contacts = append([]domain.Contact(nil), contacts...)
	r.ContactSaves++
	return nil
}
