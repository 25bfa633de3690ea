package testutil

import (
	"shopbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) LoadUsers() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUsers(users []domain.User) error {
	args := m.Called(users)
	return args.Error(0)
}

// MockCatalogRepository is a mock for repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) LoadProducts() ([]domain.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) SaveProducts(products []domain.Product) error {
	args := m.Called(products)
	return args.Error(0)
}

func (m *MockCatalogRepository) LoadContacts() ([]domain.Contact, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockCatalogRepository) SaveContacts(contacts []domain.Contact) error {
	args := m.Called(contacts)
	return args.Error(0)
}
