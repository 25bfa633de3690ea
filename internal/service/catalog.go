package service

import (
	"fmt"
	"sync"

	"shopbot/internal/domain"
	"shopbot/internal/repository"

	"github.com/spf13/cast"
)

// ErrInvalidIndex is returned when typed input is not a number or
// points outside the collection. The collection is left untouched.
var ErrInvalidIndex = fmt.Errorf("invalid index")

// CatalogService owns the product and contact lists. Items are
// identified by their 1-based display position, so every mutation
// is written through to the repository before the new positions are
// shown to anyone.
type CatalogService struct {
	repo repository.CatalogRepository

	mu       sync.Mutex
	products []domain.Product
	contacts []domain.Contact
}

// NewCatalogService loads the stored collections and creates the service
func NewCatalogService(repo repository.CatalogRepository) (*CatalogService, error) {
	products, err := repo.LoadProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	contacts, err := repo.LoadContacts()
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return &CatalogService{repo: repo, products: products, contacts: contacts}, nil
}

// Products returns a copy of the product list in display order
func (s *CatalogService) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// Contacts returns a copy of the contact list in display order
func (s *CatalogService) Contacts() []domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Contact(nil), s.contacts...)
}

// AddProduct appends a product and persists the list
func (s *CatalogService) AddProduct(name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, domain.Product{Name: name, Description: description})
	if err := s.repo.SaveProducts(s.products); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}

// DeleteProduct removes the product at the typed 1-based position and
// returns it. Later products shift down by one position.
func (s *CatalogService) DeleteProduct(input string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := parseIndex(input, len(s.products))
	if err != nil {
		return domain.Product{}, err
	}

	removed := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	if err := s.repo.SaveProducts(s.products); err != nil {
		return removed, fmt.Errorf("failed to persist products: %w", err)
	}
	return removed, nil
}

// AddContact appends a contact and persists the list
func (s *CatalogService) AddContact(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = append(s.contacts, domain.Contact{Name: name, Value: value})
	if err := s.repo.SaveContacts(s.contacts); err != nil {
		return fmt.Errorf("failed to persist contacts: %w", err)
	}
	return nil
}

// DeleteContact removes the contact at the typed 1-based position
func (s *CatalogService) DeleteContact(input string) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := parseIndex(input, len(s.contacts))
	if err != nil {
		return domain.Contact{}, err
	}

	removed := s.contacts[i]
	s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
	if err := s.repo.SaveContacts(s.contacts); err != nil {
		return removed, fmt.Errorf("failed to persist contacts: %w", err)
	}
	return removed, nil
}

// ResolveContactIndex validates a typed 1-based contact position and
// returns it as a 0-based index, without mutating anything
func (s *CatalogService) ResolveContactIndex(input string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return parseIndex(input, len(s.contacts))
}

// UpdateContact sets one field of the contact at the 0-based index.
// The index comes from ResolveContactIndex but is re-checked: the
// list may have shrunk while the admin was mid-edit.
func (s *CatalogService) UpdateContact(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.contacts) {
		return ErrInvalidIndex
	}

	switch field {
	case domain.ContactFieldName:
		s.contacts[index].Name = value
	case domain.ContactFieldValue:
		s.contacts[index].Value = value
	default:
		return fmt.Errorf("unknown contact field %q", field)
	}

	if err := s.repo.SaveContacts(s.contacts); err != nil {
		return fmt.Errorf("failed to persist contacts: %w", err)
	}
	return nil
}

// parseIndex converts typed 1-based input into a 0-based index
func parseIndex(input string, length int) (int, error) {
	n, err := cast.ToIntE(input)
	if err != nil {
		return 0, ErrInvalidIndex
	}
	i := n - 1
	if i < 0 || i >= length {
		return 0, ErrInvalidIndex
	}
	return i, nil
}
