package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"shopbot/internal/domain"
)

const (
	productsFile = "products.json"
	contactsFile = "contacts.json"
	usersFile    = "users.json"
)

// Store persists each collection as its own JSON document inside a
// data directory. A missing file reads as an empty collection.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a file store rooted at dir, creating it if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadProducts reads products.json
func (s *Store) LoadProducts() ([]domain.Product, error) {
	var products []domain.Product
	if err := s.read(productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SaveProducts writes products.json
func (s *Store) SaveProducts(products []domain.Product) error {
	return s.write(productsFile, products)
}

// LoadContacts reads contacts.json
func (s *Store) LoadContacts() ([]domain.Contact, error) {
	var contacts []domain.Contact
	if err := s.read(contactsFile, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// SaveContacts writes contacts.json
func (s *Store) SaveContacts(contacts []domain.Contact) error {
	return s.write(contactsFile, contacts)
}

// LoadUsers reads users.json
func (s *Store) LoadUsers() ([]domain.User, error) {
	var users []domain.User
	if err := s.read(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUsers writes users.json
func (s *Store) SaveUsers(users []domain.User) error {
	return s.write(usersFile, users)
}

func (s *Store) read(name string, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, in interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
