package postgres

import (
	"database/sql"
	"fmt"

	"shopbot/internal/domain"
)

// CatalogRepo implements repository.CatalogRepository
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// LoadProducts returns all products ordered by their display position
func (r *CatalogRepo) LoadProducts() ([]domain.Product, error) {
	query := `SELECT name, description FROM products ORDER BY position`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.Name, &p.Description); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// SaveProducts replaces the stored product list with the given snapshot
func (r *CatalogRepo) SaveProducts(products []domain.Product) error {
	return r.replace("products",
		`INSERT INTO products (position, name, description) VALUES ($1, $2, $3)`,
		len(products),
		func(i int) []interface{} {
			return []interface{}{i, products[i].Name, products[i].Description}
		})
}

// LoadContacts returns all contacts ordered by their display position
func (r *CatalogRepo) LoadContacts() ([]domain.Contact, error) {
	query := `SELECT name, value FROM contacts ORDER BY position`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.Name, &c.Value); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// SaveContacts replaces the stored contact list with the given snapshot
func (r *CatalogRepo) SaveContacts(contacts []domain.Contact) error {
	return r.replace("contacts",
		`INSERT INTO contacts (position, name, value) VALUES ($1, $2, $3)`,
		len(contacts),
		func(i int) []interface{} {
			return []interface{}{i, contacts[i].Name, contacts[i].Value}
		})
}

// replace rewrites a position-ordered table inside one transaction
func (r *CatalogRepo) replace(table, insert string, n int, args func(i int) []interface{}) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	for i := 0; i < n; i++ {
		if _, err := tx.Exec(insert, args(i)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	return tx.Commit()
}
