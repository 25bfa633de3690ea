package postgres

import (
	"database/sql"
	"fmt"

	"shopbot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// LoadUsers returns all users in registration order
func (r *UserRepo) LoadUsers() ([]domain.User, error) {
	query := `SELECT user_id, username, role FROM users ORDER BY position`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var username sql.NullString
		if err := rows.Scan(&u.ID, &username, &u.Role); err != nil {
			return nil, err
		}
		u.Username = username.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveUsers replaces the stored user set with the given snapshot
func (r *UserRepo) SaveUsers(users []domain.User) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	query := `INSERT INTO users (position, user_id, username, role) VALUES ($1, $2, $3, $4)`
	for i, u := range users {
		if _, err := tx.Exec(query, i, u.ID, u.Username, string(u.Role)); err != nil {
			return fmt.Errorf("failed to insert user %d: %w", u.ID, err)
		}
	}

	return tx.Commit()
}
