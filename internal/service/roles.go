package service

import (
	"fmt"
	"sync"

	"shopbot/internal/domain"
	"shopbot/internal/repository"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

var (
	// ErrUserNotFound is returned when a typed identity matches no known user
	ErrUserNotFound = fmt.Errorf("user not found")
	// ErrModeratorNotFound is returned when the identity is unknown
	// or the user is not currently a moderator
	ErrModeratorNotFound = fmt.Errorf("moderator not found")
)

// RoleService registers users on first sight and resolves their roles.
// It owns the in-memory user list; the repository only serializes it.
type RoleService struct {
	repo    repository.UserRepository
	ownerID int64

	mu    sync.Mutex
	users []domain.User
}

// NewRoleService loads the stored users and creates the service.
// An ownerID of 0 means no identity ever registers as owner.
func NewRoleService(repo repository.UserRepository, ownerID int64) (*RoleService, error) {
	users, err := repo.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return &RoleService{repo: repo, ownerID: ownerID, users: users}, nil
}

// EnsureUser registers a first-seen identity (owner iff it matches the
// configured owner ID, member otherwise) and returns the stored user.
// Repeat calls keep the stored role.
func (s *RoleService) EnsureUser(userID int64, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(userID); i >= 0 {
		return s.users[i], nil
	}

	role := domain.RoleMember
	if s.ownerID != 0 && userID == s.ownerID {
		role = domain.RoleOwner
	}

	user := domain.User{ID: userID, Username: username, Role: role}
	s.users = append(s.users, user)
	if err := s.repo.SaveUsers(s.users); err != nil {
		return user, fmt.Errorf("failed to persist users: %w", err)
	}
	return user, nil
}

// Resolve returns the stored role for an identity, member if unknown
func (s *RoleService) Resolve(userID int64) domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(userID); i >= 0 {
		return s.users[i].Role
	}
	return domain.RoleMember
}

// Get returns the stored user for an identity
func (s *RoleService) Get(userID int64) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(userID); i >= 0 {
		return s.users[i], true
	}
	return domain.User{}, false
}

// Promote assigns the moderator role to the user whose ID was typed
// by the owner. The input must parse as a known identity; the owner's
// own role is never changed.
func (s *RoleService) Promote(input string) (domain.User, error) {
	userID, err := cast.ToInt64E(input)
	if err != nil {
		return domain.User{}, ErrUserNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 || s.users[i].Role.IsOwner() {
		return domain.User{}, ErrUserNotFound
	}

	s.users[i].Role = domain.RoleModerator
	if err := s.repo.SaveUsers(s.users); err != nil {
		return s.users[i], fmt.Errorf("failed to persist users: %w", err)
	}
	return s.users[i], nil
}

// Demote returns a current moderator to the member role
func (s *RoleService) Demote(input string) (domain.User, error) {
	userID, err := cast.ToInt64E(input)
	if err != nil {
		return domain.User{}, ErrModeratorNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 || s.users[i].Role != domain.RoleModerator {
		return domain.User{}, ErrModeratorNotFound
	}

	s.users[i].Role = domain.RoleMember
	if err := s.repo.SaveUsers(s.users); err != nil {
		return s.users[i], fmt.Errorf("failed to persist users: %w", err)
	}
	return s.users[i], nil
}

// Moderators returns all current moderators in registration order
func (s *RoleService) Moderators() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Filter(s.users, func(u domain.User, _ int) bool {
		return u.Role == domain.RoleModerator
	})
}

// AdminTier returns every user that receives feedback notifications
func (s *RoleService) AdminTier() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Filter(s.users, func(u domain.User, _ int) bool {
		return u.Role.AdminTier()
	})
}

func (s *RoleService) indexOf(userID int64) int {
	for i, u := range s.users {
		if u.ID == userID {
			return i
		}
	}
	return -1
}
