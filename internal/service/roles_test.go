package service

import (
	"fmt"
	"testing"

	"shopbot/internal/domain"
	"shopbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const ownerID int64 = 1000

func newRoleService(t *testing.T, users ...domain.User) (*RoleService, *testutil.MemoryUserRepo) {
	t.Helper()
	repo := &testutil.MemoryUserRepo{Users: users}
	svc, err := NewRoleService(repo, ownerID)
	assert.NoError(t, err)
	return svc, repo
}

func TestRoleService_EnsureUser(t *testing.T) {
	tests := []struct {
		name         string
		userID       int64
		expectedRole domain.Role
	}{
		{
			name:         "configured owner id registers as owner",
			userID:       ownerID,
			expectedRole: domain.RoleOwner,
		},
		{
			name:         "other id registers as member",
			userID:       2000,
			expectedRole: domain.RoleMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newRoleService(t)

			user, err := svc.EnsureUser(tt.userID, "someone")
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRole, user.Role)
			assert.Equal(t, 1, repo.Saves)
		})
	}
}

func TestRoleService_EnsureUserIdempotent(t *testing.T) {
	svc, repo := newRoleService(t)

	first, err := svc.EnsureUser(2000, "alice")
	assert.NoError(t, err)

	// A promoted user keeps the stored role on repeat calls
	_, err = svc.Promote("2000")
	assert.NoError(t, err)

	again, err := svc.EnsureUser(2000, "alice")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, again.Role)
	assert.NotEqual(t, first.Role, again.Role)

	// Only the initial registration and the promotion were persisted
	assert.Equal(t, 2, repo.Saves)
}

func TestRoleService_ZeroOwnerIDMatchesNobody(t *testing.T) {
	repo := &testutil.MemoryUserRepo{}
	svc, err := NewRoleService(repo, 0)
	assert.NoError(t, err)

	user, err := svc.EnsureUser(0, "ghost")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)
}

func TestRoleService_Promote(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError error
	}{
		{
			name:  "existing member promoted",
			input: "2000",
		},
		{
			name:          "unknown id",
			input:         "9999",
			expectedError: ErrUserNotFound,
		},
		{
			name:          "not a number",
			input:         "abc",
			expectedError: ErrUserNotFound,
		},
		{
			name:          "owner role never changes",
			input:         "1000",
			expectedError: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newRoleService(t,
				testutil.NewTestUser(ownerID, "boss", domain.RoleOwner),
				testutil.NewTestUser(2000, "alice", domain.RoleMember),
			)

			promoted, err := svc.Promote(tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				// Nothing changed, nothing persisted
				assert.Equal(t, 0, repo.Saves)
				assert.Equal(t, domain.RoleOwner, svc.Resolve(ownerID))
				assert.Equal(t, domain.RoleMember, svc.Resolve(2000))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.RoleModerator, promoted.Role)
				assert.Equal(t, 1, repo.Saves)
			}
		})
	}
}

func TestRoleService_Demote(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError error
	}{
		{
			name:  "current moderator demoted",
			input: "3000",
		},
		{
			name:          "member is not a moderator",
			input:         "2000",
			expectedError: ErrModeratorNotFound,
		},
		{
			name:          "unknown id",
			input:         "9999",
			expectedError: ErrModeratorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newRoleService(t,
				testutil.NewTestUser(2000, "alice", domain.RoleMember),
				testutil.NewTestUser(3000, "bob", domain.RoleModerator),
			)

			demoted, err := svc.Demote(tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, 0, repo.Saves)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.RoleMember, demoted.Role)
				assert.Equal(t, 1, repo.Saves)
			}
		})
	}
}

func TestRoleService_AdminTier(t *testing.T) {
	svc, _ := newRoleService(t,
		testutil.NewTestUser(ownerID, "boss", domain.RoleOwner),
		testutil.NewTestUser(2000, "alice", domain.RoleAdmin),
		testutil.NewTestUser(3000, "bob", domain.RoleModerator),
		testutil.NewTestUser(4000, "carol", domain.RoleMember),
	)

	admins := svc.AdminTier()
	assert.Len(t, admins, 3)
	for _, u := range admins {
		assert.True(t, u.Role.AdminTier())
	}

	mods := svc.Moderators()
	assert.Len(t, mods, 1)
	assert.Equal(t, int64(3000), mods[0].ID)
}

func TestRoleService_EnsureUserPersistError(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("LoadUsers").Return([]domain.User{}, nil)
	mockRepo.On("SaveUsers", mock.Anything).Return(fmt.Errorf("disk full"))

	svc, err := NewRoleService(mockRepo, ownerID)
	assert.NoError(t, err)

	// The user is still registered in memory when the flush fails
	_, err = svc.EnsureUser(2000, "alice")
	assert.Error(t, err)
	assert.Equal(t, domain.RoleMember, svc.Resolve(2000))

	mockRepo.AssertExpectations(t)
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, domain.RoleOwner.AdminTier())
	assert.True(t, domain.RoleAdmin.AdminTier())
	assert.True(t, domain.RoleModerator.AdminTier())
	assert.False(t, domain.RoleMember.AdminTier())

	assert.True(t, domain.RoleOwner.IsOwner())
	assert.False(t, domain.RoleAdmin.IsOwner())
}
