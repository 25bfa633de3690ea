package domain

import "strconv"

// Role defines the permission tier of a bot user
type Role string

const (
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleMember    Role = "member"
)

// AdminTier reports whether the role may use the admin panel
// and receives feedback notifications
func (r Role) AdminTier() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleModerator
}

// IsOwner reports whether the role is the single bot owner
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

// User represents a bot user with an assigned role
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role"`
}

// Handle returns the @-prefixed username, or the numeric ID when
// the user never set a username
func (u User) Handle() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}
