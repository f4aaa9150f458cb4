package user

import "time"

// Role is the authentication-level role carried in tokens. It is a separate
// vocabulary from the employee rank; see employee.RankForRole for the mapping.
type Role string

const (
	RoleEmployee         Role = "employee"
	RoleReportingManager Role = "reporting manager"
	RoleAssociateManager Role = "associate manager"
	RoleVP               Role = "VP"
	RoleAdmin            Role = "admin" // back-office only, no employee profile
)

// ParseRole validates a raw role string against the closed role set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleEmployee, RoleReportingManager, RoleAssociateManager, RoleVP, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

type User struct {
	ID              string
	Username        string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user holds the back-office admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
