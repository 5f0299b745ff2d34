package constants

const (
	RoleUser     = "user"
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// ValidRoles is the closed set of role enum values (must match user_roles.role).
var ValidRoles = []string{RoleUser, RoleMerchant, RoleAdmin}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// SelfAssignableRoles are the roles a caller may pick at registration.
// Admin accounts are seeded out of band, never self-registered.
var SelfAssignableRoles = []string{RoleUser, RoleMerchant}

func IsSelfAssignableRole(role string) bool {
	for _, r := range SelfAssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}
