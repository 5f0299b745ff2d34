package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Role-to-dashboard dispatch in the original UI collapses to this table:
// every role-specific route is gated through it, never through ad-hoc
// string comparison in handlers.
var PermissionRoles = map[string][]string{
	BrowseCatalog:     {RoleUser, RoleMerchant, RoleAdmin},
	CreateRequest:     {RoleUser},
	ViewOwnRequests:   {RoleUser},
	ManageListings:    {RoleMerchant},
	ReviewRequests:    {RoleMerchant},
	ViewPlatformStats: {RoleAdmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
