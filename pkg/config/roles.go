package config

import "strings"

// ParseAdminRoleNames parses a comma-separated list of admin role names.
// An empty or blank list falls back to ["admin", "superadmin"].
func ParseAdminRoleNames(envValue string) []string {
	parts := strings.Split(envValue, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	if len(roles) == 0 {
		return []string{"admin", "superadmin"}
	}
	return roles
}

// IsAdminRole checks if the given role is in the list of admin roles,
// ignoring case.
func IsAdminRole(role string, adminRoles []string) bool {
	for _, adminRole := range adminRoles {
		if strings.EqualFold(adminRole, role) {
			return true
		}
	}
	return false
}

// HasAnyAdminRole reports whether any of userRoles is an admin role.
func HasAnyAdminRole(userRoles []string, adminRoles []string) bool {
	for _, userRole := range userRoles {
		if IsAdminRole(userRole, adminRoles) {
			return true
		}
	}
	return false
}
