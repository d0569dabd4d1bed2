package webfront

// RoleValidator defines the role checks templates and guards rely on
type RoleValidator interface {
	// HasRole checks if the user has a specific role
	HasRole(role string) bool

	// IsAtLeast checks if the user's role is at least the minimum required role
	IsAtLeast(minRole UserRole) bool
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleIsAtLeast checks if a role meets the minimum required level
func RoleIsAtLeast(r, minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleGuest: 0,
		RoleUser:  1,
		RoleAdmin: 2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// ParseRole validates and returns a role, falling back to guest
func ParseRole(roleStr string) (UserRole, bool) {
	if IsValidRole(roleStr) {
		return roleStr, true
	}
	return RoleGuest, false
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleGuest,
		RoleUser,
		RoleAdmin,
	}
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	u.EnsureRole()
	return string(u.Role) == role
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (u *User) IsAtLeast(minRole UserRole) bool {
	if u == nil {
		return false
	}
	u.EnsureRole()
	if u.Admin {
		return true
	}
	return RoleIsAtLeast(u.Role, minRole)
}
