package webfront

import (
	"maps"

	"github.com/goliatone/go-router"
	"github.com/novacoders/webfront/middleware/csrf"
)

var TemplateUserKey = "current_user"

// TemplateHelpers returns a map of helper functions and data for
// authentication-aware template rendering.
//
// In templates:
//
//	{% if current_user %}
//	{% if current_user|has_role:"admin" %}
//	{{ csrf_field }}
//	{{ csrf_token }}
func TemplateHelpers() map[string]any {
	helpers := map[string]any{
		"is_authenticated": isAuthenticated,
		"has_role":         hasRole,
		"is_at_least":      isAtLeast,
		"is_admin":         isAdmin,

		// Role constants for easy template access
		"roles": map[string]string{
			"guest": RoleGuest,
			"user":  RoleUser,
			"admin": RoleAdmin,
		},
	}

	maps.Copy(helpers, csrf.CSRFTemplateHelpers())

	return helpers
}

// TemplateHelpersWithUser returns template helpers with a specific user set
// as current_user.
func TemplateHelpersWithUser(user *User) map[string]any {
	helpers := TemplateHelpers()
	helpers[TemplateUserKey] = user
	return helpers
}

// TemplateHelpersWithRouter returns template helpers with the user the guard
// stored in the router context, plus per-request CSRF token values.
func TemplateHelpersWithRouter(ctx router.Context, userKey string) map[string]any {
	if userKey == "" {
		userKey = UserLocalsKey
	}

	helpers := TemplateHelpers()

	if user := ctx.Locals(userKey); user != nil {
		helpers[TemplateUserKey] = user
	}

	for key, value := range csrf.CSRFTemplateHelpersWithRouter(ctx, csrf.DefaultContextKey) {
		helpers[key] = value
	}

	return helpers
}

// GetTemplateUser extracts the user stored in the router context for
// template usage.
func GetTemplateUser(ctx router.Context, userKey string) (any, bool) {
	if userKey == "" {
		userKey = UserLocalsKey
	}

	user := ctx.Locals(userKey)
	return user, user != nil
}

// MergeTemplateData merges src maps into dst, later maps win. dst may be
// nil.
func MergeTemplateData(dst map[string]any, src ...map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for _, m := range src {
		maps.Copy(dst, m)
	}
	return dst
}

// isAuthenticated checks if the provided user object is not nil
func isAuthenticated(user any) bool {
	if user == nil {
		return false
	}

	switch u := user.(type) {
	case *User:
		return u != nil
	case User:
		return true
	case map[string]any:
		// JSON-converted user objects
		return len(u) > 0
	default:
		return false
	}
}

// hasRole checks if the user has the specified role
func hasRole(user any, role string) bool {
	switch u := user.(type) {
	case *User:
		if u == nil {
			return false
		}
		return u.HasRole(role)
	case User:
		return u.HasRole(role)
	case map[string]any:
		if userRole, exists := u["role"]; exists {
			if roleStr, ok := userRole.(string); ok {
				return roleStr == role
			}
		}
		return false
	default:
		return false
	}
}

// isAtLeast checks if the user's role is at least the minimum required level
func isAtLeast(user any, minRole string) bool {
	switch u := user.(type) {
	case *User:
		if u == nil {
			return false
		}
		return u.IsAtLeast(minRole)
	case User:
		return u.IsAtLeast(minRole)
	case map[string]any:
		if userRole, exists := u["role"]; exists {
			if roleStr, ok := userRole.(string); ok {
				return RoleIsAtLeast(roleStr, minRole)
			}
		}
		return false
	default:
		return false
	}
}

// isAdmin reports whether the user carries admin privileges, either by role
// or by the backend's isAdmin flag.
func isAdmin(user any) bool {
	switch u := user.(type) {
	case *User:
		if u == nil {
			return false
		}
		return u.IsAdmin()
	case User:
		return u.IsAdmin()
	case map[string]any:
		if flag, ok := u["isAdmin"].(bool); ok && flag {
			return true
		}
		if roleStr, ok := u["role"].(string); ok {
			return roleStr == RoleAdmin
		}
		return false
	default:
		return false
	}
}
