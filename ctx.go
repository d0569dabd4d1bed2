package webfront

import (
	"context"

	"github.com/goliatone/go-router"
)

var userCtxKey = &contextKey{"user"}
var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// SessionLocalsKey is the router locals key the guard stores the visitor's
// session under.
const SessionLocalsKey = "session"

// UserLocalsKey is the router locals key the guard stores the validated user
// under.
const UserLocalsKey = "user"

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithSessionContext sets the SessionStore in the given context
func WithSessionContext(r context.Context, store *SessionStore) context.Context {
	return context.WithValue(r, sessionCtxKey, store)
}

// SessionFromContext finds the session store from the context.
func SessionFromContext(ctx context.Context) (*SessionStore, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(*SessionStore)
	return raw, ok
}

// GetRouterUser extracts the validated user from the router context.
func GetRouterUser(ctx router.Context) (*User, bool) {
	raw := ctx.Locals(UserLocalsKey)
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	return user, ok
}

// GetRouterSession extracts the visitor's session store from the router
// context.
func GetRouterSession(ctx router.Context) (*SessionStore, bool) {
	raw := ctx.Locals(SessionLocalsKey)
	if raw == nil {
		return nil, false
	}
	store, ok := raw.(*SessionStore)
	return store, ok
}

// Can reports whether the context user holds at least the given role.
func Can(ctx context.Context, role UserRole) bool {
	user, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return user.IsAtLeast(role)
}

// CanFromRouter reports whether the router context user holds at least the
// given role.
func CanFromRouter(ctx router.Context, role UserRole) bool {
	user, ok := GetRouterUser(ctx)
	if !ok {
		return false
	}
	return user.IsAtLeast(role)
}
