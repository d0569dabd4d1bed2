package webfront

import (
	"context"
	"fmt"

	"github.com/goliatone/go-router"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds the auth operations that drive a visitor's SessionStore
type Authenticator interface {
	Login(ctx context.Context, store *SessionStore, email, password string) error
	Register(ctx context.Context, store *SessionStore, msg RegisterUserMessage) (*RegisterOutcome, error)
	Logout(ctx context.Context, store *SessionStore) error
	CurrentUser(ctx context.Context, store *SessionStore) (*User, error)
}

type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// HTTPSession is the route-facing session surface. RouteSession satisfies it.
type HTTPSession interface {
	Session(ctx router.Context) *SessionStore
	Login(ctx router.Context, payload LoginPayload) error
	Logout(ctx router.Context)
	GetRedirect(ctx router.Context, def ...string) string
	GetRedirectOrDefault(ctx router.Context) string
	SetRedirect(ctx router.Context)
}

// Config holds front-end options
type Config interface {
	GetAPIBaseURL() string
	GetSessionCookieName() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
}

// AuthAPI is the slice of the backend surface the auth operations issue.
// The full Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) Result
	Register(ctx context.Context, payload RegisterUserMessage) Result
	CurrentUser(ctx context.Context, token string) Result
	Logout(ctx context.Context, token string) Result
}

// DefaultLogger returns the stdout fallback logger.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] WEB "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] WEB "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] WEB "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] WEB "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
