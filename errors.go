package webfront

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrUnableToFindSession is the error when a request carries no session cookie
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrNoStoredCredential is returned when an operation needs a token and the store has none
var ErrNoStoredCredential = errors.New("no stored credential")

// ErrStaleOperation marks a mutation discarded by the generation guard
var ErrStaleOperation = errors.New("stale operation discarded")

const (
	textCodeNotAuthenticated = "NOT_AUTHENTICATED"
	textCodeAdminRequired    = "ADMIN_REQUIRED"
	textCodeBackendFailure   = "BACKEND_FAILURE"
)

// ErrNotAuthenticated is returned when a protected action runs without a valid session.
var ErrNotAuthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode(textCodeNotAuthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrAdminRequired is returned when an authenticated visitor lacks the admin role.
// Kept distinct from ErrNotAuthenticated so the UI can render access-denied
// instead of bouncing to sign-in.
var ErrAdminRequired = goerrors.New("admin privileges required", goerrors.CategoryAuthz).
	WithTextCode(textCodeAdminRequired).
	WithCode(goerrors.CodeForbidden)

// WrapBackendFailure normalizes a failed API call into a rich error.
func WrapBackendFailure(message string) *goerrors.Error {
	if message == "" {
		message = "backend request failed"
	}
	return goerrors.New(message, goerrors.CategoryOperation).
		WithTextCode(textCodeBackendFailure).
		WithCode(goerrors.CodeInternal)
}

// IsAuthError reports whether err carries the auth category.
func IsAuthError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuth
	}
	return false
}

// IsAuthzError reports whether err carries the authz category.
func IsAuthzError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuthz
	}
	return false
}

// IsTokenExpiredError will check for expired tokens surfaced by the backend
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired") ||
		strings.Contains(err.Error(), "token expired")
}
