package webfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther runs the auth operations against the backend and transitions the
// visitor's SessionStore. It is the only component that calls the store's
// mutation entry points.
type Auther struct {
	api    AuthAPI
	logger Logger
}

// NewAuthenticator returns a new Authenticator backed by the given API client.
func NewAuthenticator(api AuthAPI) *Auther {
	return &Auther{
		api:    api,
		logger: defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

type authEnvelope struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login authenticates the visitor. On failure the store ends with the
// server-provided message (or a generic fallback) and no durable record.
func (a *Auther) Login(ctx context.Context, store *SessionStore, email, password string) error {
	gen := store.Begin()

	res := a.api.Login(ctx, email, password)
	if !res.Success {
		message := res.Error
		if message == "" {
			message = "Login failed"
		}
		store.ApplyFailure(gen, message)
		return goerrors.New(message, goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}

	var payload authEnvelope
	if err := res.Decode(&payload); err != nil || payload.Token == "" || payload.User == nil {
		a.logger.Warn("login: malformed success payload: %v", err)
		store.ApplyFailure(gen, "Login failed")
		return WrapBackendFailure("malformed login response")
	}

	if !store.ApplySuccess(gen, payload.Token, payload.User) {
		return ErrStaleOperation
	}

	a.logger.Info("login: session established for %s", payload.User.Email)
	return nil
}

// RegisterOutcome reports how a registration resolved.
type RegisterOutcome struct {
	// AuthenticatedNow is true when the backend returned a token along with
	// the created account (implicit login).
	AuthenticatedNow bool
	// Notice is a message for the UI when no implicit login happened.
	Notice string
}

// Register creates an account. A response carrying a token is treated as an
// implicit login; otherwise the visitor stays unauthenticated and the outcome
// carries a notice for the sign-in page.
func (a *Auther) Register(ctx context.Context, store *SessionStore, msg RegisterUserMessage) (*RegisterOutcome, error) {
	gen := store.Begin()

	res := a.api.Register(ctx, msg)
	if !res.Success {
		message := res.Error
		if message == "" {
			message = "Registration failed"
		}
		store.ApplyFailure(gen, message)
		return nil, goerrors.New(message, goerrors.CategoryAuth).
			WithCode(goerrors.CodeBadRequest)
	}

	var payload authEnvelope
	if err := res.Decode(&payload); err != nil {
		a.logger.Warn("register: malformed success payload: %v", err)
	}

	if payload.Token != "" {
		user := payload.User
		if user == nil {
			// some backend versions return the created user flat, with the
			// token as a sibling field
			user = &User{}
			if err := res.Decode(user); err != nil || user.Email == "" {
				user = &User{Email: msg.Email, Name: msg.Name}
			}
		}
		if !store.ApplySuccess(gen, payload.Token, user) {
			return nil, ErrStaleOperation
		}
		return &RegisterOutcome{AuthenticatedNow: true}, nil
	}

	store.Settle(gen)
	return &RegisterOutcome{
		Notice: "Account created, please sign in",
	}, nil
}

// Logout tears the session down. The backend call is best-effort: its failure
// is logged and never blocks the local clear.
func (a *Auther) Logout(ctx context.Context, store *SessionStore) error {
	if token := store.Token(); token != "" {
		if res := a.api.Logout(ctx, token); !res.Success {
			a.logger.Warn("logout: backend call failed: %s", res.Error)
		}
	}

	store.Clear()
	return nil
}

// CurrentUser revalidates the held credential against the backend and
// refreshes the profile, with the role taken solely from the fresh response.
// An invalid or expired credential tears the session down. Without a local
// credential no network call is made.
func (a *Auther) CurrentUser(ctx context.Context, store *SessionStore) (*User, error) {
	token := store.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	gen := store.Begin()

	res := a.api.CurrentUser(ctx, token)
	if !res.Success {
		message := res.Error
		if message == "" {
			message = "Session expired, please sign in again"
		}
		// generation-guarded so a stale failure cannot tear down a session
		// that was re-established while this call was in flight
		store.ApplyFailure(gen, message)
		return nil, goerrors.New(message, goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}

	user := &User{}
	if err := res.Decode(user); err != nil || (user.ID == "" && user.Email == "") {
		var wrapped struct {
			User *User `json:"user"`
		}
		if err := res.Decode(&wrapped); err != nil || wrapped.User == nil {
			store.ApplyFailure(gen, "Session expired, please sign in again")
			return nil, WrapBackendFailure("malformed current-user response")
		}
		user = wrapped.User
	}

	if !store.ApplySuccess(gen, token, user) {
		return nil, ErrStaleOperation
	}

	return user, nil
}

var _ Authenticator = (*Auther)(nil)
