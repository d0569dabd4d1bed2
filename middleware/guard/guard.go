package guard

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
	webfront "github.com/novacoders/webfront"
)

// Config drives the route guard. Resolver and Auth are required.
type Config struct {
	// Filter skips the guard for matching requests.
	Filter func(router.Context) bool
	// SuccessHandler runs after the session validated, defaults to Next.
	SuccessHandler router.HandlerFunc
	// ErrorHandler handles unauthenticated visitors, defaults to a redirect
	// to LoginRoute with the rejected route remembered.
	ErrorHandler router.ErrorHandler
	// DeniedHandler handles authenticated visitors that lack the required
	// role. It must NOT funnel into the sign-in flow, the visitor is already
	// signed in.
	DeniedHandler router.ErrorHandler

	// Resolver returns the visitor's session store for the request.
	Resolver func(router.Context) *webfront.SessionStore
	// Auth revalidates held credentials against the backend.
	Auth webfront.Authenticator

	// RequiredRole demands an exact role.
	RequiredRole string
	// MinimumRole demands at least the given role level.
	MinimumRole string
	// AdminOnly demands admin privileges, by role or backend flag.
	AdminOnly bool

	// Revalidate forces a backend round trip even for sessions restored
	// from durable storage. Privileged routes should leave this on.
	Revalidate bool

	// SessionKey is the locals key the session store lands under.
	SessionKey string
	// ContextKey is the locals key the validated user lands under.
	ContextKey string
	// TemplateUserKey mirrors the validated user for template rendering.
	TemplateUserKey string

	// LoginRoute is where unauthenticated visitors get sent.
	LoginRoute string
	// RejectedRouteKey names the cookie remembering the rejected route.
	RejectedRouteKey string
}

// New builds the guard middleware. A visitor with no stored credential is
// turned away immediately, no backend call is made for them.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			store := cfg.Resolver(ctx)
			if store == nil {
				return cfg.ErrorHandler(ctx, webfront.ErrUnableToFindSession)
			}

			if store.Token() == "" {
				return cfg.ErrorHandler(ctx, webfront.ErrNoStoredCredential)
			}

			user, err := cfg.resolveUser(ctx, store)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if err := performAuthorizationChecks(user, cfg); err != nil {
				return cfg.DeniedHandler(ctx, err)
			}

			ctx.Locals(cfg.SessionKey, store)
			ctx.Locals(cfg.ContextKey, user)

			if cfg.TemplateUserKey != "" {
				ctx.Locals(cfg.TemplateUserKey, user)
			}

			stdCtx := webfront.WithContext(ctx.Context(), user)
			stdCtx = webfront.WithSessionContext(stdCtx, store)
			ctx.SetContext(stdCtx)

			return cfg.SuccessHandler(ctx)
		}
	}
}

func (cfg *Config) resolveUser(ctx router.Context, store *webfront.SessionStore) (*webfront.User, error) {
	if !cfg.Revalidate {
		if state := store.Snapshot(); state.Authenticated && state.User != nil {
			return state.User, nil
		}
	}

	return cfg.Auth.CurrentUser(ctx.Context(), store)
}

// performAuthorizationChecks runs the configured role checks against the
// freshly validated user.
func performAuthorizationChecks(user *webfront.User, cfg Config) error {
	if !cfg.AdminOnly && cfg.RequiredRole == "" && cfg.MinimumRole == "" {
		return nil
	}

	if cfg.AdminOnly && !user.IsAdmin() {
		return webfront.ErrAdminRequired
	}

	if cfg.RequiredRole != "" && !user.HasRole(cfg.RequiredRole) {
		return webfront.ErrAdminRequired.WithMetadata(map[string]any{
			"required_role": cfg.RequiredRole,
		})
	}

	if cfg.MinimumRole != "" && !user.IsAtLeast(cfg.MinimumRole) {
		return webfront.ErrAdminRequired.WithMetadata(map[string]any{
			"minimum_role": cfg.MinimumRole,
		})
	}

	return nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Resolver == nil {
		panic("GUARD: middleware configuration: Resolver is required.")
	}

	if cfg.Auth == nil {
		panic("GUARD: middleware configuration: Auth is required.")
	}

	if cfg.SessionKey == "" {
		cfg.SessionKey = webfront.SessionLocalsKey
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = webfront.UserLocalsKey
	}

	if cfg.TemplateUserKey == "" {
		cfg.TemplateUserKey = webfront.TemplateUserKey
	}

	if cfg.LoginRoute == "" {
		cfg.LoginRoute = "/login"
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = cfg.defaultErrorHandler
	}

	if cfg.DeniedHandler == nil {
		cfg.DeniedHandler = func(c router.Context, err error) error {
			return c.Status(router.StatusForbidden).Render("errors/403", router.ViewContext{
				"error": err,
			})
		}
	}

	return cfg
}

func (cfg *Config) defaultErrorHandler(c router.Context, err error) error {
	if cfg.RejectedRouteKey != "" {
		c.Cookie(&router.Cookie{
			Name:     cfg.RejectedRouteKey,
			Value:    c.OriginalURL(),
			Expires:  time.Now().Add(time.Minute * 5),
			HTTPOnly: true,
			Secure:   true,
			SameSite: "Lax",
		})
	}

	statusCode := http.StatusSeeOther
	if c.Method() == string(router.GET) {
		statusCode = http.StatusFound
	}
	return c.Redirect(cfg.LoginRoute, statusCode)
}
