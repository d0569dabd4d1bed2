package webfront

import (
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteSession binds visitor sessions to HTTP traffic: it mints the session
// id cookie, resolves the per-visitor SessionStore, and runs auth operations
// from route handlers.
type RouteSession struct {
	auth             Authenticator
	manager          *SessionManager
	cfg              Config
	cookieDuration   time.Duration
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

func NewRouteSession(auther Authenticator, manager *SessionManager, cfg Config) (*RouteSession, error) {
	if manager == nil {
		manager = NewSessionManager(nil)
	}

	a := &RouteSession{
		cfg:            cfg,
		auth:           auther,
		manager:        manager,
		Logger:         defLogger{},
		cookieDuration: 30 * 24 * time.Hour,
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

// Session resolves the visitor's SessionStore, minting the session id cookie
// on first contact.
func (a *RouteSession) Session(ctx router.Context) *SessionStore {
	name := a.cfg.GetSessionCookieName()

	sid := ctx.Cookies(name)
	if sid == "" {
		sid = uuid.NewString()
		ctx.Cookie(&router.Cookie{
			Name:     name,
			Value:    sid,
			Expires:  time.Now().Add(a.cookieDuration),
			HTTPOnly: true,
			Secure:   true,
			SameSite: "Lax",
		})
	}

	return a.manager.Get(sid)
}

func (a *RouteSession) Manager() *SessionManager {
	return a.manager
}

func (a *RouteSession) Login(ctx router.Context, payload LoginPayload) error {
	store := a.Session(ctx)
	if err := a.auth.Login(ctx.Context(), store, payload.GetIdentifier(), payload.GetPassword()); err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}
	return nil
}

func (a *RouteSession) Logout(ctx router.Context) {
	store := a.Session(ctx)
	if err := a.auth.Logout(ctx.Context(), store); err != nil {
		a.Logger.Warn("Logout error: %s", err)
	}
}

// GetRedirect pops the rejected-route cookie, falling back to def.
func (a *RouteSession) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		return def[0]
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteSession) GetRedirectOrDefault(ctx router.Context) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	refererHeader := string(ctx.Referer())

	r := ctx.Cookies(rejectedRoute, refererHeader)
	if r == "" {
		r = a.cfg.GetRejectedRouteDefault()
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

// SetRedirect remembers the rejected route in a short-lived cookie so the
// visitor lands back there after signing in.
func (a *RouteSession) SetRedirect(ctx router.Context) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	a.Logger.Info("Setting redirect cookie key=%s path=%s", rejectedRoute, ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteSession) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteSession) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error, redirecting to login: %s (%s) path=%s",
		richErr.Message,
		richErr.TextCode,
		c.OriginalURL(),
	)

	a.SetRedirect(c)

	statusCode := http.StatusSeeOther
	if c.Method() == string(router.GET) {
		statusCode = http.StatusFound
	}
	return c.Redirect("/login", statusCode)
}

func (a *RouteSession) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler: %s category=%s details=%s",
		richErr.Message,
		richErr.Category,
		print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return a.AuthErrorHandler(c, richErr)
	default:
		return c.Status(richErr.Code).Render("errors/500", router.ViewContext{
			"error": richErr,
		})
	}
}
