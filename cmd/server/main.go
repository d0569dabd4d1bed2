package main

import (
	"crypto/sha256"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	webfront "github.com/novacoders/webfront"
	"github.com/novacoders/webfront/admin"
	"github.com/novacoders/webfront/middleware/csrf"
	"github.com/novacoders/webfront/middleware/guard"
	"go.uber.org/zap"
)

type App struct {
	config   *AppConfig
	logger   *zap.Logger
	storage  *webfront.BoltStorage
	sessions *webfront.SessionManager
	client   *webfront.Client
	auth     webfront.Authenticator
	routes   *webfront.RouteSession
	srv      router.Server[*fiber.App]
}

func (a *App) GetLogger(name string) webfront.Logger {
	return namedLogger(a.logger, name)
}

func main() {
	cfg := MustLoad()

	lgr, err := newZapLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer lgr.Sync()

	app := &App{config: cfg, logger: lgr}

	if err := WithStorage(app); err != nil {
		lgr.Fatal("session storage", zap.Error(err))
	}
	defer app.storage.Close()

	if err := WithHTTPServer(app); err != nil {
		lgr.Fatal("http server", zap.Error(err))
	}

	if err := WithAuth(app); err != nil {
		lgr.Fatal("auth wiring", zap.Error(err))
	}

	PublicRoutes(app)
	AdminRoutes(app)

	app.srv.Serve(cfg.Address())

	WaitExitSignal()
}

func WithStorage(app *App) error {
	storage, err := webfront.OpenBoltStorage(app.config.Session.StorePath)
	if err != nil {
		return err
	}

	app.storage = storage
	app.sessions = webfront.NewSessionManager(storage,
		webfront.WithManagerLogger(app.GetLogger("session")),
	)

	return nil
}

func WithHTTPServer(app *App) error {
	cfg := app.config

	engine := django.New(cfg.Views.Dir, ".html")
	engine.Debug(cfg.Views.Debug)

	for name, helper := range webfront.TemplateHelpers() {
		engine.AddFunc(name, helper)
	}

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:           cfg.AppName,
			UnescapePath:      true,
			StrictRouting:     false,
			PassLocalsToViews: true,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
			Views:             engine,
		}))
	})

	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	csrfCfg := csrf.Config{SessionCookie: cfg.Session.CookieName}
	if cfg.CSRF.SecureKey != "" {
		key := sha256.Sum256([]byte(cfg.CSRF.SecureKey))
		csrfCfg.SecureKey = key[:]
	}
	srv.Router().Use(csrf.New(csrfCfg))

	srv.Router().Static("/public", ".", router.Static{
		FS:   os.DirFS(cfg.Views.AssetsDir),
		Root: ".",
	})

	app.srv = srv

	return nil
}

func WithAuth(app *App) error {
	cfg := app.config

	client := webfront.NewClient(cfg.GetAPIBaseURL(),
		webfront.WithClientLogger(app.GetLogger("api")),
		webfront.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)
	app.client = client

	auther := webfront.NewAuthenticator(client).WithLogger(app.GetLogger("auth"))
	app.auth = auther

	routes, err := webfront.NewRouteSession(auther, app.sessions, cfg)
	if err != nil {
		return err
	}
	routes.Logger = app.GetLogger("auth:http")
	app.routes = routes

	webfront.RegisterAuthRoutes(app.srv.Router().Group("/"),
		webfront.WithControllerAuth(auther),
		webfront.WithControllerSessions(routes),
		webfront.WithControllerLogger(app.GetLogger("auth:ctrl")),
	)

	webfront.RegisterFormRoutes(app.srv.Router().Group("/"),
		webfront.WithFormsAPI(client),
		webfront.WithFormsLogger(app.GetLogger("forms")),
	)

	return nil
}

func renderWithGlobals(ctx router.Context, name string, data router.ViewContext) error {
	merged := webfront.MergeTemplateData(
		webfront.TemplateHelpersWithRouter(ctx, ""),
		data,
	)
	return ctx.Render(name, router.ViewContext(merged))
}

func PublicRoutes(app *App) {
	r := app.srv.Router()

	pages := []struct {
		route string
		view  string
		title string
	}{
		{"/", "home", "Nova Coders"},
		{"/about", "about", "About Us"},
		{"/services", "services", "What We Do"},
		{"/portfolio", "portfolio", "Our Work"},
		{"/events", "events", "Events"},
	}

	for _, page := range pages {
		view, title := page.view, page.title
		r.Get(page.route, func(ctx router.Context) error {
			return renderWithGlobals(ctx, view, router.ViewContext{
				"title": title,
			})
		}).SetName("pages." + view)
	}
}

func AdminRoutes(app *App) {
	cfg := app.config

	protected := guard.New(guard.Config{
		Resolver:         app.routes.Session,
		Auth:             app.auth,
		AdminOnly:        true,
		Revalidate:       true,
		LoginRoute:       "/login",
		RejectedRouteKey: cfg.Auth.RejectedRouteKey,
		DeniedHandler: func(c router.Context, err error) error {
			return c.Status(router.StatusForbidden).Render("errors/403", router.ViewContext{
				"error": err,
			})
		},
	})

	data := admin.NewDataManager(app.client,
		admin.WithManagerLogger(app.GetLogger("admin")),
	)
	data.MustValidate()

	admin.RegisterAdminRoutes(app.srv.Router().Group("/"),
		[]router.MiddlewareFunc{protected},
		admin.WithControllerData(data),
		admin.WithControllerLogger(app.GetLogger("admin:ctrl")),
	)
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
