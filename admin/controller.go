package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	webfront "github.com/novacoders/webfront"
)

// RegisterAdminRoutes mounts the moderation views. Pass the route guard as
// mw so only these routes require an admin session.
func RegisterAdminRoutes[T any](app router.Router[T], mw []router.MiddlewareFunc, opts ...ControllerOption) {

	controller := NewController(opts...)

	app.Get(controller.Routes.Dashboard, controller.Dashboard, mw...).SetName("admin.dashboard")

	app.Get(controller.Routes.Members, controller.MembersList, mw...).SetName("admin.members")
	app.Post(controller.Routes.Members+"/:id/status", controller.MemberStatusUpdate, mw...).
		SetName("admin.members.status")

	app.Get(controller.Routes.Contacts, controller.ContactsList, mw...).SetName("admin.contacts")
	app.Post(controller.Routes.Contacts+"/:id/status", controller.ContactStatusUpdate, mw...).
		SetName("admin.contacts.status")

	app.Get(controller.Routes.Messages, controller.MessagesList, mw...).SetName("admin.messages")
	app.Post(controller.Routes.Messages+"/:id/status", controller.MessageStatusUpdate, mw...).
		SetName("admin.messages.status")
}

type ControllerRoutes struct {
	Dashboard string
	Members   string
	Contacts  string
	Messages  string
}

type ControllerViews struct {
	Dashboard string
	Members   string
	Contacts  string
	Messages  string
}

type Controller struct {
	Logger       webfront.Logger
	Data         DataManager
	ErrorHandler router.ErrorHandler
	Routes       *ControllerRoutes
	Views        *ControllerViews
}

type ControllerOption func(*Controller) *Controller

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: webfront.DefaultLogger(),
		Routes: &ControllerRoutes{
			Dashboard: "/admin",
			Members:   "/admin/members",
			Contacts:  "/admin/contacts",
			Messages:  "/admin/messages",
		},
		Views: &ControllerViews{
			Dashboard: "admin/dashboard",
			Members:   "admin/members",
			Contacts:  "admin/contacts",
			Messages:  "admin/messages",
		},
	}

	c.ErrorHandler = c.defaultErrHandler

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Data == nil {
		panic("Missing DataManager in admin controller...")
	}

	return c
}

func WithControllerData(data DataManager) ControllerOption {
	return func(c *Controller) *Controller {
		c.Data = data
		return c
	}
}

func WithControllerLogger(logger webfront.Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// token pulls the validated credential the guard left in the request.
func (c *Controller) token(ctx router.Context) string {
	if store, ok := webfront.GetRouterSession(ctx); ok {
		return store.Token()
	}
	return ""
}

// parseFilters rebuilds the filter state from the query string. Applying
// the page last preserves explicit page navigation while any other change
// starts back at page 1.
func parseFilters(ctx router.Context) Filters {
	f := NewFilters()

	if status := ctx.Query("status", ""); status != "" {
		f = f.WithStatus(status)
	}
	if category := ctx.Query("category", ""); category != "" {
		f = f.WithCategory(category)
	}
	if priority := ctx.Query("priority", ""); priority != "" {
		f = f.WithPriority(priority)
	}
	if search := ctx.Query("search", ""); search != "" {
		f = f.WithSearch(search)
	}
	if limit, err := strconv.Atoi(ctx.Query("limit", "")); err == nil {
		f = f.WithLimit(limit)
	}
	if page, err := strconv.Atoi(ctx.Query("page", "1")); err == nil {
		f = f.WithPage(page)
	}

	return f
}

func (c *Controller) Dashboard(ctx router.Context) error {
	token := c.token(ctx)

	memberStats, err := c.Data.Members().Stats(ctx.Context(), token)
	if err != nil {
		c.Logger.Error("dashboard member stats: %v", err)
		return c.ErrorHandler(ctx, err)
	}

	messageStats, err := c.Data.Messages().Stats(ctx.Context(), token)
	if err != nil {
		c.Logger.Error("dashboard message stats: %v", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.Render(c.Views.Dashboard, router.ViewContext{
		"member_stats":  memberStats,
		"message_stats": messageStats,
	})
}

func (c *Controller) MembersList(ctx router.Context) error {
	filters := parseFilters(ctx)

	list, err := c.Data.Members().List(ctx.Context(), c.token(ctx), filters)
	if err != nil {
		c.Logger.Error("member list: %v", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.Render(c.Views.Members, router.ViewContext{
		"members":    list.Members,
		"pagination": list.Pagination,
		"filters":    filters,
		"statuses":   c.Data.Members().Machine().Statuses(),
	})
}

// StatusUpdatePayload is the transition form body.
type StatusUpdatePayload struct {
	From string `form:"from" json:"from"`
	To   string `form:"to" json:"to"`
}

func (c *Controller) MemberStatusUpdate(ctx router.Context) error {
	return c.statusUpdate(ctx, c.Routes.Members, func(id string, payload StatusUpdatePayload) error {
		_, err := c.Data.Members().UpdateStatus(
			ctx.Context(), c.token(ctx), id, payload.From, payload.To,
		)
		return err
	})
}

func (c *Controller) ContactsList(ctx router.Context) error {
	filters := parseFilters(ctx)

	list, err := c.Data.Contacts().List(ctx.Context(), c.token(ctx), filters)
	if err != nil {
		c.Logger.Error("contact list: %v", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.Render(c.Views.Contacts, router.ViewContext{
		"contacts":   list.Contacts,
		"pagination": list.Pagination,
		"filters":    filters,
		"statuses":   c.Data.Contacts().Machine().Statuses(),
	})
}

func (c *Controller) ContactStatusUpdate(ctx router.Context) error {
	return c.statusUpdate(ctx, c.Routes.Contacts, func(id string, payload StatusUpdatePayload) error {
		_, err := c.Data.Contacts().UpdateStatus(
			ctx.Context(), c.token(ctx), id, payload.From, payload.To,
		)
		return err
	})
}

func (c *Controller) MessagesList(ctx router.Context) error {
	filters := parseFilters(ctx)

	list, err := c.Data.Messages().List(ctx.Context(), c.token(ctx), filters)
	if err != nil {
		c.Logger.Error("message list: %v", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.Render(c.Views.Messages, router.ViewContext{
		"messages":   list.Messages,
		"pagination": list.Pagination,
		"filters":    filters,
		"statuses":   c.Data.Messages().Machine().Statuses(),
		"categories": webfront.MessageCategories,
		"priorities": webfront.MessagePriorities,
	})
}

func (c *Controller) MessageStatusUpdate(ctx router.Context) error {
	return c.statusUpdate(ctx, c.Routes.Messages, func(id string, payload StatusUpdatePayload) error {
		_, err := c.Data.Messages().UpdateStatus(
			ctx.Context(), c.token(ctx), id, payload.From, payload.To,
		)
		return err
	})
}

// statusUpdate handles a transition POST and sends the moderator back to
// the list they came from, filters intact.
func (c *Controller) statusUpdate(ctx router.Context, listRoute string, apply func(string, StatusUpdatePayload) error) error {
	id := ctx.Param("id", "")
	if id == "" {
		return c.ErrorHandler(ctx, webfront.ErrInvalidTransition)
	}

	payload := StatusUpdatePayload{}
	if err := ctx.Bind(&payload); err != nil {
		c.Logger.Error("status update parse payload: %v", err)
		return c.ErrorHandler(ctx, err)
	}

	back := listRoute
	if ref := string(ctx.Referer()); ref != "" {
		back = ref
	}

	if err := apply(id, payload); err != nil {
		c.Logger.Error("status update %s -> %s: %v", payload.From, payload.To, err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Could not update status",
		}).Redirect(back, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Status updated",
	}).Redirect(back, fiber.StatusSeeOther)
}

func (c *Controller) defaultErrHandler(ctx router.Context, err error) error {
	return ctx.Status(router.StatusInternalServerError).Render("errors/500", router.ViewContext{
		"error": err,
	})
}
