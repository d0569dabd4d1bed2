package webfront

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// FormsAPI is the slice of the backend surface the public form submissions
// use. The full Client satisfies it.
type FormsAPI interface {
	memberJoinAPI
	contactAPI
	messagePostAPI
}

func RegisterFormRoutes[T any](app router.Router[T], opts ...FormsControllerOption) {

	controller := NewFormsController(opts...)

	app.Get(controller.Routes.Join, controller.JoinShow).SetName("join.get")
	app.Post(controller.Routes.Join, controller.JoinPost).SetName("join.post")

	app.Get(controller.Routes.Contact, controller.ContactShow).SetName("contact.get")
	app.Post(controller.Routes.Contact, controller.ContactPost).SetName("contact.post")

	app.Get(controller.Routes.Message, controller.MessageShow).SetName("message.get")
	app.Post(controller.Routes.Message, controller.MessagePost).SetName("message.post")
}

type FormsControllerRoutes struct {
	Join    string
	Contact string
	Message string
}

type FormsControllerViews struct {
	Join    string
	Contact string
	Message string
}

type FormsController struct {
	Logger Logger
	API    FormsAPI
	Routes *FormsControllerRoutes
	Views  *FormsControllerViews
}

type FormsControllerOption func(*FormsController) *FormsController

func NewFormsController(opts ...FormsControllerOption) *FormsController {
	c := &FormsController{
		Logger: defLogger{},
		Routes: &FormsControllerRoutes{
			Join:    "/join",
			Contact: "/contact",
			Message: "/messages/new",
		},
		Views: &FormsControllerViews{
			Join:    "join",
			Contact: "contact",
			Message: "message",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.API == nil {
		panic("Missing FormsAPI in forms controller...")
	}

	return c
}

func WithFormsAPI(api FormsAPI) FormsControllerOption {
	return func(c *FormsController) *FormsController {
		c.API = api
		return c
	}
}

func WithFormsLogger(logger Logger) FormsControllerOption {
	return func(c *FormsController) *FormsController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func (f *FormsController) JoinShow(ctx router.Context) error {
	return ctx.Render(f.Views.Join, router.ViewContext{
		"errors":      map[string]string{},
		"record":      JoinMemberMessage{},
		"experiences": ExperienceLevels,
	})
}

func (f *FormsController) JoinPost(ctx router.Context) error {
	payload := new(JoinMemberMessage)

	if err := ctx.Bind(payload); err != nil {
		f.Logger.Error("join member parse payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(f.Views.Join, router.ViewContext{
			"errors":      map[string]string{"form": "Failed to parse form"},
			"record":      payload,
			"experiences": ExperienceLevels,
		})
	}

	handler := NewJoinMemberHandler(f.API)
	if err := handler.Execute(ctx.Context(), *payload); err != nil {
		f.Logger.Error("join member error: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Could not submit application",
		}).Render(f.Views.Join, router.ViewContext{
			"record":      payload,
			"validation":  FormatValidationErrorToMap(err),
			"experiences": ExperienceLevels,
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Application received, we will be in touch",
	}).Redirect("/", fiber.StatusSeeOther)
}

func (f *FormsController) ContactShow(ctx router.Context) error {
	return ctx.Render(f.Views.Contact, router.ViewContext{
		"errors": map[string]string{},
		"record": ContactRequestMessage{},
	})
}

func (f *FormsController) ContactPost(ctx router.Context) error {
	payload := new(ContactRequestMessage)

	if err := ctx.Bind(payload); err != nil {
		f.Logger.Error("contact parse payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(f.Views.Contact, router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		})
	}

	handler := NewContactRequestHandler(f.API)
	if err := handler.Execute(ctx.Context(), *payload); err != nil {
		f.Logger.Error("contact request error: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Could not send your message",
		}).Render(f.Views.Contact, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Thanks for reaching out",
	}).Redirect("/", fiber.StatusSeeOther)
}

func (f *FormsController) MessageShow(ctx router.Context) error {
	return ctx.Render(f.Views.Message, router.ViewContext{
		"errors":     map[string]string{},
		"record":     PostMessageMessage{},
		"categories": MessageCategories,
		"priorities": MessagePriorities,
	})
}

func (f *FormsController) MessagePost(ctx router.Context) error {
	payload := new(PostMessageMessage)

	if err := ctx.Bind(payload); err != nil {
		f.Logger.Error("post message parse payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(f.Views.Message, router.ViewContext{
			"errors":     map[string]string{"form": "Failed to parse form"},
			"record":     payload,
			"categories": MessageCategories,
			"priorities": MessagePriorities,
		})
	}

	handler := NewPostMessageHandler(f.API)
	if err := handler.Execute(ctx.Context(), *payload); err != nil {
		f.Logger.Error("post message error: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Could not post your message",
		}).Render(f.Views.Message, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			"categories": MessageCategories,
			"priorities": MessagePriorities,
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Message received",
	}).Redirect("/", fiber.StatusSeeOther)
}
