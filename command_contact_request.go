package webfront

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

type ContactRequestMessage struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}

func (e ContactRequestMessage) Type() string { return "contact.create" }

// Validate will validate the payload
func (e ContactRequestMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Subject, validation.Required, validation.Length(1, 300)),
		validation.Field(&e.Message, validation.Required, validation.Length(10, 5000)),
	)
}

type contactAPI interface {
	CreateContact(ctx context.Context, payload ContactRequestMessage) Result
}

type ContactRequestHandler struct {
	api contactAPI
}

func NewContactRequestHandler(api contactAPI) *ContactRequestHandler {
	return &ContactRequestHandler{api: api}
}

func (h *ContactRequestHandler) Execute(ctx context.Context, event ContactRequestMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during contact request",
		)
	default:
	}

	if err := event.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid contact request")
	}

	if res := h.api.CreateContact(ctx, event); !res.Success {
		return WrapBackendFailure(res.Error)
	}

	return nil
}
