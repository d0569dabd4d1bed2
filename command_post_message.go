package webfront

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

type PostMessageMessage struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Category string `form:"category" json:"category"`
	Priority string `form:"priority" json:"priority"`
	Content  string `form:"content" json:"content"`
}

func (e PostMessageMessage) Type() string { return "message.post" }

// Validate will validate the payload
func (e PostMessageMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Category, validation.Required, validation.In(messageCategoryValues()...)),
		validation.Field(&e.Priority, validation.Required, validation.In(messagePriorityValues()...)),
		validation.Field(&e.Content, validation.Required, validation.Length(5, 5000)),
	)
}

func messageCategoryValues() []interface{} {
	out := make([]interface{}, 0, len(MessageCategories))
	for _, c := range MessageCategories {
		out = append(out, string(c))
	}
	return out
}

func messagePriorityValues() []interface{} {
	out := make([]interface{}, 0, len(MessagePriorities))
	for _, p := range MessagePriorities {
		out = append(out, string(p))
	}
	return out
}

type messagePostAPI interface {
	PostMessage(ctx context.Context, payload PostMessageMessage) Result
}

type PostMessageHandler struct {
	api messagePostAPI
}

func NewPostMessageHandler(api messagePostAPI) *PostMessageHandler {
	return &PostMessageHandler{api: api}
}

func (h *PostMessageHandler) Execute(ctx context.Context, event PostMessageMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled while posting message",
		)
	default:
	}

	if err := event.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid message payload")
	}

	if res := h.api.PostMessage(ctx, event); !res.Success {
		return WrapBackendFailure(res.Error)
	}

	return nil
}
