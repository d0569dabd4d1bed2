package webfront

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// ExperienceLevels the join form accepts.
var ExperienceLevels = []interface{}{
	"beginner",
	"intermediate",
	"advanced",
	"professional",
}

type JoinMemberMessage struct {
	FullName   string   `form:"full_name" json:"fullName"`
	Email      string   `form:"email" json:"email"`
	Phone      string   `form:"phone" json:"phone"`
	University string   `form:"university" json:"university"`
	Year       string   `form:"year" json:"year"`
	Interests  []string `form:"interests" json:"interests"`
	Motivation string   `form:"motivation" json:"motivation"`
	Experience string   `form:"experience" json:"experience"`
	Github     string   `form:"github" json:"github"`
	Linkedin   string   `form:"linkedin" json:"linkedin"`
	Newsletter bool     `form:"newsletter" json:"newsletter"`
}

func (e JoinMemberMessage) Type() string { return "member.join" }

// Validate will validate the payload
func (e JoinMemberMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Phone, validation.By(ValidatePhoneNumber("US"))),
		validation.Field(&e.University, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Motivation, validation.Required, validation.Length(10, 2000)),
		validation.Field(&e.Experience, validation.Required, validation.In(ExperienceLevels...)),
		validation.Field(&e.Github, is.URL),
		validation.Field(&e.Linkedin, is.URL),
	)
}

type memberJoinAPI interface {
	JoinMember(ctx context.Context, payload JoinMemberMessage) Result
}

type JoinMemberHandler struct {
	api memberJoinAPI
}

func NewJoinMemberHandler(api memberJoinAPI) *JoinMemberHandler {
	return &JoinMemberHandler{api: api}
}

func (h *JoinMemberHandler) Execute(ctx context.Context, event JoinMemberMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during membership application",
		)
	default:
	}

	if err := event.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid membership application")
	}

	if res := h.api.JoinMember(ctx, event); !res.Success {
		return WrapBackendFailure(res.Error)
	}

	return nil
}
