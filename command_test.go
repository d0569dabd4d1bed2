package webfront_test

import (
	"context"
	"testing"

	webfront "github.com/novacoders/webfront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJoinMessage() webfront.JoinMemberMessage {
	return webfront.JoinMemberMessage{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		University: "Analytical U",
		Motivation: "I want to build things with other people",
		Experience: "intermediate",
	}
}

func TestJoinMemberMessageValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, validJoinMessage().Validate())
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		msg := validJoinMessage()
		msg.Phone = ""
		msg.Github = ""
		msg.Linkedin = ""
		assert.NoError(t, msg.Validate())
	})

	t.Run("rejects bad values", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*webfront.JoinMemberMessage)
		}{
			{"missing name", func(m *webfront.JoinMemberMessage) { m.FullName = "" }},
			{"bad email", func(m *webfront.JoinMemberMessage) { m.Email = "not-an-email" }},
			{"bad phone", func(m *webfront.JoinMemberMessage) { m.Phone = "12345" }},
			{"short motivation", func(m *webfront.JoinMemberMessage) { m.Motivation = "meh" }},
			{"unknown experience", func(m *webfront.JoinMemberMessage) { m.Experience = "wizard" }},
			{"bad github url", func(m *webfront.JoinMemberMessage) { m.Github = "::not a url::" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				msg := validJoinMessage()
				tt.mutate(&msg)
				assert.Error(t, msg.Validate())
			})
		}
	})
}

func TestRegisterUserMessageValidate(t *testing.T) {
	valid := webfront.RegisterUserMessage{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}

	assert.NoError(t, valid.Validate())

	t.Run("short password", func(t *testing.T) {
		msg := valid
		msg.Password = "short"
		msg.ConfirmPassword = "short"
		assert.Error(t, msg.Validate())
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		msg := valid
		msg.ConfirmPassword = "different-one"
		assert.Error(t, msg.Validate())
	})
}

func TestContactRequestMessageValidate(t *testing.T) {
	valid := webfront.ContactRequestMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Sponsorship",
		Message: "We would like to sponsor a hackathon",
	}

	assert.NoError(t, valid.Validate())

	t.Run("missing subject", func(t *testing.T) {
		msg := valid
		msg.Subject = ""
		assert.Error(t, msg.Validate())
	})
}

func TestPostMessageMessageValidate(t *testing.T) {
	valid := webfront.PostMessageMessage{
		Name:     "Ada",
		Email:    "ada@example.com",
		Category: webfront.MessageCategoryGeneral,
		Priority: webfront.MessagePriorityLow,
		Content:  "When is the next hack night?",
	}

	assert.NoError(t, valid.Validate())

	t.Run("unknown category", func(t *testing.T) {
		msg := valid
		msg.Category = "gossip"
		assert.Error(t, msg.Validate())
	})

	t.Run("unknown priority", func(t *testing.T) {
		msg := valid
		msg.Priority = "urgent"
		assert.Error(t, msg.Validate())
	})
}

type fakeFormsAPI struct {
	joins    []webfront.JoinMemberMessage
	contacts []webfront.ContactRequestMessage
	posts    []webfront.PostMessageMessage
	result   webfront.Result
}

func (f *fakeFormsAPI) JoinMember(ctx context.Context, payload webfront.JoinMemberMessage) webfront.Result {
	f.joins = append(f.joins, payload)
	return f.result
}

func (f *fakeFormsAPI) CreateContact(ctx context.Context, payload webfront.ContactRequestMessage) webfront.Result {
	f.contacts = append(f.contacts, payload)
	return f.result
}

func (f *fakeFormsAPI) PostMessage(ctx context.Context, payload webfront.PostMessageMessage) webfront.Result {
	f.posts = append(f.posts, payload)
	return f.result
}

func TestJoinMemberHandler(t *testing.T) {
	t.Run("forwards a valid application", func(t *testing.T) {
		api := &fakeFormsAPI{result: webfront.Result{Success: true}}
		handler := webfront.NewJoinMemberHandler(api)

		require.NoError(t, handler.Execute(context.Background(), validJoinMessage()))
		require.Len(t, api.joins, 1)
		assert.Equal(t, "ada@example.com", api.joins[0].Email)
	})

	t.Run("invalid payload never reaches the backend", func(t *testing.T) {
		api := &fakeFormsAPI{result: webfront.Result{Success: true}}
		handler := webfront.NewJoinMemberHandler(api)

		msg := validJoinMessage()
		msg.Email = "nope"

		assert.Error(t, handler.Execute(context.Background(), msg))
		assert.Empty(t, api.joins)
	})

	t.Run("backend failure is surfaced", func(t *testing.T) {
		api := &fakeFormsAPI{result: webfront.Result{Success: false, Error: "duplicate application"}}
		handler := webfront.NewJoinMemberHandler(api)

		err := handler.Execute(context.Background(), validJoinMessage())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate application")
	})

	t.Run("cancelled context short-circuits", func(t *testing.T) {
		api := &fakeFormsAPI{result: webfront.Result{Success: true}}
		handler := webfront.NewJoinMemberHandler(api)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, handler.Execute(ctx, validJoinMessage()))
		assert.Empty(t, api.joins)
	})
}

func TestContactRequestHandler(t *testing.T) {
	api := &fakeFormsAPI{result: webfront.Result{Success: true}}
	handler := webfront.NewContactRequestHandler(api)

	require.NoError(t, handler.Execute(context.Background(), webfront.ContactRequestMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Just saying hello",
	}))
	assert.Len(t, api.contacts, 1)
}

func TestPostMessageHandler(t *testing.T) {
	api := &fakeFormsAPI{result: webfront.Result{Success: true}}
	handler := webfront.NewPostMessageHandler(api)

	require.NoError(t, handler.Execute(context.Background(), webfront.PostMessageMessage{
		Name:     "Ada",
		Email:    "ada@example.com",
		Category: webfront.MessageCategorySupport,
		Priority: webfront.MessagePriorityHigh,
		Content:  "The signup form is broken",
	}))
	require.Len(t, api.posts, 1)
	assert.Equal(t, webfront.MessagePriorityHigh, api.posts[0].Priority)
}
