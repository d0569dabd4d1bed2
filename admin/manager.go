// Package admin drives the moderation dashboard: paginated, filterable
// list views over members, contact requests and inbox messages, guarded
// status transitions, and the stats panel.
package admin

import (
	"context"
	"errors"
	"log"
	"net/url"

	webfront "github.com/novacoders/webfront"
)

// API is the slice of the backend surface the dashboard uses. The full
// webfront.Client satisfies it.
type API interface {
	ListMembers(ctx context.Context, token string, query url.Values) webfront.Result
	UpdateMemberStatus(ctx context.Context, token, id string, status webfront.MemberStatus) webfront.Result
	MemberStats(ctx context.Context, token string) webfront.Result

	ListContacts(ctx context.Context, token string, query url.Values) webfront.Result
	UpdateContactStatus(ctx context.Context, token, id string, status webfront.ContactStatus) webfront.Result

	ListMessages(ctx context.Context, token string, query url.Values) webfront.Result
	UpdateMessageStatus(ctx context.Context, token, id string, status webfront.MessageStatus) webfront.Result
	MessageStats(ctx context.Context, token string) webfront.Result
}

// DataManager bundles the three moderation services.
type DataManager interface {
	Members() *MemberService
	Contacts() *ContactService
	Messages() *MessageService
	Validate() error
	MustValidate()
}

type mngr struct {
	members  *MemberService
	contacts *ContactService
	messages *MessageService
}

type ManagerOption func(*mngr)

// WithManagerLogger sets the logger shared by the services.
func WithManagerLogger(logger webfront.Logger) ManagerOption {
	return func(m *mngr) {
		if logger == nil {
			return
		}
		m.members.logger = logger
		m.contacts.logger = logger
		m.messages.logger = logger
	}
}

func NewDataManager(api API, opts ...ManagerOption) DataManager {
	m := &mngr{
		members:  NewMemberService(api),
		contacts: NewContactService(api),
		messages: NewMessageService(api),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

func (m mngr) Validate() error {
	if m.members == nil {
		return errors.New("member service should be initialized")
	}

	if m.contacts == nil {
		return errors.New("contact service should be initialized")
	}

	if m.messages == nil {
		return errors.New("message service should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) Members() *MemberService {
	return m.members
}

func (m mngr) Contacts() *ContactService {
	return m.contacts
}

func (m mngr) Messages() *MessageService {
	return m.messages
}
