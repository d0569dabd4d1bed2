package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	webfront "github.com/novacoders/webfront"
	"github.com/novacoders/webfront/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements admin.API with canned results and records the last
// request each endpoint saw.
type fakeAPI struct {
	listResult   webfront.Result
	updateResult webfront.Result
	statsResult  webfront.Result

	lastQuery  url.Values
	lastID     string
	lastStatus string
	lastToken  string
	updates    int
}

func ok(payload string) webfront.Result {
	return webfront.Result{Success: true, Data: json.RawMessage(payload), StatusCode: 200}
}

func (f *fakeAPI) ListMembers(ctx context.Context, token string, query url.Values) webfront.Result {
	f.lastToken, f.lastQuery = token, query
	return f.listResult
}

func (f *fakeAPI) UpdateMemberStatus(ctx context.Context, token, id string, status webfront.MemberStatus) webfront.Result {
	f.lastToken, f.lastID, f.lastStatus = token, id, status
	f.updates++
	return f.updateResult
}

func (f *fakeAPI) MemberStats(ctx context.Context, token string) webfront.Result {
	f.lastToken = token
	return f.statsResult
}

func (f *fakeAPI) ListContacts(ctx context.Context, token string, query url.Values) webfront.Result {
	f.lastToken, f.lastQuery = token, query
	return f.listResult
}

func (f *fakeAPI) UpdateContactStatus(ctx context.Context, token, id string, status webfront.ContactStatus) webfront.Result {
	f.lastToken, f.lastID, f.lastStatus = token, id, status
	f.updates++
	return f.updateResult
}

func (f *fakeAPI) ListMessages(ctx context.Context, token string, query url.Values) webfront.Result {
	f.lastToken, f.lastQuery = token, query
	return f.listResult
}

func (f *fakeAPI) UpdateMessageStatus(ctx context.Context, token, id string, status webfront.MessageStatus) webfront.Result {
	f.lastToken, f.lastID, f.lastStatus = token, id, status
	f.updates++
	return f.updateResult
}

func (f *fakeAPI) MessageStats(ctx context.Context, token string) webfront.Result {
	f.lastToken = token
	return f.statsResult
}

func TestMemberServiceList(t *testing.T) {
	t.Run("envelope with pagination", func(t *testing.T) {
		api := &fakeAPI{listResult: ok(`{
			"data":[{"id":"m1","fullName":"Ada","status":"pending"}],
			"pagination":{"current":2,"pages":5,"totalRecords":41}
		}`)}

		svc := admin.NewMemberService(api)
		filters := admin.NewFilters().WithStatus("pending").WithPage(2)

		list, err := svc.List(context.Background(), "tok", filters)
		require.NoError(t, err)

		require.Len(t, list.Members, 1)
		assert.Equal(t, "Ada", list.Members[0].FullName)
		assert.Equal(t, 2, list.Pagination.Current)
		assert.Equal(t, 41, list.Pagination.TotalCount())

		assert.Equal(t, "tok", api.lastToken)
		assert.Equal(t, "pending", api.lastQuery.Get("status"))
		assert.Equal(t, "2", api.lastQuery.Get("page"))
	})

	t.Run("bare array gets synthesized pagination", func(t *testing.T) {
		api := &fakeAPI{listResult: ok(`[{"id":"m1"},{"id":"m2"}]`)}

		svc := admin.NewMemberService(api)
		list, err := svc.List(context.Background(), "tok", admin.NewFilters())
		require.NoError(t, err)

		assert.Len(t, list.Members, 2)
		assert.Equal(t, 1, list.Pagination.Current)
		assert.Equal(t, 1, list.Pagination.Pages)
		assert.Equal(t, 2, list.Pagination.TotalCount())
	})

	t.Run("resource-named key is accepted", func(t *testing.T) {
		api := &fakeAPI{listResult: ok(`{"members":[{"id":"m1"}],"count":1}`)}

		svc := admin.NewMemberService(api)
		list, err := svc.List(context.Background(), "tok", admin.NewFilters())
		require.NoError(t, err)
		assert.Len(t, list.Members, 1)
	})

	t.Run("backend failure", func(t *testing.T) {
		api := &fakeAPI{listResult: webfront.Result{Success: false, Error: "boom"}}

		svc := admin.NewMemberService(api)
		_, err := svc.List(context.Background(), "tok", admin.NewFilters())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestMemberServiceUpdateStatus(t *testing.T) {
	t.Run("legal transition reaches the backend", func(t *testing.T) {
		api := &fakeAPI{updateResult: ok(`{"id":"m1","status":"approved"}`)}

		svc := admin.NewMemberService(api)
		updated, err := svc.UpdateStatus(context.Background(), "tok", "m1",
			webfront.MemberStatusPending, webfront.MemberStatusApproved)
		require.NoError(t, err)

		assert.Equal(t, webfront.MemberStatusApproved, updated.Status)
		assert.Equal(t, "m1", api.lastID)
		assert.Equal(t, "approved", api.lastStatus)
	})

	t.Run("illegal transition never reaches the backend", func(t *testing.T) {
		api := &fakeAPI{updateResult: ok(`{}`)}

		svc := admin.NewMemberService(api)
		_, err := svc.UpdateStatus(context.Background(), "tok", "m1",
			webfront.MemberStatusInactive, webfront.MemberStatusRejected)
		require.Error(t, err)
		assert.Zero(t, api.updates)

		var rich *goerrors.Error
		require.True(t, errors.As(err, &rich))
		assert.Equal(t, goerrors.CategoryValidation, rich.Category)
	})

	t.Run("ack-only response falls back to the requested state", func(t *testing.T) {
		api := &fakeAPI{updateResult: ok(`{"success":true}`)}

		svc := admin.NewMemberService(api)
		updated, err := svc.UpdateStatus(context.Background(), "tok", "m1",
			webfront.MemberStatusPending, webfront.MemberStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, "m1", updated.ID)
		assert.Equal(t, webfront.MemberStatusRejected, updated.Status)
	})
}

func TestMemberServiceStats(t *testing.T) {
	api := &fakeAPI{statsResult: ok(`{"total":12,"pending":3,"approved":7,"rejected":1,"inactive":1}`)}

	svc := admin.NewMemberService(api)
	stats, err := svc.Stats(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Total)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 7, stats.Approved)
}

func TestContactService(t *testing.T) {
	t.Run("list decodes contacts", func(t *testing.T) {
		api := &fakeAPI{listResult: ok(`{"contacts":[{"id":"c1","subject":"Hello","status":"new"}]}`)}

		svc := admin.NewContactService(api)
		list, err := svc.List(context.Background(), "tok", admin.NewFilters())
		require.NoError(t, err)
		require.Len(t, list.Contacts, 1)
		assert.Equal(t, "Hello", list.Contacts[0].Subject)
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		api := &fakeAPI{updateResult: ok(`{}`)}

		svc := admin.NewContactService(api)
		_, err := svc.UpdateStatus(context.Background(), "tok", "c1",
			webfront.ContactStatusResolved, webfront.ContactStatusRead)
		require.Error(t, err)
		assert.Zero(t, api.updates)

		var rich *goerrors.Error
		require.True(t, errors.As(err, &rich))
		assert.Equal(t, goerrors.CategoryConflict, rich.Category)
		assert.Equal(t, "TERMINAL_STATUS", rich.TextCode)
	})
}

func TestMessageService(t *testing.T) {
	t.Run("list decodes messages", func(t *testing.T) {
		api := &fakeAPI{listResult: ok(`{
			"messages":[{"id":"x1","category":"support","priority":"high","status":"unread"}],
			"pagination":{"current":1,"pages":1,"total":1}
		}`)}

		svc := admin.NewMessageService(api)
		list, err := svc.List(context.Background(), "tok",
			admin.NewFilters().WithCategory("support").WithPriority("high"))
		require.NoError(t, err)

		require.Len(t, list.Messages, 1)
		assert.Equal(t, "high", list.Messages[0].Priority)
		assert.Equal(t, "support", api.lastQuery.Get("category"))
		assert.Equal(t, "high", api.lastQuery.Get("priority"))
	})

	t.Run("stats", func(t *testing.T) {
		api := &fakeAPI{statsResult: ok(`{"total":9,"unread":4,"read":3,"resolved":2}`)}

		svc := admin.NewMessageService(api)
		stats, err := svc.Stats(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Unread)
	})
}

func TestDataManager(t *testing.T) {
	api := &fakeAPI{}
	manager := admin.NewDataManager(api)

	assert.NoError(t, manager.Validate())
	assert.NotNil(t, manager.Members())
	assert.NotNil(t, manager.Contacts())
	assert.NotNil(t, manager.Messages())
	assert.NotPanics(t, manager.MustValidate)
}
