package admin

import (
	"context"

	webfront "github.com/novacoders/webfront"
)

// MessageList is one page of inbox messages.
type MessageList struct {
	Messages   []webfront.Message
	Pagination Pagination
}

// MessageStats is the dashboard summary for the inbox.
type MessageStats struct {
	Total    int `json:"total"`
	Unread   int `json:"unread"`
	Read     int `json:"read"`
	Resolved int `json:"resolved"`
}

// MessageService backs the inbox triage view.
type MessageService struct {
	api     API
	machine *webfront.StatusMachine
	logger  webfront.Logger
}

func NewMessageService(api API) *MessageService {
	return &MessageService{
		api:     api,
		machine: webfront.MessageStatusMachine(),
		logger:  webfront.DefaultLogger(),
	}
}

// List fetches one page of messages for the given filter state.
func (s *MessageService) List(ctx context.Context, token string, f Filters) (*MessageList, error) {
	res := s.api.ListMessages(ctx, token, f.Query())
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	items, pagination, err := decodeList[webfront.Message](res, "messages")
	if err != nil {
		s.logger.Error("message list decode: %v", err)
		return nil, webfront.WrapBackendFailure("malformed message list response")
	}

	return &MessageList{
		Messages:   items,
		Pagination: normalizePagination(pagination, f, len(items)),
	}, nil
}

// UpdateStatus moves a message through triage.
func (s *MessageService) UpdateStatus(ctx context.Context, token, id string, from, to webfront.MessageStatus) (*webfront.Message, error) {
	if err := s.machine.Guard(from, to); err != nil {
		return nil, err
	}

	res := s.api.UpdateMessageStatus(ctx, token, id, to)
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	updated := &webfront.Message{}
	if err := res.Decode(updated); err != nil || updated.ID == "" {
		updated = &webfront.Message{ID: id, Status: to}
	}

	return updated, nil
}

// Stats fetches the inbox summary.
func (s *MessageService) Stats(ctx context.Context, token string) (*MessageStats, error) {
	res := s.api.MessageStats(ctx, token)
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	stats := &MessageStats{}
	if err := res.Decode(stats); err != nil {
		return nil, webfront.WrapBackendFailure("malformed message stats response")
	}

	return stats, nil
}

// Machine exposes the lifecycle table for rendering action buttons.
func (s *MessageService) Machine() *webfront.StatusMachine {
	return s.machine
}
