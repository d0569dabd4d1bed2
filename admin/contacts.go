package admin

import (
	"context"

	webfront "github.com/novacoders/webfront"
)

// ContactList is one page of contact requests.
type ContactList struct {
	Contacts   []webfront.Contact
	Pagination Pagination
}

// ContactService backs the contact triage view.
type ContactService struct {
	api     API
	machine *webfront.StatusMachine
	logger  webfront.Logger
}

func NewContactService(api API) *ContactService {
	return &ContactService{
		api:     api,
		machine: webfront.ContactStatusMachine(),
		logger:  webfront.DefaultLogger(),
	}
}

// List fetches one page of contact requests for the given filter state.
func (s *ContactService) List(ctx context.Context, token string, f Filters) (*ContactList, error) {
	res := s.api.ListContacts(ctx, token, f.Query())
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	items, pagination, err := decodeList[webfront.Contact](res, "contacts")
	if err != nil {
		s.logger.Error("contact list decode: %v", err)
		return nil, webfront.WrapBackendFailure("malformed contact list response")
	}

	return &ContactList{
		Contacts:   items,
		Pagination: normalizePagination(pagination, f, len(items)),
	}, nil
}

// UpdateStatus moves a contact request through triage.
func (s *ContactService) UpdateStatus(ctx context.Context, token, id string, from, to webfront.ContactStatus) (*webfront.Contact, error) {
	if err := s.machine.Guard(from, to); err != nil {
		return nil, err
	}

	res := s.api.UpdateContactStatus(ctx, token, id, to)
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	updated := &webfront.Contact{}
	if err := res.Decode(updated); err != nil || updated.ID == "" {
		updated = &webfront.Contact{ID: id, Status: to}
	}

	return updated, nil
}

// Machine exposes the lifecycle table for rendering action buttons.
func (s *ContactService) Machine() *webfront.StatusMachine {
	return s.machine
}
