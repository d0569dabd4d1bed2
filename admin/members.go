package admin

import (
	"context"

	webfront "github.com/novacoders/webfront"
)

// MemberList is one page of membership applications.
type MemberList struct {
	Members    []webfront.Member
	Pagination Pagination
}

// MemberStats is the dashboard summary for membership applications.
type MemberStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Inactive int `json:"inactive"`
}

// MemberService backs the members moderation view.
type MemberService struct {
	api     API
	machine *webfront.StatusMachine
	logger  webfront.Logger
}

func NewMemberService(api API) *MemberService {
	return &MemberService{
		api:     api,
		machine: webfront.MemberStatusMachine(),
		logger:  webfront.DefaultLogger(),
	}
}

// List fetches one page of applications for the given filter state.
func (s *MemberService) List(ctx context.Context, token string, f Filters) (*MemberList, error) {
	res := s.api.ListMembers(ctx, token, f.Query())
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	items, pagination, err := decodeList[webfront.Member](res, "members")
	if err != nil {
		s.logger.Error("member list decode: %v", err)
		return nil, webfront.WrapBackendFailure("malformed member list response")
	}

	return &MemberList{
		Members:    items,
		Pagination: normalizePagination(pagination, f, len(items)),
	}, nil
}

// UpdateStatus moves an application through its moderation lifecycle. The
// transition is validated locally before the backend is asked, and the
// update is not applied optimistically: the caller re-reads the list after
// a success.
func (s *MemberService) UpdateStatus(ctx context.Context, token, id string, from, to webfront.MemberStatus) (*webfront.Member, error) {
	if err := s.machine.Guard(from, to); err != nil {
		return nil, err
	}

	res := s.api.UpdateMemberStatus(ctx, token, id, to)
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	updated := &webfront.Member{}
	if err := res.Decode(updated); err != nil || updated.ID == "" {
		// some backend versions return only an ack
		updated = &webfront.Member{ID: id, Status: to}
	}

	return updated, nil
}

// Stats fetches the dashboard summary.
func (s *MemberService) Stats(ctx context.Context, token string) (*MemberStats, error) {
	res := s.api.MemberStats(ctx, token)
	if !res.Success {
		return nil, webfront.WrapBackendFailure(res.Error)
	}

	stats := &MemberStats{}
	if err := res.Decode(stats); err != nil {
		return nil, webfront.WrapBackendFailure("malformed member stats response")
	}

	return stats, nil
}

// Machine exposes the lifecycle table for rendering action buttons.
func (s *MemberService) Machine() *webfront.StatusMachine {
	return s.machine
}
