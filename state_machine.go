package webfront

import (
	"sort"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	textCodeTerminalState     = "TERMINAL_STATUS"
)

// ErrInvalidTransition is returned when a requested status change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid status transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// ErrTerminalState is returned when attempting to move away from a terminal status.
var ErrTerminalState = goerrors.New("status is terminal", goerrors.CategoryConflict).
	WithTextCode(textCodeTerminalState).
	WithCode(goerrors.CodeConflict)

// StatusMachine validates moderation status changes before they are sent to
// the backend. Statuses are plain strings so one implementation covers
// members, contacts and messages.
type StatusMachine struct {
	resource    string
	transitions map[string]map[string]struct{}
	terminal    map[string]struct{}
}

// NewStatusMachine builds a machine from an allowed-transition table. Keys
// with no outgoing transitions are treated as terminal.
func NewStatusMachine(resource string, transitions map[string][]string) *StatusMachine {
	sm := &StatusMachine{
		resource:    resource,
		transitions: map[string]map[string]struct{}{},
		terminal:    map[string]struct{}{},
	}

	for from, targets := range transitions {
		if len(targets) == 0 {
			sm.terminal[from] = struct{}{}
			continue
		}
		allowed := make(map[string]struct{}, len(targets))
		for _, to := range targets {
			allowed[to] = struct{}{}
		}
		sm.transitions[from] = allowed
	}

	return sm
}

// CanTransition reports whether from may move to target.
func (sm *StatusMachine) CanTransition(from, to string) bool {
	if allowed, ok := sm.transitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}

// Guard returns nil when the transition is legal. A same-status change is a
// no-op and always legal.
func (sm *StatusMachine) Guard(from, to string) error {
	if to == "" {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"resource": sm.resource,
			"reason":   "target status is empty",
		})
	}

	if from == to {
		return nil
	}

	if _, terminal := sm.terminal[from]; terminal {
		return ErrTerminalState.WithMetadata(map[string]any{
			"resource": sm.resource,
			"from":     from,
			"to":       to,
		})
	}

	if !sm.CanTransition(from, to) {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"resource": sm.resource,
			"from":     from,
			"to":       to,
		})
	}

	return nil
}

// Statuses returns every status the machine knows about, sorted so the
// order is stable across calls.
func (sm *StatusMachine) Statuses() []string {
	seen := map[string]struct{}{}
	out := []string{}

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for from, targets := range sm.transitions {
		add(from)
		for to := range targets {
			add(to)
		}
	}
	for s := range sm.terminal {
		add(s)
	}

	sort.Strings(out)
	return out
}

// MemberStatusMachine returns the moderation lifecycle for membership
// applications.
func MemberStatusMachine() *StatusMachine {
	return NewStatusMachine("member", map[string][]string{
		MemberStatusPending:  {MemberStatusApproved, MemberStatusRejected},
		MemberStatusApproved: {MemberStatusInactive, MemberStatusRejected},
		MemberStatusInactive: {MemberStatusApproved},
		MemberStatusRejected: {MemberStatusApproved},
	})
}

// ContactStatusMachine returns the triage lifecycle for contact requests.
func ContactStatusMachine() *StatusMachine {
	return NewStatusMachine("contact", map[string][]string{
		ContactStatusNew:      {ContactStatusRead, ContactStatusResolved},
		ContactStatusRead:     {ContactStatusResolved},
		ContactStatusResolved: {},
	})
}

// MessageStatusMachine returns the triage lifecycle for inbox messages.
func MessageStatusMachine() *StatusMachine {
	return NewStatusMachine("message", map[string][]string{
		MessageStatusUnread:   {MessageStatusRead, MessageStatusResolved},
		MessageStatusRead:     {MessageStatusResolved},
		MessageStatusResolved: {},
	})
}
