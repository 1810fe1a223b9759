// Package ticket holds the status state machine for support tickets: which
// transitions exist, who may invoke them, and when a ticket still accepts
// responses. It validates intent before the API is called; the server's
// answer to the actual PATCH stays authoritative.
package ticket

import (
	"errors"
	"fmt"

	"github.com/helpdesk-tools/deskctl/internal/model"
)

var (
	// ErrInvalidTransition is returned when no edge exists between the two
	// statuses, regardless of who asks.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotPermitted is returned when the edge exists but the acting role
	// (or non-owner client) may not take it.
	ErrNotPermitted = errors.New("role not permitted for this transition")
	// ErrTicketTerminal is returned when appending a response to a closed
	// or cancelled ticket.
	ErrTicketTerminal = errors.New("ticket is in a terminal state")
)

// edge is one legal transition with its role gate. ownerClient widens the
// gate to a CLIENT acting on their own ticket.
type edge struct {
	to          model.Status
	roles       []model.Role
	ownerClient bool
}

var supportAdmin = []model.Role{model.RoleSupport, model.RoleAdmin}

var transitions = map[model.Status][]edge{
	model.StatusPending: {
		{to: model.StatusInProgress, roles: supportAdmin},
		{to: model.StatusCancelled, roles: supportAdmin, ownerClient: true},
	},
	model.StatusInProgress: {
		{to: model.StatusResolved, roles: supportAdmin},
		{to: model.StatusCancelled, roles: supportAdmin},
	},
	model.StatusResolved: {
		{to: model.StatusClosed, roles: supportAdmin},
	},
	// CLOSED and CANCELLED are terminal: no outgoing edges.
}

// Terminal reports whether a ticket in this status accepts no further
// transitions.
func Terminal(s model.Status) bool {
	return s == model.StatusClosed || s == model.StatusCancelled
}

// CanRespond reports whether a ticket in this status still accepts new
// responses.
func CanRespond(s model.Status) bool {
	return !Terminal(s)
}

// CanTransition reports whether an edge from one status to another exists
// for anyone at all.
func CanTransition(from, to model.Status) bool {
	for _, e := range transitions[from] {
		if e.to == to {
			return true
		}
	}
	return false
}

// Allowed validates a transition attempt by a given actor. owns reports
// whether the actor is the ticket's owning client. The target status is
// never clamped or coerced: anything outside the table is an error.
func Allowed(actor model.Role, owns bool, from, to model.Status) error {
	for _, e := range transitions[from] {
		if e.to != to {
			continue
		}
		if e.permits(actor, owns) {
			return nil
		}
		return fmt.Errorf("%w: %s may not move a ticket from %s to %s", ErrNotPermitted, actor, from, to)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// NextStatuses lists the statuses the actor may move the ticket to from
// its current status, in table order. Empty for terminal states and for
// actors with no legal move.
func NextStatuses(actor model.Role, owns bool, from model.Status) []model.Status {
	var next []model.Status
	for _, e := range transitions[from] {
		if e.permits(actor, owns) {
			next = append(next, e.to)
		}
	}
	return next
}

func (e edge) permits(actor model.Role, owns bool) bool {
	if e.ownerClient && actor == model.RoleClient && owns {
		return true
	}
	for _, r := range e.roles {
		if r == actor {
			return true
		}
	}
	return false
}
