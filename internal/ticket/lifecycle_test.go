package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helpdesk-tools/deskctl/internal/model"
)

// legal is the full transition table; every (from, to) pair absent from it
// must be rejected for every actor.
var legal = map[model.Status][]model.Status{
	model.StatusPending:    {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress: {model.StatusResolved, model.StatusCancelled},
	model.StatusResolved:   {model.StatusClosed},
}

func TestTransitionTableIsClosed(t *testing.T) {
	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []model.Status{model.StatusClosed, model.StatusCancelled} {
		assert.True(t, Terminal(from))
		for _, role := range model.Roles {
			assert.Empty(t, NextStatuses(role, true, from))
			for _, to := range model.Statuses {
				err := Allowed(role, true, from, to)
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s: %s -> %s", role, from, to)
			}
		}
	}
}

func TestRoleGates(t *testing.T) {
	cases := []struct {
		name  string
		actor model.Role
		owns  bool
		from  model.Status
		to    model.Status
		want  error
	}{
		{"support starts work", model.RoleSupport, false, model.StatusPending, model.StatusInProgress, nil},
		{"admin starts work", model.RoleAdmin, false, model.StatusPending, model.StatusInProgress, nil},
		{"client cannot start work", model.RoleClient, true, model.StatusPending, model.StatusInProgress, ErrNotPermitted},
		{"owner client cancels pending", model.RoleClient, true, model.StatusPending, model.StatusCancelled, nil},
		{"non-owner client cannot cancel", model.RoleClient, false, model.StatusPending, model.StatusCancelled, ErrNotPermitted},
		{"support cancels pending", model.RoleSupport, false, model.StatusPending, model.StatusCancelled, nil},
		{"support resolves", model.RoleSupport, false, model.StatusInProgress, model.StatusResolved, nil},
		{"client cannot cancel in progress", model.RoleClient, true, model.StatusInProgress, model.StatusCancelled, ErrNotPermitted},
		{"admin cancels in progress", model.RoleAdmin, false, model.StatusInProgress, model.StatusCancelled, nil},
		{"support closes resolved", model.RoleSupport, false, model.StatusResolved, model.StatusClosed, nil},
		{"client cannot close resolved", model.RoleClient, true, model.StatusResolved, model.StatusClosed, ErrNotPermitted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Allowed(tc.actor, tc.owns, tc.from, tc.to)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

// A support agent advances a pending ticket, then tries to walk it back:
// the reverse edge does not exist.
func TestNoReverseTransitions(t *testing.T) {
	assert.NoError(t, Allowed(model.RoleSupport, false, model.StatusPending, model.StatusInProgress))
	err := Allowed(model.RoleSupport, false, model.StatusInProgress, model.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanRespond(t *testing.T) {
	assert.True(t, CanRespond(model.StatusPending))
	assert.True(t, CanRespond(model.StatusInProgress))
	assert.True(t, CanRespond(model.StatusResolved))
	assert.False(t, CanRespond(model.StatusClosed))
	assert.False(t, CanRespond(model.StatusCancelled))
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t,
		[]model.Status{model.StatusInProgress, model.StatusCancelled},
		NextStatuses(model.RoleSupport, false, model.StatusPending))

	assert.Equal(t,
		[]model.Status{model.StatusCancelled},
		NextStatuses(model.RoleClient, true, model.StatusPending))

	assert.Empty(t, NextStatuses(model.RoleClient, false, model.StatusPending))
	assert.Empty(t, NextStatuses(model.RoleClient, true, model.StatusInProgress))
}
