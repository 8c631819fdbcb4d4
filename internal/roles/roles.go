// Package roles implements the membership role model: the total rank
// order over the closed role set and the authorization checks every
// role mutation and removal must pass.
package roles

import (
	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/models"
)

// Rank returns the ordinal of a role in the total order
// GUEST(0) < ROOMMATE(1) < ASSISTANT(2) < HEAD_ROOMMATE(3).
// Unknown roles rank below GUEST so they never authorize anything.
func Rank(r models.Role) int {
	switch r {
	case models.RoleGuest:
		return 0
	case models.RoleRoommate:
		return 1
	case models.RoleAssistant:
		return 2
	case models.RoleHeadRoommate:
		return 3
	default:
		return -1
	}
}

// Authorize checks that actor may act on target's membership (removal,
// or as the base check for a role change). It fails Forbidden when the
// actor targets itself, or when the actor does not strictly outrank the
// target. Both memberships must belong to the same room.
func Authorize(actor, target *models.Membership) error {
	if actor.RoomID != target.RoomID {
		return apperr.Forbidden("memberships belong to different rooms")
	}
	if actor.ID == target.ID {
		return apperr.Forbidden("cannot act on your own membership")
	}
	if Rank(actor.Role) <= Rank(target.Role) {
		return apperr.Forbidden("requires a higher role than the target's")
	}
	return nil
}

// AuthorizeRoleChange checks that actor may change target's role to
// newRole. On top of Authorize, the granted rank must be strictly below
// the actor's own: an actor can never mint a peer or a superior.
func AuthorizeRoleChange(actor, target *models.Membership, newRole models.Role) error {
	if !models.ValidRole(newRole) {
		return apperr.Validation("unknown role %q", newRole)
	}
	if err := Authorize(actor, target); err != nil {
		return err
	}
	if Rank(newRole) >= Rank(actor.Role) {
		return apperr.Forbidden("cannot grant a role at or above your own")
	}
	return nil
}

// CanInvite reports whether a member's rank allows sending invitations
// (ASSISTANT and above).
func CanInvite(r models.Role) bool {
	return Rank(r) >= Rank(models.RoleAssistant)
}
