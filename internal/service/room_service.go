// Package service implements the domain operations over rooms,
// memberships, chores, utilities, ledger entries and grocery lists.
// Services validate and authorize before any mutation and serialize
// room-scoped writes through per-room locks.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/invite"
	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/roles"
	"github.com/jagmansidhu/DaRoommate/internal/storage"
)

// codeAlphabet excludes look-alike characters (0/O, 1/I/L) since codes
// are read aloud and typed by hand.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 8

	// codeAttempts bounds collision retries before giving up.
	codeAttempts = 10
)

// RoomService owns room and membership lifecycles: creation, joining
// by code, invitations, role changes, removals and cascading deletion.
type RoomService struct {
	store   storage.Store
	locks   *lockSet
	users   *lockSet
	invites *invite.Dispatcher
}

// NewRoomService creates a RoomService. The dispatcher delivers
// invitations asynchronously and may be shared with other services.
func NewRoomService(store storage.Store, invites *invite.Dispatcher) *RoomService {
	return &RoomService{
		store:   store,
		locks:   newLockSet(),
		users:   newLockSet(),
		invites: invites,
	}
}

// Locks exposes the per-room lock set so sibling services serialize
// against the same locks.
func (s *RoomService) Locks() *lockSet { return s.locks }

// CreateRoom creates a room with the caller as HEAD_ROOMMATE. Fails
// LimitExceeded when the caller already holds the maximum number of
// active memberships.
func (s *RoomService) CreateRoom(ctx context.Context, userID, displayName, name, address, description string) (*models.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("room name is required")
	}

	// The membership cap spans rooms, so the count check and the insert
	// must not interleave with another create or join by the same user.
	unlock := s.users.lock(userID)
	defer unlock()

	count, err := s.store.CountActiveMembershipsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxUserMemberships {
		return nil, apperr.LimitExceeded("you already belong to %d rooms", models.MaxUserMemberships)
	}

	code, err := s.allocateCode(ctx)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		Name:        name,
		Address:     address,
		Description: description,
		Code:        code,
		CreatedBy:   userID,
		State:       models.RoomActive,
	}
	owner := &models.Membership{
		UserID:      userID,
		DisplayName: displayName,
		Role:        models.RoleHeadRoommate,
		State:       models.MemberActive,
	}
	if err := s.store.CreateRoom(ctx, room, owner); err != nil {
		return nil, err
	}
	room.Members = []models.Membership{*owner}

	slog.Info("room created", "room_id", room.ID, "code", room.Code, "created_by", userID)
	return room, nil
}

// allocateCode generates a join code, retrying on the rare collision
// with an existing active room.
func (s *RoomService) allocateCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		_, err = s.store.GetActiveRoomByCode(ctx, code)
		if errors.Is(err, apperr.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("failed to allocate a unique room code")
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate room code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// JoinRoom adds the caller to the room matching the code. Fails
// NotFound on an unknown code, Conflict when the caller is already an
// active member, and LimitExceeded when either the room cap or the
// caller's membership cap would be broken.
func (s *RoomService) JoinRoom(ctx context.Context, userID, displayName, code string) (*models.Room, error) {
	room, err := s.store.GetActiveRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(room.ID)
	defer unlock()

	// Re-read under the lock; a concurrent join may have changed the count.
	room, err = s.store.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	for _, m := range room.ActiveMembers() {
		if m.UserID == userID {
			return nil, apperr.Conflict("already a member of this room")
		}
	}
	if len(room.ActiveMembers()) >= models.MaxRoomMembers {
		return nil, apperr.LimitExceeded("room already has %d members", models.MaxRoomMembers)
	}

	// The cross-room membership cap needs the same per-user serialization
	// as CreateRoom. Always room lock before user lock.
	unlockUser := s.users.lock(userID)
	defer unlockUser()

	userCount, err := s.store.CountActiveMembershipsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userCount >= models.MaxUserMemberships {
		return nil, apperr.LimitExceeded("you already belong to %d rooms", models.MaxUserMemberships)
	}

	m := &models.Membership{
		RoomID:      room.ID,
		UserID:      userID,
		DisplayName: displayName,
		Role:        models.RoleRoommate,
		State:       models.MemberActive,
	}
	if err := s.store.AddMembership(ctx, m); err != nil {
		return nil, err
	}
	room.Members = append(room.Members, *m)

	slog.Info("member joined", "room_id", room.ID, "member_id", m.ID, "user_id", userID)
	return room, nil
}

// ListRooms returns the rooms where the caller is an active member.
func (s *RoomService) ListRooms(ctx context.Context, userID string) ([]*models.Room, error) {
	return s.store.ListRoomsForUser(ctx, userID)
}

// GetRoom returns a room the caller belongs to.
func (s *RoomService) GetRoom(ctx context.Context, userID, roomID string) (*models.Room, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.store.GetRoom(ctx, roomID)
}

// Invite gates and records an invitation attempt; delivery happens
// asynchronously outside any room lock. Requires rank ASSISTANT or
// above.
func (s *RoomService) Invite(ctx context.Context, userID, roomID, email string) error {
	if !strings.Contains(email, "@") {
		return apperr.Validation("a valid email is required")
	}

	member, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !roles.CanInvite(member.Role) {
		return apperr.Forbidden("inviting requires the ASSISTANT role or above")
	}
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	inv := &models.Invitation{
		RoomID:    roomID,
		InvitedBy: member.ID,
		Email:     email,
	}
	if err := s.store.RecordInvitation(ctx, inv); err != nil {
		return err
	}

	s.invites.Enqueue(*inv, room.Name)
	slog.Info("invitation recorded", "room_id", roomID, "invited_by", member.ID, "email", email)
	return nil
}

// DeleteRoom removes the room and its entire subtree. HEAD_ROOMMATE
// only; the cascade is atomic.
func (s *RoomService) DeleteRoom(ctx context.Context, userID, roomID string) error {
	unlock := s.locks.lock(roomID)
	defer unlock()

	member, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if member.Role != models.RoleHeadRoommate {
		return apperr.Forbidden("only the head roommate can delete the room")
	}
	if err := s.store.DeleteRoom(ctx, roomID); err != nil {
		return err
	}

	slog.Info("room deleted", "room_id", roomID, "deleted_by", member.ID)
	return nil
}

// LeaveRoom marks the caller's membership LEFT. The sole HEAD_ROOMMATE
// of a room with other active members cannot leave; there is no
// headship transfer, so deleting the room is the head's exit.
func (s *RoomService) LeaveRoom(ctx context.Context, userID, roomID string) error {
	unlock := s.locks.lock(roomID)
	defer unlock()

	member, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if member.Role == models.RoleHeadRoommate {
		room, err := s.store.GetRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if len(room.ActiveMembers()) > 1 {
			return apperr.Forbidden("the head roommate cannot leave while the room has other members")
		}
	}
	if err := s.store.SetMembershipState(ctx, member.ID, models.MemberLeft); err != nil {
		return err
	}

	slog.Info("member left", "room_id", roomID, "member_id", member.ID)
	return nil
}

// ChangeRole sets a member's role. The actor must strictly outrank the
// target, may not grant a rank at or above its own, and may never
// target itself.
func (s *RoomService) ChangeRole(ctx context.Context, userID, roomID, memberID string, newRole models.Role) error {
	unlock := s.locks.lock(roomID)
	defer unlock()

	actor, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return err
	}
	target, err := s.activeMember(ctx, roomID, memberID)
	if err != nil {
		return err
	}
	if err := roles.AuthorizeRoleChange(actor, target, newRole); err != nil {
		return err
	}
	if err := s.store.SetMembershipRole(ctx, target.ID, newRole); err != nil {
		return err
	}

	slog.Info("role changed",
		"room_id", roomID,
		"actor_id", actor.ID,
		"member_id", target.ID,
		"old_role", target.Role,
		"new_role", newRole,
	)
	return nil
}

// RemoveMember marks a member REMOVED. The actor must strictly outrank
// the target and may never target itself.
func (s *RoomService) RemoveMember(ctx context.Context, userID, roomID, memberID string) error {
	unlock := s.locks.lock(roomID)
	defer unlock()

	actor, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return err
	}
	target, err := s.activeMember(ctx, roomID, memberID)
	if err != nil {
		return err
	}
	if err := roles.Authorize(actor, target); err != nil {
		return err
	}
	if err := s.store.SetMembershipState(ctx, target.ID, models.MemberRemoved); err != nil {
		return err
	}

	slog.Info("member removed", "room_id", roomID, "actor_id", actor.ID, "member_id", target.ID)
	return nil
}

// activeMember loads a membership and checks it is an active member of
// the given room.
func (s *RoomService) activeMember(ctx context.Context, roomID, memberID string) (*models.Membership, error) {
	m, err := s.store.GetMembership(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.RoomID != roomID || m.State != models.MemberActive {
		return nil, apperr.NotFound("member not found in this room")
	}
	return m, nil
}
