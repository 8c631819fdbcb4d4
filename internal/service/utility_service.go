package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/calculator"
	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/storage"
)

// UtilityService creates shared bills with an immediate equal-split
// snapshot over the room's active members.
type UtilityService struct {
	store storage.Store
	locks *lockSet
}

// NewUtilityService creates a UtilityService sharing the room locks.
func NewUtilityService(store storage.Store, locks *lockSet) *UtilityService {
	return &UtilityService{store: store, locks: locks}
}

// Create validates the bill, snapshots the room's current active
// members and persists the utility with shares that sum exactly to the
// price. EQUAL_SPLIT is the only implemented distribution.
func (s *UtilityService) Create(ctx context.Context, userID, roomID, name, description string, priceCents int64, distribution models.Distribution) (*models.Utility, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("utility name is required")
	}
	if priceCents < 0 {
		return nil, apperr.Validation("utility price cannot be negative")
	}
	if distribution != models.EqualSplit {
		return nil, apperr.Validation("unsupported distribution %q", distribution)
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	active := room.ActiveMembers()
	memberIDs := make([]string, len(active))
	for i, m := range active {
		memberIDs[i] = m.ID
	}

	shares, err := calculator.EqualSplit(priceCents, memberIDs)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	u := &models.Utility{
		RoomID:       roomID,
		Name:         name,
		Description:  description,
		PriceCents:   priceCents,
		Distribution: distribution,
	}
	for _, share := range shares {
		u.Shares = append(u.Shares, models.UtilityShare{
			MemberID:    share.MemberID,
			AmountCents: share.AmountCents,
		})
	}
	if err := s.store.CreateUtility(ctx, u); err != nil {
		return nil, err
	}

	slog.Info("utility created",
		"room_id", roomID,
		"utility_id", u.ID,
		"price_cents", priceCents,
		"members", len(shares),
	)
	return u, nil
}

// ListByRoom returns the room's utilities with their shares.
func (s *UtilityService) ListByRoom(ctx context.Context, userID, roomID string) ([]*models.Utility, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.store.ListUtilitiesByRoom(ctx, roomID)
}

// ListForMember returns only the utilities where the member holds a
// recorded share. The caller must belong to the room; the target
// member may be LEFT or REMOVED since shares survive departure.
func (s *UtilityService) ListForMember(ctx context.Context, userID, roomID, memberID string) ([]*models.Utility, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	member, err := s.store.GetMembership(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.RoomID != roomID {
		return nil, apperr.NotFound("member not found in this room")
	}
	return s.store.ListUtilitiesForMember(ctx, roomID, memberID)
}

// Remove deletes the utility and all of its shares.
func (s *UtilityService) Remove(ctx context.Context, userID, utilityID string) error {
	u, err := s.store.GetUtility(ctx, utilityID)
	if err != nil {
		return err
	}
	if _, err := s.store.GetMembershipForUser(ctx, u.RoomID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteUtility(ctx, utilityID); err != nil {
		return err
	}

	slog.Info("utility removed", "room_id", u.RoomID, "utility_id", utilityID)
	return nil
}
