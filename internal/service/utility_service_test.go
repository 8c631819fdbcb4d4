package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/models"
)

func TestCreateUtility(t *testing.T) {
	store := newTestStore(t)
	rooms := newTestRoomService(t, store)
	svc := NewUtilityService(store, rooms.Locks())
	ctx := context.Background()

	room := seedRoom(t, rooms, "head", "bob", "carol")

	t.Run("shares sum exactly, remainder to earliest joiners", func(t *testing.T) {
		// $100.00 across three members does not divide evenly.
		u, err := svc.Create(ctx, "head", room.ID, "Electricity - March", "", 10000, models.EqualSplit)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(u.Shares) != 3 {
			t.Fatalf("shares: expected 3, got %d", len(u.Shares))
		}

		var sum int64
		for _, s := range u.Shares {
			sum += s.AmountCents
		}
		if sum != 10000 {
			t.Errorf("share sum: expected 10000, got %d", sum)
		}

		// The owner joined first and absorbs the extra cent.
		owner := memberOf(t, room, "head")
		if u.Shares[0].MemberID != owner.ID {
			t.Errorf("first share: expected owner %s, got %s", owner.ID, u.Shares[0].MemberID)
		}
		if u.Shares[0].AmountCents != 3334 {
			t.Errorf("owner share: expected 3334, got %d", u.Shares[0].AmountCents)
		}
		for _, s := range u.Shares[1:] {
			if s.AmountCents != 3333 {
				t.Errorf("share: expected 3333, got %d", s.AmountCents)
			}
		}
	})

	t.Run("snapshot ignores later joiners", func(t *testing.T) {
		u, err := svc.Create(ctx, "bob", room.ID, "Internet", "", 6000, models.EqualSplit)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := rooms.JoinRoom(ctx, "dave", "Dave", room.Code); err != nil {
			t.Fatalf("JoinRoom failed: %v", err)
		}

		got, err := store.GetUtility(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUtility failed: %v", err)
		}
		if len(got.Shares) != 3 {
			t.Errorf("shares after later join: expected 3, got %d", len(got.Shares))
		}
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name string
			run  func() error
			want error
		}{
			{"negative price", func() error {
				_, err := svc.Create(ctx, "head", room.ID, "Water", "", -1, models.EqualSplit)
				return err
			}, apperr.ErrValidation},
			{"blank name", func() error {
				_, err := svc.Create(ctx, "head", room.ID, "   ", "", 100, models.EqualSplit)
				return err
			}, apperr.ErrValidation},
			{"unknown distribution", func() error {
				_, err := svc.Create(ctx, "head", room.ID, "Water", "", 100, models.Distribution("BY_USAGE"))
				return err
			}, apperr.ErrValidation},
			{"non-member", func() error {
				_, err := svc.Create(ctx, "outsider", room.ID, "Water", "", 100, models.EqualSplit)
				return err
			}, apperr.ErrNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.run(); !errors.Is(err, tc.want) {
					t.Errorf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})
}

func TestListUtilitiesForMember(t *testing.T) {
	store := newTestStore(t)
	rooms := newTestRoomService(t, store)
	svc := NewUtilityService(store, rooms.Locks())
	ctx := context.Background()

	room := seedRoom(t, rooms, "head", "bob")
	bob := memberOf(t, room, "bob")

	if _, err := svc.Create(ctx, "head", room.ID, "Electricity", "", 5000, models.EqualSplit); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Bob leaves; his recorded shares must survive.
	if err := rooms.LeaveRoom(ctx, "bob", room.ID); err != nil {
		t.Fatalf("LeaveRoom failed: %v", err)
	}

	// A utility created after the departure excludes Bob.
	if _, err := svc.Create(ctx, "head", room.ID, "Internet", "", 4000, models.EqualSplit); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	utilities, err := svc.ListForMember(ctx, "head", room.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListForMember failed: %v", err)
	}
	if len(utilities) != 1 {
		t.Fatalf("utilities: expected 1, got %d", len(utilities))
	}
	if utilities[0].Name != "Electricity" {
		t.Errorf("utility: expected Electricity, got %s", utilities[0].Name)
	}

	t.Run("member of another room is NotFound", func(t *testing.T) {
		other := seedRoom(t, rooms, "stranger")
		strangerMember := memberOf(t, other, "stranger")
		_, err := svc.ListForMember(ctx, "head", room.ID, strangerMember.ID)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})
}

func TestRemoveUtility(t *testing.T) {
	store := newTestStore(t)
	rooms := newTestRoomService(t, store)
	svc := NewUtilityService(store, rooms.Locks())
	ctx := context.Background()

	room := seedRoom(t, rooms, "head", "bob")

	u, err := svc.Create(ctx, "head", room.ID, "Electricity", "", 5000, models.EqualSplit)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("non-member cannot remove", func(t *testing.T) {
		if err := svc.Remove(ctx, "outsider", u.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("any member can remove", func(t *testing.T) {
		if err := svc.Remove(ctx, "bob", u.ID); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, err := store.GetUtility(ctx, u.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected NotFound after removal, got %v", err)
		}
	})
}
