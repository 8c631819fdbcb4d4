package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jagmansidhu/DaRoommate/internal/invite"
	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/storage"
	"github.com/jagmansidhu/DaRoommate/internal/storage/sqlite"
)

// newTestStore creates a sqlite store backed by a temp database.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// newTestRoomService creates a RoomService with a logging invite
// dispatcher.
func newTestRoomService(t *testing.T, store storage.Store) *RoomService {
	t.Helper()

	dispatcher := invite.NewDispatcher(invite.LogSender{})
	t.Cleanup(dispatcher.Close)
	return NewRoomService(store, dispatcher)
}

// seedRoom creates a room owned by ownerID and joins the given users as
// ROOMMATEs. Returns the room re-read with all memberships.
func seedRoom(t *testing.T, svc *RoomService, ownerID string, joiners ...string) *models.Room {
	t.Helper()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, ownerID, "Owner", "Maple St", "12 Maple St", "")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	for _, userID := range joiners {
		if _, err := svc.JoinRoom(ctx, userID, "Joiner "+userID, room.Code); err != nil {
			t.Fatalf("JoinRoom(%s) failed: %v", userID, err)
		}
	}

	room, err = svc.GetRoom(ctx, ownerID, room.ID)
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}
	return room
}

// memberOf finds the membership of userID in the room.
func memberOf(t *testing.T, room *models.Room, userID string) *models.Membership {
	t.Helper()

	for i := range room.Members {
		if room.Members[i].UserID == userID {
			return &room.Members[i]
		}
	}
	t.Fatalf("no membership for user %s in room %s", userID, room.ID)
	return nil
}
