// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/jagmansidhu/DaRoommate/internal/models"
)

// Store defines the persistence operations for rooms, memberships,
// chores, utilities, ledger entries and grocery lists. This abstraction
// allows swapping storage backends without changing the service layer.
//
// Multi-row writes (room creation, cascading room deletion, chore
// batches, utility snapshots, split assignment) are transactional:
// either every row lands or none does. Lookups for missing rows return
// apperr.NotFound.
type Store interface {
	// CreateRoom persists a room together with its owner membership in
	// one transaction.
	CreateRoom(ctx context.Context, room *models.Room, owner *models.Membership) error

	// GetRoom retrieves a room with its memberships in join order.
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	// GetActiveRoomByCode resolves a join code to its room.
	GetActiveRoomByCode(ctx context.Context, code string) (*models.Room, error)

	// ListRoomsForUser returns the rooms where the user holds an ACTIVE
	// membership.
	ListRoomsForUser(ctx context.Context, userID string) ([]*models.Room, error)

	// DeleteRoom removes the room and its entire subtree (memberships,
	// chores, utilities, ledger, groceries) atomically.
	DeleteRoom(ctx context.Context, roomID string) error

	// CountActiveMembershipsForUser counts a user's ACTIVE memberships
	// across all rooms.
	CountActiveMembershipsForUser(ctx context.Context, userID string) (int, error)

	AddMembership(ctx context.Context, m *models.Membership) error
	GetMembership(ctx context.Context, memberID string) (*models.Membership, error)

	// GetMembershipForUser finds the user's ACTIVE membership in a room.
	GetMembershipForUser(ctx context.Context, roomID, userID string) (*models.Membership, error)

	SetMembershipRole(ctx context.Context, memberID string, role models.Role) error
	SetMembershipState(ctx context.Context, memberID string, state models.MembershipState) error

	// RecordInvitation persists the gated invite attempt.
	RecordInvitation(ctx context.Context, inv *models.Invitation) error

	// CreateChoreBatch persists templates and their materialized
	// instances in one transaction.
	CreateChoreBatch(ctx context.Context, templates []*models.ChoreTemplate, instances []*models.ChoreInstance) error

	ListChoreInstancesByRoom(ctx context.Context, roomID string) ([]*models.ChoreInstance, error)

	// ListChoreInstancesForUser returns instances across every room
	// where the user holds an ACTIVE membership.
	ListChoreInstancesForUser(ctx context.Context, userID string) ([]*models.ChoreInstance, error)

	// DeleteChoresByName removes all instances (past and future) and the
	// templates matching the name in the room, returning how many
	// instances were removed.
	DeleteChoresByName(ctx context.Context, roomID, name string) (int64, error)

	// CreateUtility persists the utility and its share snapshot in one
	// transaction.
	CreateUtility(ctx context.Context, u *models.Utility) error

	GetUtility(ctx context.Context, utilityID string) (*models.Utility, error)
	ListUtilitiesByRoom(ctx context.Context, roomID string) ([]*models.Utility, error)

	// ListUtilitiesForMember returns only the utilities in which the
	// member holds a recorded share.
	ListUtilitiesForMember(ctx context.Context, roomID, memberID string) ([]*models.Utility, error)

	// DeleteUtility removes the utility and all of its shares.
	DeleteUtility(ctx context.Context, utilityID string) error

	CreateLedgerEntry(ctx context.Context, e *models.LedgerEntry) error

	// GetLedgerEntry retrieves an entry with its splits.
	GetLedgerEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error)

	// ListLedgerEntriesByRoom returns the room's non-cancelled entries,
	// newest first.
	ListLedgerEntriesByRoom(ctx context.Context, roomID string) ([]*models.LedgerEntry, error)

	// ReplaceLedgerSplits swaps an entry's splits wholesale and updates
	// its status and split type in one transaction.
	ReplaceLedgerSplits(ctx context.Context, entryID string, splits []models.LedgerSplit, status models.LedgerEntryStatus, splitType models.SplitType) error

	GetLedgerSplit(ctx context.Context, splitID string) (*models.LedgerSplit, error)

	// SaveLedgerSplit updates a split's payment fields and the owning
	// entry's status in one transaction.
	SaveLedgerSplit(ctx context.Context, s *models.LedgerSplit, entryStatus models.LedgerEntryStatus) error

	// ListLedgerSplitsForMember returns the member's splits across the
	// room's non-cancelled entries.
	ListLedgerSplitsForMember(ctx context.Context, roomID, memberID string) ([]*models.LedgerSplit, error)

	SetLedgerEntryStatus(ctx context.Context, entryID string, status models.LedgerEntryStatus) error
	DeleteLedgerEntry(ctx context.Context, entryID string) error

	CreateGroceryList(ctx context.Context, l *models.GroceryList) error

	// GetGroceryList retrieves a list with its items.
	GetGroceryList(ctx context.Context, listID string) (*models.GroceryList, error)

	ListGroceryListsByRoom(ctx context.Context, roomID string) ([]*models.GroceryList, error)
	SetGroceryListStatus(ctx context.Context, listID string, status models.GroceryListStatus, completedAt int64) error
	DeleteGroceryList(ctx context.Context, listID string) error

	AddGroceryItem(ctx context.Context, item *models.GroceryItem) error
	GetGroceryItem(ctx context.Context, itemID string) (*models.GroceryItem, error)
	UpdateGroceryItem(ctx context.Context, item *models.GroceryItem) error
	DeleteGroceryItem(ctx context.Context, itemID string) error

	// Close releases any resources held by the store.
	Close() error
}
