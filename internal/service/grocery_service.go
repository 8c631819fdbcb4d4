package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/roles"
	"github.com/jagmansidhu/DaRoommate/internal/storage"
)

// GroceryItemParams are the caller-supplied fields of an item.
type GroceryItemParams struct {
	Name     string
	Quantity string
	Category string
	Notes    string
}

// GroceryService manages shared shopping lists within a room.
type GroceryService struct {
	store storage.Store
	now   func() time.Time
}

// NewGroceryService creates a GroceryService.
func NewGroceryService(store storage.Store) *GroceryService {
	return &GroceryService{store: store, now: time.Now}
}

// CreateList starts a new active list in the room.
func (s *GroceryService) CreateList(ctx context.Context, userID, roomID, name string) (*models.GroceryList, error) {
	member, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("list name is required")
	}

	l := &models.GroceryList{
		RoomID:    roomID,
		Name:      name,
		Status:    models.ListActive,
		CreatedBy: member.ID,
	}
	if err := s.store.CreateGroceryList(ctx, l); err != nil {
		return nil, err
	}

	slog.Info("grocery list created", "room_id", roomID, "list_id", l.ID)
	return l, nil
}

// ListByRoom returns the room's grocery lists.
func (s *GroceryService) ListByRoom(ctx context.Context, userID, roomID string) ([]*models.GroceryList, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.store.ListGroceryListsByRoom(ctx, roomID)
}

// GetList returns one list with its items.
func (s *GroceryService) GetList(ctx context.Context, userID, listID string) (*models.GroceryList, error) {
	l, err := s.store.GetGroceryList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetMembershipForUser(ctx, l.RoomID, userID); err != nil {
		return nil, err
	}
	return l, nil
}

// memberForList resolves the caller's membership in the list's room.
func (s *GroceryService) memberForList(ctx context.Context, userID, listID string) (*models.GroceryList, *models.Membership, error) {
	l, err := s.store.GetGroceryList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	member, err := s.store.GetMembershipForUser(ctx, l.RoomID, userID)
	if err != nil {
		return nil, nil, err
	}
	return l, member, nil
}

// memberForItem resolves the caller's membership in the room owning
// the item's list.
func (s *GroceryService) memberForItem(ctx context.Context, userID, itemID string) (*models.GroceryItem, *models.Membership, error) {
	item, err := s.store.GetGroceryItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	l, err := s.store.GetGroceryList(ctx, item.ListID)
	if err != nil {
		return nil, nil, err
	}
	member, err := s.store.GetMembershipForUser(ctx, l.RoomID, userID)
	if err != nil {
		return nil, nil, err
	}
	return item, member, nil
}

// AddItem appends an item to a list.
func (s *GroceryService) AddItem(ctx context.Context, userID, listID string, p GroceryItemParams) (*models.GroceryItem, error) {
	l, member, err := s.memberForList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperr.Validation("item name is required")
	}
	if l.Status != models.ListActive {
		return nil, apperr.Validation("cannot add items to a %s list", l.Status)
	}

	item := &models.GroceryItem{
		ListID:   listID,
		Name:     p.Name,
		Quantity: p.Quantity,
		Category: p.Category,
		Notes:    p.Notes,
		AddedBy:  member.ID,
	}
	if err := s.store.AddGroceryItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem rewrites an item's descriptive fields.
func (s *GroceryService) UpdateItem(ctx context.Context, userID, itemID string, p GroceryItemParams) (*models.GroceryItem, error) {
	item, _, err := s.memberForItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperr.Validation("item name is required")
	}

	item.Name = p.Name
	item.Quantity = p.Quantity
	item.Category = p.Category
	item.Notes = p.Notes
	if err := s.store.UpdateGroceryItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkPurchased records the purchase with the buyer and price paid.
func (s *GroceryService) MarkPurchased(ctx context.Context, userID, itemID string, priceCents int64) (*models.GroceryItem, error) {
	item, member, err := s.memberForItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if priceCents < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}

	item.MarkPurchased(member.ID, priceCents, s.now().Unix())
	if err := s.store.UpdateGroceryItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UnmarkPurchased reverts a purchase.
func (s *GroceryService) UnmarkPurchased(ctx context.Context, userID, itemID string) (*models.GroceryItem, error) {
	item, _, err := s.memberForItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	item.UnmarkPurchased()
	if err := s.store.UpdateGroceryItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes an item from its list.
func (s *GroceryService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if _, _, err := s.memberForItem(ctx, userID, itemID); err != nil {
		return err
	}
	return s.store.DeleteGroceryItem(ctx, itemID)
}

// CompleteList marks a list COMPLETED with a completion time.
func (s *GroceryService) CompleteList(ctx context.Context, userID, listID string) (*models.GroceryList, error) {
	l, _, err := s.memberForList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	l.Status = models.ListCompleted
	l.CompletedAt = s.now().Unix()
	if err := s.store.SetGroceryListStatus(ctx, l.ID, l.Status, l.CompletedAt); err != nil {
		return nil, err
	}
	return l, nil
}

// ArchiveList marks a list ARCHIVED.
func (s *GroceryService) ArchiveList(ctx context.Context, userID, listID string) (*models.GroceryList, error) {
	l, _, err := s.memberForList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	l.Status = models.ListArchived
	if err := s.store.SetGroceryListStatus(ctx, l.ID, l.Status, l.CompletedAt); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteList removes a list and its items. Requires ASSISTANT or above.
func (s *GroceryService) DeleteList(ctx context.Context, userID, listID string) error {
	l, member, err := s.memberForList(ctx, userID, listID)
	if err != nil {
		return err
	}
	if roles.Rank(member.Role) < roles.Rank(models.RoleAssistant) {
		return apperr.Forbidden("deleting a list requires the ASSISTANT role or above")
	}

	if err := s.store.DeleteGroceryList(ctx, l.ID); err != nil {
		return err
	}
	slog.Info("grocery list deleted", "room_id", l.RoomID, "list_id", l.ID)
	return nil
}
