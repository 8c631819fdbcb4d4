package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/models"
)

// CreateGroceryList persists a new grocery list (without items).
func (s *SQLiteStore) CreateGroceryList(ctx context.Context, l *models.GroceryList) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = time.Now().Unix()
	}
	if l.Status == "" {
		l.Status = models.ListActive
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grocery_lists (id, room_id, name, status, created_by, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.RoomID, l.Name, l.Status, l.CreatedBy, l.CreatedAt, l.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert grocery list: %w", err)
	}
	return nil
}

// GetGroceryList retrieves a list with its items.
func (s *SQLiteStore) GetGroceryList(ctx context.Context, listID string) (*models.GroceryList, error) {
	l := &models.GroceryList{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, name, status, created_by, created_at, completed_at
		 FROM grocery_lists WHERE id = ?`, listID,
	).Scan(&l.ID, &l.RoomID, &l.Name, &l.Status, &l.CreatedBy, &l.CreatedAt, &l.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("grocery list not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, list_id, name, quantity, category, notes, purchased, added_by, purchased_by, actual_price_cents, purchased_at, created_at
		 FROM grocery_items WHERE list_id = ? ORDER BY created_at, id`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.GroceryItem
		if err := rows.Scan(&it.ID, &it.ListID, &it.Name, &it.Quantity, &it.Category, &it.Notes,
			&it.Purchased, &it.AddedBy, &it.PurchasedBy, &it.ActualPriceCents, &it.PurchasedAt, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grocery item: %w", err)
		}
		l.Items = append(l.Items, it)
	}
	return l, rows.Err()
}

// ListGroceryListsByRoom returns the room's lists, newest first,
// without items.
func (s *SQLiteStore) ListGroceryListsByRoom(ctx context.Context, roomID string) ([]*models.GroceryList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, name, status, created_by, created_at, completed_at
		 FROM grocery_lists WHERE room_id = ? ORDER BY created_at DESC, id`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery lists: %w", err)
	}
	defer rows.Close()

	var out []*models.GroceryList
	for rows.Next() {
		l := &models.GroceryList{}
		if err := rows.Scan(&l.ID, &l.RoomID, &l.Name, &l.Status, &l.CreatedBy, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grocery list: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SetGroceryListStatus updates a list's status and completion time.
func (s *SQLiteStore) SetGroceryListStatus(ctx context.Context, listID string, status models.GroceryListStatus, completedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE grocery_lists SET status = ?, completed_at = ? WHERE id = ?",
		status, completedAt, listID)
	if err != nil {
		return fmt.Errorf("failed to update grocery list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("grocery list not found")
	}
	return nil
}

// DeleteGroceryList removes the list; items cascade.
func (s *SQLiteStore) DeleteGroceryList(ctx context.Context, listID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM grocery_lists WHERE id = ?", listID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("grocery list not found")
	}
	return nil
}

// AddGroceryItem inserts an item, generating the ID and creation time
// when unset.
func (s *SQLiteStore) AddGroceryItem(ctx context.Context, item *models.GroceryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grocery_items (id, list_id, name, quantity, category, notes, purchased, added_by, purchased_by, actual_price_cents, purchased_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ListID, item.Name, item.Quantity, item.Category, item.Notes,
		item.Purchased, item.AddedBy, item.PurchasedBy, item.ActualPriceCents, item.PurchasedAt, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert grocery item: %w", err)
	}
	return nil
}

// GetGroceryItem retrieves an item by ID.
func (s *SQLiteStore) GetGroceryItem(ctx context.Context, itemID string) (*models.GroceryItem, error) {
	it := &models.GroceryItem{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, list_id, name, quantity, category, notes, purchased, added_by, purchased_by, actual_price_cents, purchased_at, created_at
		 FROM grocery_items WHERE id = ?`, itemID,
	).Scan(&it.ID, &it.ListID, &it.Name, &it.Quantity, &it.Category, &it.Notes,
		&it.Purchased, &it.AddedBy, &it.PurchasedBy, &it.ActualPriceCents, &it.PurchasedAt, &it.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("grocery item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery item: %w", err)
	}
	return it, nil
}

// UpdateGroceryItem rewrites an item's mutable fields.
func (s *SQLiteStore) UpdateGroceryItem(ctx context.Context, item *models.GroceryItem) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE grocery_items
		 SET name = ?, quantity = ?, category = ?, notes = ?, purchased = ?, purchased_by = ?, actual_price_cents = ?, purchased_at = ?
		 WHERE id = ?`,
		item.Name, item.Quantity, item.Category, item.Notes,
		item.Purchased, item.PurchasedBy, item.ActualPriceCents, item.PurchasedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update grocery item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("grocery item not found")
	}
	return nil
}

// DeleteGroceryItem removes an item.
func (s *SQLiteStore) DeleteGroceryItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM grocery_items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("grocery item not found")
	}
	return nil
}
