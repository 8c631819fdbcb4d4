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

// CreateUtility persists the utility and its share snapshot in one
// transaction. Share order is preserved so join-order remainder
// attribution survives reads.
func (s *SQLiteStore) CreateUtility(ctx context.Context, u *models.Utility) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO utilities (id, room_id, name, description, price_cents, distribution, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.RoomID, u.Name, u.Description, u.PriceCents, u.Distribution, u.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert utility: %w", err)
		}

		for i, share := range u.Shares {
			share.UtilityID = u.ID
			u.Shares[i] = share
			_, err := tx.ExecContext(ctx,
				`INSERT INTO utility_shares (utility_id, member_id, amount_cents, position)
				 VALUES (?, ?, ?, ?)`,
				share.UtilityID, share.MemberID, share.AmountCents, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert utility share: %w", err)
			}
		}
		return nil
	})
}

// GetUtility retrieves a utility with its shares.
func (s *SQLiteStore) GetUtility(ctx context.Context, utilityID string) (*models.Utility, error) {
	u := &models.Utility{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, name, description, price_cents, distribution, created_at
		 FROM utilities WHERE id = ?`, utilityID,
	).Scan(&u.ID, &u.RoomID, &u.Name, &u.Description, &u.PriceCents, &u.Distribution, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("utility not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get utility: %w", err)
	}
	if err := s.loadShares(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, u *models.Utility) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT utility_id, member_id, amount_cents
		 FROM utility_shares WHERE utility_id = ? ORDER BY position`, u.ID)
	if err != nil {
		return fmt.Errorf("failed to get utility shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.UtilityShare
		if err := rows.Scan(&share.UtilityID, &share.MemberID, &share.AmountCents); err != nil {
			return fmt.Errorf("failed to scan utility share: %w", err)
		}
		u.Shares = append(u.Shares, share)
	}
	return rows.Err()
}

func (s *SQLiteStore) listUtilities(ctx context.Context, query string, args ...any) ([]*models.Utility, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list utilities: %w", err)
	}
	defer rows.Close()

	var out []*models.Utility
	for rows.Next() {
		u := &models.Utility{}
		if err := rows.Scan(&u.ID, &u.RoomID, &u.Name, &u.Description, &u.PriceCents, &u.Distribution, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan utility: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, u := range out {
		if err := s.loadShares(ctx, u); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListUtilitiesByRoom returns the room's utilities, newest first.
func (s *SQLiteStore) ListUtilitiesByRoom(ctx context.Context, roomID string) ([]*models.Utility, error) {
	return s.listUtilities(ctx,
		`SELECT id, room_id, name, description, price_cents, distribution, created_at
		 FROM utilities WHERE room_id = ? ORDER BY created_at DESC, id`, roomID)
}

// ListUtilitiesForMember returns only the utilities in which the member
// holds a recorded share.
func (s *SQLiteStore) ListUtilitiesForMember(ctx context.Context, roomID, memberID string) ([]*models.Utility, error) {
	return s.listUtilities(ctx,
		`SELECT u.id, u.room_id, u.name, u.description, u.price_cents, u.distribution, u.created_at
		 FROM utilities u
		 JOIN utility_shares sh ON sh.utility_id = u.id
		 WHERE u.room_id = ? AND sh.member_id = ?
		 ORDER BY u.created_at DESC, u.id`, roomID, memberID)
}

// DeleteUtility removes the utility; shares cascade.
func (s *SQLiteStore) DeleteUtility(ctx context.Context, utilityID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM utilities WHERE id = ?", utilityID)
	if err != nil {
		return fmt.Errorf("failed to delete utility: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("utility not found")
	}
	return nil
}
