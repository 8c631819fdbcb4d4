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

// CreateLedgerEntry persists a new ledger entry (without splits).
func (s *SQLiteStore) CreateLedgerEntry(ctx context.Context, e *models.LedgerEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	if e.Status == "" {
		e.Status = models.EntryPending
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, room_id, created_by, title, description, entry_type, total_cents, split_type, status, due_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RoomID, e.CreatedBy, e.Title, e.Description, e.EntryType, e.TotalCents, e.SplitType, e.Status, e.DueDate, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// GetLedgerEntry retrieves an entry with its splits.
func (s *SQLiteStore) GetLedgerEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error) {
	e := &models.LedgerEntry{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, created_by, title, description, entry_type, total_cents, split_type, status, due_date, created_at
		 FROM ledger_entries WHERE id = ?`, entryID,
	).Scan(&e.ID, &e.RoomID, &e.CreatedBy, &e.Title, &e.Description, &e.EntryType,
		&e.TotalCents, &e.SplitType, &e.Status, &e.DueDate, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("ledger entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	if err := s.loadSplits(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *SQLiteStore) loadSplits(ctx context.Context, e *models.LedgerEntry) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entry_id, member_id, owed_cents, paid_cents, status, paid_at, notes
		 FROM ledger_splits WHERE entry_id = ? ORDER BY rowid`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to get ledger splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sp models.LedgerSplit
		if err := rows.Scan(&sp.ID, &sp.EntryID, &sp.MemberID, &sp.OwedCents,
			&sp.PaidCents, &sp.Status, &sp.PaidAt, &sp.Notes); err != nil {
			return fmt.Errorf("failed to scan ledger split: %w", err)
		}
		e.Splits = append(e.Splits, sp)
	}
	return rows.Err()
}

// ListLedgerEntriesByRoom returns the room's non-cancelled entries,
// newest first, with splits loaded.
func (s *SQLiteStore) ListLedgerEntriesByRoom(ctx context.Context, roomID string) ([]*models.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, created_by, title, description, entry_type, total_cents, split_type, status, due_date, created_at
		 FROM ledger_entries WHERE room_id = ? AND status != ?
		 ORDER BY created_at DESC, id`, roomID, models.EntryCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*models.LedgerEntry
	for rows.Next() {
		e := &models.LedgerEntry{}
		if err := rows.Scan(&e.ID, &e.RoomID, &e.CreatedBy, &e.Title, &e.Description, &e.EntryType,
			&e.TotalCents, &e.SplitType, &e.Status, &e.DueDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, e := range out {
		if err := s.loadSplits(ctx, e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReplaceLedgerSplits swaps an entry's splits wholesale and updates its
// status and split type in one transaction.
func (s *SQLiteStore) ReplaceLedgerSplits(ctx context.Context, entryID string, splits []models.LedgerSplit, status models.LedgerEntryStatus, splitType models.SplitType) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM ledger_splits WHERE entry_id = ?", entryID); err != nil {
			return fmt.Errorf("failed to clear ledger splits: %w", err)
		}
		for i := range splits {
			sp := &splits[i]
			if sp.ID == "" {
				sp.ID = uuid.New().String()
			}
			sp.EntryID = entryID
			if sp.Status == "" {
				sp.Status = models.PaymentUnpaid
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO ledger_splits (id, entry_id, member_id, owed_cents, paid_cents, status, paid_at, notes)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				sp.ID, sp.EntryID, sp.MemberID, sp.OwedCents, sp.PaidCents, sp.Status, sp.PaidAt, sp.Notes,
			)
			if err != nil {
				return fmt.Errorf("failed to insert ledger split: %w", err)
			}
		}
		res, err := tx.ExecContext(ctx,
			"UPDATE ledger_entries SET status = ?, split_type = ? WHERE id = ?",
			status, splitType, entryID)
		if err != nil {
			return fmt.Errorf("failed to update ledger entry: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("ledger entry not found")
		}
		return nil
	})
}

// GetLedgerSplit retrieves a split by ID.
func (s *SQLiteStore) GetLedgerSplit(ctx context.Context, splitID string) (*models.LedgerSplit, error) {
	sp := &models.LedgerSplit{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, entry_id, member_id, owed_cents, paid_cents, status, paid_at, notes
		 FROM ledger_splits WHERE id = ?`, splitID,
	).Scan(&sp.ID, &sp.EntryID, &sp.MemberID, &sp.OwedCents, &sp.PaidCents, &sp.Status, &sp.PaidAt, &sp.Notes)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("ledger split not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger split: %w", err)
	}
	return sp, nil
}

// SaveLedgerSplit updates a split's payment fields and the owning
// entry's status in one transaction.
func (s *SQLiteStore) SaveLedgerSplit(ctx context.Context, sp *models.LedgerSplit, entryStatus models.LedgerEntryStatus) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE ledger_splits SET paid_cents = ?, status = ?, paid_at = ?, notes = ? WHERE id = ?`,
			sp.PaidCents, sp.Status, sp.PaidAt, sp.Notes, sp.ID)
		if err != nil {
			return fmt.Errorf("failed to update ledger split: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("ledger split not found")
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE ledger_entries SET status = ? WHERE id = ?", entryStatus, sp.EntryID)
		if err != nil {
			return fmt.Errorf("failed to update ledger entry status: %w", err)
		}
		return nil
	})
}

// ListLedgerSplitsForMember returns the member's splits across the
// room's non-cancelled entries.
func (s *SQLiteStore) ListLedgerSplitsForMember(ctx context.Context, roomID, memberID string) ([]*models.LedgerSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.id, sp.entry_id, sp.member_id, sp.owed_cents, sp.paid_cents, sp.status, sp.paid_at, sp.notes
		 FROM ledger_splits sp
		 JOIN ledger_entries e ON e.id = sp.entry_id
		 WHERE e.room_id = ? AND sp.member_id = ? AND e.status != ?
		 ORDER BY e.created_at DESC, sp.rowid`, roomID, memberID, models.EntryCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger splits: %w", err)
	}
	defer rows.Close()

	var out []*models.LedgerSplit
	for rows.Next() {
		sp := &models.LedgerSplit{}
		if err := rows.Scan(&sp.ID, &sp.EntryID, &sp.MemberID, &sp.OwedCents,
			&sp.PaidCents, &sp.Status, &sp.PaidAt, &sp.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan ledger split: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// SetLedgerEntryStatus updates only the entry's status.
func (s *SQLiteStore) SetLedgerEntryStatus(ctx context.Context, entryID string, status models.LedgerEntryStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE ledger_entries SET status = ? WHERE id = ?", status, entryID)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("ledger entry not found")
	}
	return nil
}

// DeleteLedgerEntry removes the entry; splits cascade.
func (s *SQLiteStore) DeleteLedgerEntry(ctx context.Context, entryID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM ledger_entries WHERE id = ?", entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("ledger entry not found")
	}
	return nil
}
