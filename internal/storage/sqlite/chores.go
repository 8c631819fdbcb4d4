package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jagmansidhu/DaRoommate/internal/models"
)

// CreateChoreBatch persists templates and their materialized instances
// in one transaction. Either the whole batch lands or none of it does.
func (s *SQLiteStore) CreateChoreBatch(ctx context.Context, templates []*models.ChoreTemplate, instances []*models.ChoreInstance) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range templates {
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			if t.CreatedAt == 0 {
				t.CreatedAt = now
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO chore_templates (id, room_id, name, frequency_count, frequency_unit, deadline, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.RoomID, t.Name, t.FrequencyCount, t.FrequencyUnit, t.Deadline, t.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert chore template: %w", err)
			}
		}
		for _, in := range instances {
			if in.ID == "" {
				in.ID = uuid.New().String()
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO chore_instances (id, room_id, template_id, name, due_at)
				 VALUES (?, ?, ?, ?, ?)`,
				in.ID, in.RoomID, in.TemplateID, in.Name, in.DueAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert chore instance: %w", err)
			}
		}
		return nil
	})
}

func scanChoreInstances(rows *sql.Rows) ([]*models.ChoreInstance, error) {
	defer rows.Close()
	var out []*models.ChoreInstance
	for rows.Next() {
		in := &models.ChoreInstance{}
		if err := rows.Scan(&in.ID, &in.RoomID, &in.TemplateID, &in.Name, &in.DueAt); err != nil {
			return nil, fmt.Errorf("failed to scan chore instance: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// ListChoreInstancesByRoom returns the room's instances ordered by due
// time.
func (s *SQLiteStore) ListChoreInstancesByRoom(ctx context.Context, roomID string) ([]*models.ChoreInstance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, template_id, name, due_at
		 FROM chore_instances WHERE room_id = ? ORDER BY due_at, name`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chore instances: %w", err)
	}
	return scanChoreInstances(rows)
}

// ListChoreInstancesForUser returns instances across every room where
// the user holds an ACTIVE membership.
func (s *SQLiteStore) ListChoreInstancesForUser(ctx context.Context, userID string) ([]*models.ChoreInstance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.room_id, c.template_id, c.name, c.due_at
		 FROM chore_instances c
		 JOIN memberships m ON m.room_id = c.room_id
		 WHERE m.user_id = ? AND m.state = ?
		 ORDER BY c.due_at, c.name`, userID, models.MemberActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list chore instances for user: %w", err)
	}
	return scanChoreInstances(rows)
}

// DeleteChoresByName removes all instances (past and future) and the
// templates matching the name in the room, returning how many instances
// were removed.
func (s *SQLiteStore) DeleteChoresByName(ctx context.Context, roomID, name string) (int64, error) {
	var removed int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM chore_instances WHERE room_id = ? AND name = ?", roomID, name)
		if err != nil {
			return fmt.Errorf("failed to delete chore instances: %w", err)
		}
		removed, _ = res.RowsAffected()

		_, err = tx.ExecContext(ctx,
			"DELETE FROM chore_templates WHERE room_id = ? AND name = ?", roomID, name)
		if err != nil {
			return fmt.Errorf("failed to delete chore templates: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
