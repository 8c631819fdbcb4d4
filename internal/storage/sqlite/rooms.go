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

// CreateRoom persists a room together with its owner membership in one
// transaction. IDs and timestamps are generated when unset.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room, owner *models.Membership) error {
	now := time.Now().Unix()
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = now
	}
	if room.State == "" {
		room.State = models.RoomActive
	}
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.RoomID = room.ID
	if owner.JoinedAt == 0 {
		owner.JoinedAt = now
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (id, name, address, description, code, created_by, state, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			room.ID, room.Name, room.Address, room.Description, room.Code, room.CreatedBy, room.State, room.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert room: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO memberships (id, room_id, user_id, display_name, role, state, joined_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			owner.ID, owner.RoomID, owner.UserID, owner.DisplayName, owner.Role, owner.State, owner.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert owner membership: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) scanRoomRow(row *sql.Row) (*models.Room, error) {
	room := &models.Room{}
	err := row.Scan(&room.ID, &room.Name, &room.Address, &room.Description,
		&room.Code, &room.CreatedBy, &room.State, &room.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("room not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// GetRoom retrieves a room with its memberships in join order.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.scanRoomRow(s.db.QueryRowContext(ctx,
		`SELECT id, name, address, description, code, created_by, state, created_at
		 FROM rooms WHERE id = ?`, roomID))
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// GetActiveRoomByCode resolves a join code to its room.
func (s *SQLiteStore) GetActiveRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	room, err := s.scanRoomRow(s.db.QueryRowContext(ctx,
		`SELECT id, name, address, description, code, created_by, state, created_at
		 FROM rooms WHERE code = ? AND state = ?`, code, models.RoomActive))
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, room *models.Room) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, user_id, display_name, role, state, joined_at
		 FROM memberships WHERE room_id = ? ORDER BY joined_at, rowid`, room.ID)
	if err != nil {
		return fmt.Errorf("failed to get memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.RoomID, &m.UserID, &m.DisplayName, &m.Role, &m.State, &m.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan membership: %w", err)
		}
		room.Members = append(room.Members, m)
	}
	return rows.Err()
}

// ListRoomsForUser returns the rooms where the user holds an ACTIVE
// membership, oldest first.
func (s *SQLiteStore) ListRoomsForUser(ctx context.Context, userID string) ([]*models.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.address, r.description, r.code, r.created_by, r.state, r.created_at
		 FROM rooms r
		 JOIN memberships m ON m.room_id = r.id
		 WHERE m.user_id = ? AND m.state = ? AND r.state = ?
		 ORDER BY r.created_at`, userID, models.MemberActive, models.RoomActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		room := &models.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Address, &room.Description,
			&room.Code, &room.CreatedBy, &room.State, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, room := range out {
		if err := s.loadMembers(ctx, room); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeleteRoom removes the room; ON DELETE CASCADE takes the memberships,
// chores, utilities, ledger entries and grocery lists with it.
func (s *SQLiteStore) DeleteRoom(ctx context.Context, roomID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("room not found")
	}
	return nil
}

// CountActiveMembershipsForUser counts a user's ACTIVE memberships
// across all rooms.
func (s *SQLiteStore) CountActiveMembershipsForUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM memberships WHERE user_id = ? AND state = ?",
		userID, models.MemberActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}

// AddMembership inserts a membership, generating the ID and join time
// when unset.
func (s *SQLiteStore) AddMembership(ctx context.Context, m *models.Membership) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.JoinedAt == 0 {
		m.JoinedAt = time.Now().Unix()
	}
	if m.State == "" {
		m.State = models.MemberActive
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memberships (id, room_id, user_id, display_name, role, state, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.RoomID, m.UserID, m.DisplayName, m.Role, m.State, m.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

// GetMembership retrieves a membership by ID.
func (s *SQLiteStore) GetMembership(ctx context.Context, memberID string) (*models.Membership, error) {
	m := &models.Membership{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, user_id, display_name, role, state, joined_at
		 FROM memberships WHERE id = ?`, memberID,
	).Scan(&m.ID, &m.RoomID, &m.UserID, &m.DisplayName, &m.Role, &m.State, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// GetMembershipForUser finds the user's ACTIVE membership in a room.
func (s *SQLiteStore) GetMembershipForUser(ctx context.Context, roomID, userID string) (*models.Membership, error) {
	m := &models.Membership{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, user_id, display_name, role, state, joined_at
		 FROM memberships WHERE room_id = ? AND user_id = ? AND state = ?`,
		roomID, userID, models.MemberActive,
	).Scan(&m.ID, &m.RoomID, &m.UserID, &m.DisplayName, &m.Role, &m.State, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("not a member of this room")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// SetMembershipRole updates the member's role.
func (s *SQLiteStore) SetMembershipRole(ctx context.Context, memberID string, role models.Role) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE memberships SET role = ? WHERE id = ?", role, memberID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("member not found")
	}
	return nil
}

// SetMembershipState updates the member's lifecycle state.
func (s *SQLiteStore) SetMembershipState(ctx context.Context, memberID string, state models.MembershipState) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE memberships SET state = ? WHERE id = ?", state, memberID)
	if err != nil {
		return fmt.Errorf("failed to update membership state: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("member not found")
	}
	return nil
}

// RecordInvitation persists the gated invite attempt.
func (s *SQLiteStore) RecordInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt == 0 {
		inv.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invitations (id, room_id, invited_by, email, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.RoomID, inv.InvitedBy, inv.Email, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record invitation: %w", err)
	}
	return nil
}
