package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/calculator"
	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/roles"
	"github.com/jagmansidhu/DaRoommate/internal/storage"
)

// LedgerEntryParams are the caller-supplied fields of a new entry.
type LedgerEntryParams struct {
	Title       string
	Description string
	EntryType   models.LedgerEntryType
	TotalCents  int64
	SplitType   models.SplitType
	DueDate     int64
}

// SplitAssignment is one member's custom portion of an entry.
type SplitAssignment struct {
	MemberID    string
	AmountCents int64
	Notes       string
}

// LedgerService tracks room expenses: entries, per-member splits,
// payments and balances.
type LedgerService struct {
	store storage.Store
	locks *lockSet
	now   func() time.Time
}

// NewLedgerService creates a LedgerService sharing the room locks.
func NewLedgerService(store storage.Store, locks *lockSet) *LedgerService {
	return &LedgerService{store: store, locks: locks, now: time.Now}
}

// CreateEntry records a new expense. Only the head roommate may create
// entries; they start PENDING until splits are assigned.
func (s *LedgerService) CreateEntry(ctx context.Context, userID, roomID string, p LedgerEntryParams) (*models.LedgerEntry, error) {
	member, err := s.store.GetMembershipForUser(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != models.RoleHeadRoommate {
		return nil, apperr.Forbidden("only the head roommate can create ledger entries")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, apperr.Validation("entry title is required")
	}
	if !models.ValidLedgerEntryType(p.EntryType) {
		return nil, apperr.Validation("unknown entry type %q", p.EntryType)
	}
	if !models.ValidSplitType(p.SplitType) {
		return nil, apperr.Validation("unknown split type %q", p.SplitType)
	}
	if p.TotalCents < 0 {
		return nil, apperr.Validation("entry total cannot be negative")
	}

	e := &models.LedgerEntry{
		RoomID:      roomID,
		CreatedBy:   member.ID,
		Title:       p.Title,
		Description: p.Description,
		EntryType:   p.EntryType,
		TotalCents:  p.TotalCents,
		SplitType:   p.SplitType,
		Status:      models.EntryPending,
		DueDate:     p.DueDate,
	}
	if err := s.store.CreateLedgerEntry(ctx, e); err != nil {
		return nil, err
	}

	slog.Info("ledger entry created", "room_id", roomID, "entry_id", e.ID, "total_cents", e.TotalCents)
	return e, nil
}

// ListEntries returns the room's non-cancelled entries.
func (s *LedgerService) ListEntries(ctx context.Context, userID, roomID string) ([]*models.LedgerEntry, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.store.ListLedgerEntriesByRoom(ctx, roomID)
}

// GetEntry returns one entry with its splits.
func (s *LedgerService) GetEntry(ctx context.Context, userID, entryID string) (*models.LedgerEntry, error) {
	e, err := s.store.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetMembershipForUser(ctx, e.RoomID, userID); err != nil {
		return nil, err
	}
	return e, nil
}

// AssignSplits replaces an entry's splits with custom assignments.
// Head roommate only; the amounts must sum exactly to the entry total.
func (s *LedgerService) AssignSplits(ctx context.Context, userID, entryID string, assignments []SplitAssignment) (*models.LedgerEntry, error) {
	e, err := s.store.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	actor, err := s.store.GetMembershipForUser(ctx, e.RoomID, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleHeadRoommate {
		return nil, apperr.Forbidden("only the head roommate can assign expense splits")
	}
	if len(assignments) == 0 {
		return nil, apperr.Validation("at least one split assignment is required")
	}

	unlock := s.locks.lock(e.RoomID)
	defer unlock()

	var splits []models.LedgerSplit
	var total int64
	for _, a := range assignments {
		if a.AmountCents < 0 {
			return nil, apperr.Validation("split amounts cannot be negative")
		}
		member, err := s.store.GetMembership(ctx, a.MemberID)
		if err != nil {
			return nil, err
		}
		if member.RoomID != e.RoomID {
			return nil, apperr.NotFound("member %s not found in this room", a.MemberID)
		}
		splits = append(splits, models.LedgerSplit{
			MemberID:  a.MemberID,
			OwedCents: a.AmountCents,
			Status:    models.PaymentUnpaid,
			Notes:     a.Notes,
		})
		total += a.AmountCents
	}
	if total != e.TotalCents {
		return nil, apperr.Validation("split amounts must equal the entry total: expected %d cents, got %d", e.TotalCents, total)
	}

	if err := s.store.ReplaceLedgerSplits(ctx, entryID, splits, models.EntryApproved, models.SplitCustom); err != nil {
		return nil, err
	}

	slog.Info("ledger splits assigned", "entry_id", entryID, "splits", len(splits))
	return s.store.GetLedgerEntry(ctx, entryID)
}

// EqualSplits computes and assigns an equal split over the room's
// active members ranked ROOMMATE or above. Head roommate only.
func (s *LedgerService) EqualSplits(ctx context.Context, userID, entryID string) (*models.LedgerEntry, error) {
	e, err := s.store.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	actor, err := s.store.GetMembershipForUser(ctx, e.RoomID, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleHeadRoommate {
		return nil, apperr.Forbidden("only the head roommate can assign expense splits")
	}

	unlock := s.locks.lock(e.RoomID)
	defer unlock()

	room, err := s.store.GetRoom(ctx, e.RoomID)
	if err != nil {
		return nil, err
	}

	// Guests are excluded from expense splits.
	var memberIDs []string
	for _, m := range room.ActiveMembers() {
		if roles.Rank(m.Role) >= roles.Rank(models.RoleRoommate) {
			memberIDs = append(memberIDs, m.ID)
		}
	}
	if len(memberIDs) == 0 {
		return nil, apperr.Validation("no members available to split the expense")
	}

	shares, err := calculator.EqualSplit(e.TotalCents, memberIDs)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}
	splits := make([]models.LedgerSplit, len(shares))
	for i, share := range shares {
		splits[i] = models.LedgerSplit{
			MemberID:  share.MemberID,
			OwedCents: share.AmountCents,
			Status:    models.PaymentUnpaid,
		}
	}

	if err := s.store.ReplaceLedgerSplits(ctx, entryID, splits, models.EntryApproved, models.SplitEqual); err != nil {
		return nil, err
	}

	slog.Info("ledger equal splits assigned", "entry_id", entryID, "splits", len(splits))
	return s.store.GetLedgerEntry(ctx, entryID)
}

// RecordPayment applies a payment against a split. Members record
// their own payments; the head roommate can record for anyone.
func (s *LedgerService) RecordPayment(ctx context.Context, userID, splitID string, amountCents int64, notes string) (*models.LedgerSplit, error) {
	if amountCents <= 0 {
		return nil, apperr.Validation("payment amount must be positive")
	}
	sp, err := s.store.GetLedgerSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	e, err := s.store.GetLedgerEntry(ctx, sp.EntryID)
	if err != nil {
		return nil, err
	}

	// Another payment against this entry may land between the lookup and
	// the write, so the split and entry are re-read under the room lock.
	// Mutating a pre-lock snapshot would drop the concurrent payment from
	// both the split's paid total and the entry status derivation.
	unlock := s.locks.lock(e.RoomID)
	defer unlock()

	sp, err = s.store.GetLedgerSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	e, err = s.store.GetLedgerEntry(ctx, sp.EntryID)
	if err != nil {
		return nil, err
	}
	actor, err := s.store.GetMembershipForUser(ctx, e.RoomID, userID)
	if err != nil {
		return nil, err
	}
	if sp.MemberID != actor.ID && actor.Role != models.RoleHeadRoommate {
		return nil, apperr.Forbidden("you can only record your own payments")
	}

	sp.RecordPayment(amountCents, s.now().Unix())
	if notes != "" {
		sp.Notes = notes
	}

	// Re-derive the entry status from the post-payment split totals.
	var paid int64
	for _, other := range e.Splits {
		if other.ID == sp.ID {
			paid += sp.PaidCents
		} else {
			paid += other.PaidCents
		}
	}
	status := e.Status
	switch {
	case paid >= e.TotalCents:
		status = models.EntryPaid
	case paid > 0:
		status = models.EntryPartiallyPaid
	}

	if err := s.store.SaveLedgerSplit(ctx, sp, status); err != nil {
		return nil, err
	}

	slog.Info("ledger payment recorded",
		"entry_id", e.ID,
		"split_id", sp.ID,
		"amount_cents", amountCents,
		"entry_status", status,
	)
	return sp, nil
}

// MemberBalances aggregates owed/paid totals for every active member.
func (s *LedgerService) MemberBalances(ctx context.Context, userID, roomID string) ([]models.MemberBalance, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var balances []models.MemberBalance
	for _, m := range room.ActiveMembers() {
		bal, err := s.balanceFor(ctx, roomID, m.ID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, bal)
	}
	return balances, nil
}

// MemberBalance aggregates one member's ledger position.
func (s *LedgerService) MemberBalance(ctx context.Context, userID, roomID, memberID string) (*models.MemberBalance, error) {
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
	bal, err := s.balanceFor(ctx, roomID, memberID)
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (s *LedgerService) balanceFor(ctx context.Context, roomID, memberID string) (models.MemberBalance, error) {
	splits, err := s.store.ListLedgerSplitsForMember(ctx, roomID, memberID)
	if err != nil {
		return models.MemberBalance{}, err
	}
	bal := models.MemberBalance{MemberID: memberID}
	for _, sp := range splits {
		bal.TotalOwedCents += sp.OwedCents
		bal.TotalPaidCents += sp.PaidCents
		if sp.Status != models.PaymentPaid {
			bal.UnpaidSplits++
		}
	}
	bal.OutstandingCents = bal.TotalOwedCents - bal.TotalPaidCents
	return bal, nil
}

// CancelEntry marks an entry CANCELLED. The head roommate or the
// entry's creator may cancel.
func (s *LedgerService) CancelEntry(ctx context.Context, userID, entryID string) error {
	e, err := s.store.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return err
	}
	actor, err := s.store.GetMembershipForUser(ctx, e.RoomID, userID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleHeadRoommate && e.CreatedBy != actor.ID {
		return apperr.Forbidden("you don't have permission to cancel this entry")
	}
	if err := s.store.SetLedgerEntryStatus(ctx, entryID, models.EntryCancelled); err != nil {
		return err
	}

	slog.Info("ledger entry cancelled", "entry_id", entryID, "actor_id", actor.ID)
	return nil
}

// DeleteEntry removes an entry and its splits. Head roommate only.
func (s *LedgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	e, err := s.store.GetLedgerEntry(ctx, entryID)
	if err != nil {
		return err
	}
	actor, err := s.store.GetMembershipForUser(ctx, e.RoomID, userID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleHeadRoommate {
		return apperr.Forbidden("only the head roommate can delete ledger entries")
	}
	if err := s.store.DeleteLedgerEntry(ctx, entryID); err != nil {
		return err
	}

	slog.Info("ledger entry deleted", "entry_id", entryID, "actor_id", actor.ID)
	return nil
}
