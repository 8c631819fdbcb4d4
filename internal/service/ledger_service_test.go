package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/models"
)

func newTestLedger(t *testing.T) (*LedgerService, *RoomService, *models.Room) {
	t.Helper()

	store := newTestStore(t)
	rooms := newTestRoomService(t, store)
	svc := NewLedgerService(store, rooms.Locks())
	room := seedRoom(t, rooms, "head", "bob", "carol")
	return svc, rooms, room
}

func rentParams(totalCents int64) LedgerEntryParams {
	return LedgerEntryParams{
		Title:      "March rent",
		EntryType:  models.EntryRent,
		TotalCents: totalCents,
		SplitType:  models.SplitEqual,
	}
}

func TestCreateLedgerEntry(t *testing.T) {
	svc, _, room := newTestLedger(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(150000))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if e.Status != models.EntryPending {
		t.Errorf("status: expected PENDING, got %s", e.Status)
	}
	if len(e.Splits) != 0 {
		t.Errorf("splits: expected none before assignment, got %d", len(e.Splits))
	}

	t.Run("non-head cannot create", func(t *testing.T) {
		_, err := svc.CreateEntry(ctx, "bob", room.ID, rentParams(1000))
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("expected Forbidden, got %v", err)
		}
	})

	t.Run("unknown entry type is Validation", func(t *testing.T) {
		p := rentParams(1000)
		p.EntryType = models.LedgerEntryType("LOTTERY")
		_, err := svc.CreateEntry(ctx, "head", room.ID, p)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("expected Validation, got %v", err)
		}
	})
}

func TestAssignSplits(t *testing.T) {
	svc, _, room := newTestLedger(t)
	ctx := context.Background()

	bob := memberOf(t, room, "bob")
	carol := memberOf(t, room, "carol")

	e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(150000))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	t.Run("sum mismatch is Validation", func(t *testing.T) {
		_, err := svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
			{MemberID: bob.ID, AmountCents: 70000},
			{MemberID: carol.ID, AmountCents: 70000},
		})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("expected Validation, got %v", err)
		}
	})

	t.Run("non-head cannot assign", func(t *testing.T) {
		_, err := svc.AssignSplits(ctx, "bob", e.ID, []SplitAssignment{
			{MemberID: bob.ID, AmountCents: 150000},
		})
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("expected Forbidden, got %v", err)
		}
	})

	t.Run("exact sum approves the entry", func(t *testing.T) {
		updated, err := svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
			{MemberID: bob.ID, AmountCents: 90000},
			{MemberID: carol.ID, AmountCents: 60000, Notes: "smaller bedroom"},
		})
		if err != nil {
			t.Fatalf("AssignSplits failed: %v", err)
		}
		if updated.Status != models.EntryApproved {
			t.Errorf("status: expected APPROVED, got %s", updated.Status)
		}
		if updated.SplitType != models.SplitCustom {
			t.Errorf("split type: expected CUSTOM, got %s", updated.SplitType)
		}
		if len(updated.Splits) != 2 {
			t.Fatalf("splits: expected 2, got %d", len(updated.Splits))
		}
	})

	t.Run("reassignment replaces prior splits", func(t *testing.T) {
		updated, err := svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
			{MemberID: bob.ID, AmountCents: 150000},
		})
		if err != nil {
			t.Fatalf("AssignSplits failed: %v", err)
		}
		if len(updated.Splits) != 1 {
			t.Errorf("splits: expected 1 after reassignment, got %d", len(updated.Splits))
		}
	})
}

func TestEqualSplits(t *testing.T) {
	svc, rooms, room := newTestLedger(t)
	ctx := context.Background()

	// Guests are excluded from the equal split.
	carol := memberOf(t, room, "carol")
	if err := rooms.ChangeRole(ctx, "head", room.ID, carol.ID, models.RoleGuest); err != nil {
		t.Fatalf("ChangeRole failed: %v", err)
	}

	e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(100001))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	updated, err := svc.EqualSplits(ctx, "head", e.ID)
	if err != nil {
		t.Fatalf("EqualSplits failed: %v", err)
	}
	if len(updated.Splits) != 2 {
		t.Fatalf("splits: expected 2 (guest excluded), got %d", len(updated.Splits))
	}
	var sum int64
	for _, sp := range updated.Splits {
		sum += sp.OwedCents
	}
	if sum != 100001 {
		t.Errorf("owed sum: expected 100001, got %d", sum)
	}
	if updated.SplitType != models.SplitEqual {
		t.Errorf("split type: expected EQUAL, got %s", updated.SplitType)
	}
}

func TestRecordPayment(t *testing.T) {
	svc, _, room := newTestLedger(t)
	ctx := context.Background()

	bob := memberOf(t, room, "bob")
	carol := memberOf(t, room, "carol")

	e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(10000))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	e, err = svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
		{MemberID: bob.ID, AmountCents: 6000},
		{MemberID: carol.ID, AmountCents: 4000},
	})
	if err != nil {
		t.Fatalf("AssignSplits failed: %v", err)
	}

	var bobSplit, carolSplit models.LedgerSplit
	for _, sp := range e.Splits {
		switch sp.MemberID {
		case bob.ID:
			bobSplit = sp
		case carol.ID:
			carolSplit = sp
		}
	}

	t.Run("member cannot pay someone else's split", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, "carol", bobSplit.ID, 1000, "")
		if !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("expected Forbidden, got %v", err)
		}
	})

	t.Run("partial payment", func(t *testing.T) {
		sp, err := svc.RecordPayment(ctx, "bob", bobSplit.ID, 2500, "")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if sp.Status != models.PaymentPartial {
			t.Errorf("split status: expected PARTIAL, got %s", sp.Status)
		}
		entry, err := svc.GetEntry(ctx, "head", e.ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if entry.Status != models.EntryPartiallyPaid {
			t.Errorf("entry status: expected PARTIALLY_PAID, got %s", entry.Status)
		}
	})

	t.Run("full payment settles split and entry", func(t *testing.T) {
		if _, err := svc.RecordPayment(ctx, "bob", bobSplit.ID, 3500, ""); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		// The head can record on behalf of carol.
		sp, err := svc.RecordPayment(ctx, "head", carolSplit.ID, 4000, "cash")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if sp.Status != models.PaymentPaid {
			t.Errorf("split status: expected PAID, got %s", sp.Status)
		}
		if sp.PaidAt == 0 {
			t.Error("expected PaidAt to be stamped")
		}

		entry, err := svc.GetEntry(ctx, "head", e.ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if entry.Status != models.EntryPaid {
			t.Errorf("entry status: expected PAID, got %s", entry.Status)
		}
	})

	t.Run("non-positive amount is Validation", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, "bob", bobSplit.ID, 0, "")
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("expected Validation, got %v", err)
		}
	})
}

func TestConcurrentPayments(t *testing.T) {
	svc, _, room := newTestLedger(t)
	ctx := context.Background()

	bob := memberOf(t, room, "bob")
	carol := memberOf(t, room, "carol")

	pay := func(wg *sync.WaitGroup, errs chan<- error, userID, splitID string, amount int64) {
		defer wg.Done()
		_, err := svc.RecordPayment(ctx, userID, splitID, amount, "")
		errs <- err
	}

	t.Run("parallel payments on both splits settle the entry", func(t *testing.T) {
		e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(2000))
		if err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		e, err = svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
			{MemberID: bob.ID, AmountCents: 1000},
			{MemberID: carol.ID, AmountCents: 1000},
		})
		if err != nil {
			t.Fatalf("AssignSplits failed: %v", err)
		}

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		wg.Add(2)
		for _, sp := range e.Splits {
			userID := "bob"
			if sp.MemberID == carol.ID {
				userID = "carol"
			}
			go pay(&wg, errs, userID, sp.ID, 1000)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("RecordPayment failed: %v", err)
			}
		}

		entry, err := svc.GetEntry(ctx, "head", e.ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if entry.Status != models.EntryPaid {
			t.Errorf("entry status: expected PAID, got %s", entry.Status)
		}
		if paid := entry.TotalPaidCents(); paid != 2000 {
			t.Errorf("total paid: expected 2000, got %d", paid)
		}
	})

	t.Run("parallel partial payments on one split accumulate", func(t *testing.T) {
		e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(1000))
		if err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		e, err = svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
			{MemberID: bob.ID, AmountCents: 1000},
		})
		if err != nil {
			t.Fatalf("AssignSplits failed: %v", err)
		}
		splitID := e.Splits[0].ID

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		wg.Add(2)
		go pay(&wg, errs, "bob", splitID, 400)
		go pay(&wg, errs, "bob", splitID, 400)
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("RecordPayment failed: %v", err)
			}
		}

		entry, err := svc.GetEntry(ctx, "head", e.ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if paid := entry.Splits[0].PaidCents; paid != 800 {
			t.Errorf("paid cents: expected 800, got %d", paid)
		}
		if entry.Splits[0].Status != models.PaymentPartial {
			t.Errorf("split status: expected PARTIAL, got %s", entry.Splits[0].Status)
		}
		if entry.Status != models.EntryPartiallyPaid {
			t.Errorf("entry status: expected PARTIALLY_PAID, got %s", entry.Status)
		}
	})
}

func TestMemberBalances(t *testing.T) {
	svc, _, room := newTestLedger(t)
	ctx := context.Background()

	bob := memberOf(t, room, "bob")
	carol := memberOf(t, room, "carol")

	e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(9000))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	e, err = svc.AssignSplits(ctx, "head", e.ID, []SplitAssignment{
		{MemberID: bob.ID, AmountCents: 5000},
		{MemberID: carol.ID, AmountCents: 4000},
	})
	if err != nil {
		t.Fatalf("AssignSplits failed: %v", err)
	}

	for _, sp := range e.Splits {
		if sp.MemberID == bob.ID {
			if _, err := svc.RecordPayment(ctx, "bob", sp.ID, 2000, ""); err != nil {
				t.Fatalf("RecordPayment failed: %v", err)
			}
		}
	}

	bal, err := svc.MemberBalance(ctx, "carol", room.ID, bob.ID)
	if err != nil {
		t.Fatalf("MemberBalance failed: %v", err)
	}
	if bal.TotalOwedCents != 5000 || bal.TotalPaidCents != 2000 || bal.OutstandingCents != 3000 {
		t.Errorf("bob balance: owed=%d paid=%d outstanding=%d", bal.TotalOwedCents, bal.TotalPaidCents, bal.OutstandingCents)
	}
	if bal.UnpaidSplits != 1 {
		t.Errorf("unpaid splits: expected 1, got %d", bal.UnpaidSplits)
	}

	balances, err := svc.MemberBalances(ctx, "head", room.ID)
	if err != nil {
		t.Fatalf("MemberBalances failed: %v", err)
	}
	if len(balances) != 3 {
		t.Errorf("balances: expected 3 members, got %d", len(balances))
	}
}

func TestCancelAndDeleteEntry(t *testing.T) {
	svc, _, room := newTestLedger(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, "head", room.ID, rentParams(10000))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	t.Run("roommate cannot cancel another's entry", func(t *testing.T) {
		if err := svc.CancelEntry(ctx, "bob", e.ID); !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("expected Forbidden, got %v", err)
		}
	})

	t.Run("cancelled entries drop out of the room listing", func(t *testing.T) {
		if err := svc.CancelEntry(ctx, "head", e.ID); err != nil {
			t.Fatalf("CancelEntry failed: %v", err)
		}
		entries, err := svc.ListEntries(ctx, "bob", room.ID)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("entries: expected 0 after cancel, got %d", len(entries))
		}
	})

	t.Run("only the head deletes", func(t *testing.T) {
		if err := svc.DeleteEntry(ctx, "bob", e.ID); !errors.Is(err, apperr.ErrForbidden) {
			t.Errorf("expected Forbidden, got %v", err)
		}
		if err := svc.DeleteEntry(ctx, "head", e.ID); err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
		if _, err := svc.GetEntry(ctx, "head", e.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected NotFound after delete, got %v", err)
		}
	})
}
