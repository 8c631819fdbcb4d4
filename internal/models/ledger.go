package models

// LedgerEntryType categorizes a room expense.
type LedgerEntryType string

const (
	EntryRent        LedgerEntryType = "RENT"
	EntryUtility     LedgerEntryType = "UTILITY"
	EntryGrocery     LedgerEntryType = "GROCERY"
	EntryMaintenance LedgerEntryType = "MAINTENANCE"
	EntryOther       LedgerEntryType = "OTHER"
)

// ValidLedgerEntryType reports whether t is one of the closed set.
func ValidLedgerEntryType(t LedgerEntryType) bool {
	switch t {
	case EntryRent, EntryUtility, EntryGrocery, EntryMaintenance, EntryOther:
		return true
	}
	return false
}

// SplitType is how a ledger entry's total is divided among members.
type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitCustom     SplitType = "CUSTOM"
	SplitPercentage SplitType = "PERCENTAGE"
)

// ValidSplitType reports whether t is one of the closed set.
func ValidSplitType(t SplitType) bool {
	switch t {
	case SplitEqual, SplitCustom, SplitPercentage:
		return true
	}
	return false
}

// LedgerEntryStatus tracks an entry through assignment and payment.
type LedgerEntryStatus string

const (
	EntryPending       LedgerEntryStatus = "PENDING"
	EntryApproved      LedgerEntryStatus = "APPROVED"
	EntryPartiallyPaid LedgerEntryStatus = "PARTIALLY_PAID"
	EntryPaid          LedgerEntryStatus = "PAID"
	EntryCancelled     LedgerEntryStatus = "CANCELLED"
)

// PaymentStatus tracks one split's payment progress.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// LedgerEntry is a room expense to be split among members.
// Entries start PENDING; assigning splits approves them, and recorded
// payments move them through PARTIALLY_PAID to PAID.
type LedgerEntry struct {
	ID          string
	RoomID      string
	CreatedBy   string // membership ID of the creator
	Title       string
	Description string
	EntryType   LedgerEntryType
	TotalCents  int64
	SplitType   SplitType
	Status      LedgerEntryStatus
	DueDate     int64 // Unix timestamp; zero when no due date was set
	CreatedAt   int64

	// Splits are the per-member assignments. Empty until splits are
	// assigned. Amounts owed sum exactly to TotalCents once assigned.
	Splits []LedgerSplit
}

// TotalPaidCents sums the payments recorded across all splits.
func (e *LedgerEntry) TotalPaidCents() int64 {
	var paid int64
	for _, s := range e.Splits {
		paid += s.PaidCents
	}
	return paid
}

// FullyPaid reports whether recorded payments cover the entry total.
func (e *LedgerEntry) FullyPaid() bool {
	return e.TotalPaidCents() >= e.TotalCents
}

// LedgerSplit is one member's assigned portion of a ledger entry.
type LedgerSplit struct {
	ID        string
	EntryID   string
	MemberID  string
	OwedCents int64
	PaidCents int64
	Status    PaymentStatus
	PaidAt    int64 // Unix timestamp; zero until fully paid
	Notes     string
}

// RecordPayment adds amount to the split's paid total and updates the
// payment status. now is the Unix timestamp stamped when the split
// becomes fully paid.
func (s *LedgerSplit) RecordPayment(amountCents, now int64) {
	s.PaidCents += amountCents
	switch {
	case s.PaidCents <= 0:
		s.Status = PaymentUnpaid
	case s.PaidCents >= s.OwedCents:
		s.Status = PaymentPaid
		s.PaidAt = now
	default:
		s.Status = PaymentPartial
	}
}

// RemainingCents is the unpaid balance on the split.
func (s *LedgerSplit) RemainingCents() int64 {
	return s.OwedCents - s.PaidCents
}

// MemberBalance aggregates one member's ledger position within a room.
type MemberBalance struct {
	MemberID         string
	TotalOwedCents   int64
	TotalPaidCents   int64
	OutstandingCents int64
	UnpaidSplits     int
}
