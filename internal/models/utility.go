package models

// Distribution is the strategy for splitting a utility's price among
// members. EQUAL_SPLIT is the only implemented strategy.
type Distribution string

const (
	EqualSplit Distribution = "EQUAL_SPLIT"
)

// Utility represents a shared bill split across a room's members.
// The split is snapshotted over the room's ACTIVE members at creation
// time; later joins and leaves do not change it.
type Utility struct {
	// ID is the unique identifier for the utility (UUID format).
	ID string

	// RoomID is the room this utility belongs to.
	RoomID string

	// Name is the display name (e.g., "Electricity - March").
	Name string

	// Description is an optional free-form description.
	Description string

	// PriceCents is the total bill amount in cents. Never negative.
	PriceCents int64

	// Distribution is the split strategy.
	Distribution Distribution

	// CreatedAt is the Unix timestamp when the utility was created.
	CreatedAt int64

	// Shares are the per-member amounts. Their sum equals PriceCents
	// exactly. Ordered by the members' join order.
	Shares []UtilityShare
}

// UtilityShare is one member's portion of a utility.
type UtilityShare struct {
	// UtilityID is the owning utility.
	UtilityID string

	// MemberID is the membership the share is assigned to.
	MemberID string

	// AmountCents is this member's portion in cents.
	AmountCents int64
}
