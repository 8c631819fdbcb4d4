package models

// RoomState is the lifecycle state of a room. DELETED is terminal.
type RoomState string

const (
	RoomActive  RoomState = "ACTIVE"
	RoomDeleted RoomState = "DELETED"
)

// MembershipState is the lifecycle state of a membership.
// LEFT and REMOVED are both terminal; rows are never hard-deleted so
// historical utilities and ledger splits keep their attribution.
type MembershipState string

const (
	MemberActive  MembershipState = "ACTIVE"
	MemberLeft    MembershipState = "LEFT"
	MemberRemoved MembershipState = "REMOVED"
)

// Role is a member's rank within a room. The total order
// GUEST < ROOMMATE < ASSISTANT < HEAD_ROOMMATE governs who may act on
// whom; see the roles package.
type Role string

const (
	RoleGuest        Role = "GUEST"
	RoleRoommate     Role = "ROOMMATE"
	RoleAssistant    Role = "ASSISTANT"
	RoleHeadRoommate Role = "HEAD_ROOMMATE"
)

// ValidRole reports whether r is one of the closed set of roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleGuest, RoleRoommate, RoleAssistant, RoleHeadRoommate:
		return true
	}
	return false
}

// Limits enforced by the room registry.
const (
	// MaxRoomMembers is the maximum number of ACTIVE memberships a room
	// may hold.
	MaxRoomMembers = 6

	// MaxUserMemberships is the maximum number of ACTIVE memberships a
	// single user may hold across all rooms.
	MaxUserMemberships = 3
)

// Room represents a shared living space.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	// Name is the display name of the room (e.g., "Maple St Apartment").
	Name string

	// Address is the street address, free-form.
	Address string

	// Description is an optional free-form description.
	Description string

	// Code is the unique join token. Globally unique among ACTIVE rooms.
	Code string

	// CreatedBy is the user ID of the creator (the initial HEAD_ROOMMATE).
	CreatedBy string

	// State is the lifecycle state.
	State RoomState

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64

	// Members are the room's memberships in join order. Populated on
	// reads that load the full room; may be nil on shallow reads.
	Members []Membership
}

// ActiveMembers returns the ACTIVE memberships in join order.
func (r *Room) ActiveMembers() []Membership {
	var active []Membership
	for _, m := range r.Members {
		if m.State == MemberActive {
			active = append(active, m)
		}
	}
	return active
}

// Membership is a user's association with a room.
type Membership struct {
	// ID is the unique identifier for the membership (UUID format).
	ID string

	// RoomID is the room this membership belongs to.
	RoomID string

	// UserID is the identity key of the member, issued by the external
	// identity service. Opaque to this service.
	UserID string

	// DisplayName is the member's name as shown to other members.
	DisplayName string

	// Role is the member's rank within the room.
	Role Role

	// State is the lifecycle state.
	State MembershipState

	// JoinedAt is the Unix timestamp when the member joined. Join order
	// decides who absorbs split remainders.
	JoinedAt int64
}

// Invitation records a gated invite attempt. Delivery happens
// asynchronously and its outcome never affects the recording call.
type Invitation struct {
	ID        string
	RoomID    string
	InvitedBy string // membership ID of the inviter
	Email     string
	CreatedAt int64
}
