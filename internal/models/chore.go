package models

// FrequencyUnit is the recurrence period of a chore template.
type FrequencyUnit string

const (
	Weekly   FrequencyUnit = "WEEKLY"
	Biweekly FrequencyUnit = "BIWEEKLY"
	Monthly  FrequencyUnit = "MONTHLY"
)

// ValidFrequencyUnit reports whether u is one of the closed set.
func ValidFrequencyUnit(u FrequencyUnit) bool {
	switch u {
	case Weekly, Biweekly, Monthly:
		return true
	}
	return false
}

// ChoreTemplate defines a recurring chore within a room. Instances are
// materialized eagerly when the template is created.
type ChoreTemplate struct {
	// ID is the unique identifier for the template (UUID format).
	ID string

	// RoomID is the room this chore belongs to.
	RoomID string

	// Name identifies the chore (e.g., "Trash"). Removal is by
	// (RoomID, Name), so names act as the chore type key.
	Name string

	// FrequencyCount is how many instances are due per period. Always >= 1.
	FrequencyCount int

	// FrequencyUnit is the period length.
	FrequencyUnit FrequencyUnit

	// Deadline is the Unix timestamp after which no instances are due.
	// Must be strictly in the future and at most a year out at creation.
	Deadline int64

	// CreatedAt is the Unix timestamp when the template was created.
	CreatedAt int64
}

// ChoreInstance is a single materialized due occurrence of a chore.
type ChoreInstance struct {
	// ID is the unique identifier for the instance (UUID format).
	ID string

	// RoomID is the room this instance belongs to.
	RoomID string

	// TemplateID is the template this instance was materialized from.
	TemplateID string

	// Name is copied from the template at creation time.
	Name string

	// DueAt is the Unix timestamp when the instance is due.
	DueAt int64
}
