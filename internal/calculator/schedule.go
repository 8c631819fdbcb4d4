package calculator

import (
	"fmt"
	"time"

	"github.com/jagmansidhu/DaRoommate/internal/models"
)

// MaxDeadlineAhead bounds how far in the future a chore deadline may be.
const MaxDeadlineAhead = 365 * 24 * time.Hour

// period lengths per frequency unit. MONTHLY uses a fixed 30 days so
// materialization is deterministic regardless of calendar month.
var periodByUnit = map[models.FrequencyUnit]time.Duration{
	models.Weekly:   7 * 24 * time.Hour,
	models.Biweekly: 14 * 24 * time.Hour,
	models.Monthly:  30 * 24 * time.Hour,
}

// ValidateChoreSpec checks name, count, unit and the deadline window
// (now, now+365d]. Returns the offending field in the error message.
func ValidateChoreSpec(name string, count int, unit models.FrequencyUnit, deadline, now time.Time) error {
	if name == "" {
		return fmt.Errorf("chore name is required")
	}
	if count < 1 {
		return fmt.Errorf("frequency count must be at least 1, got %d", count)
	}
	if !models.ValidFrequencyUnit(unit) {
		return fmt.Errorf("unknown frequency unit %q", unit)
	}
	if !deadline.After(now) {
		return fmt.Errorf("deadline must be in the future")
	}
	if deadline.After(now.Add(MaxDeadlineAhead)) {
		return fmt.Errorf("deadline cannot be more than a year out")
	}
	return nil
}

// MaterializeSchedule returns the due timestamps for a chore template:
// one period boundary at now + k*period for every k >= 1 while the
// boundary is at or before the deadline, with count occurrences per
// boundary. The result is deterministic and idempotent for a fixed now.
func MaterializeSchedule(count int, unit models.FrequencyUnit, deadline, now time.Time) []time.Time {
	period, ok := periodByUnit[unit]
	if !ok || count < 1 {
		return nil
	}

	var due []time.Time
	for boundary := now.Add(period); !boundary.After(deadline); boundary = boundary.Add(period) {
		for i := 0; i < count; i++ {
			due = append(due, boundary)
		}
	}
	return due
}
