package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
	"github.com/jagmansidhu/DaRoommate/internal/calculator"
	"github.com/jagmansidhu/DaRoommate/internal/models"
	"github.com/jagmansidhu/DaRoommate/internal/storage"
)

// ChoreSpec is one requested recurring chore in a batch.
type ChoreSpec struct {
	Name     string
	Count    int
	Unit     models.FrequencyUnit
	Deadline time.Time
}

// ChoreService defines recurring chore templates and materializes
// their due instances eagerly at definition time.
type ChoreService struct {
	store storage.Store
	locks *lockSet

	// now is swapped in tests for deterministic schedules.
	now func() time.Time
}

// NewChoreService creates a ChoreService sharing the room locks.
func NewChoreService(store storage.Store, locks *lockSet) *ChoreService {
	return &ChoreService{store: store, locks: locks, now: time.Now}
}

// DefineBatch validates every spec, then materializes and persists the
// whole batch atomically. Any invalid spec rejects the entire batch
// with no instances persisted for any of them.
func (s *ChoreService) DefineBatch(ctx context.Context, userID, roomID string, specs []ChoreSpec) ([]*models.ChoreInstance, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, apperr.Validation("at least one chore is required")
	}

	now := s.now()
	for i, spec := range specs {
		if err := calculator.ValidateChoreSpec(spec.Name, spec.Count, spec.Unit, spec.Deadline, now); err != nil {
			return nil, apperr.Validation("chore %d (%s): %v", i+1, spec.Name, err)
		}
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	var templates []*models.ChoreTemplate
	var instances []*models.ChoreInstance
	for _, spec := range specs {
		tmpl := &models.ChoreTemplate{
			RoomID:         roomID,
			Name:           spec.Name,
			FrequencyCount: spec.Count,
			FrequencyUnit:  spec.Unit,
			Deadline:       spec.Deadline.Unix(),
			CreatedAt:      now.Unix(),
		}
		// The template ID must exist before instances reference it.
		tmpl.ID = newID()
		templates = append(templates, tmpl)

		for _, due := range calculator.MaterializeSchedule(spec.Count, spec.Unit, spec.Deadline, now) {
			instances = append(instances, &models.ChoreInstance{
				RoomID:     roomID,
				TemplateID: tmpl.ID,
				Name:       spec.Name,
				DueAt:      due.Unix(),
			})
		}
	}

	if err := s.store.CreateChoreBatch(ctx, templates, instances); err != nil {
		return nil, err
	}

	slog.Info("chore batch defined",
		"room_id", roomID,
		"templates", len(templates),
		"instances", len(instances),
	)
	return instances, nil
}

// RemoveByType deletes every instance in the room matching the chore
// name, past and future, regardless of creator. Returns the count
// removed for observability; an unknown name removes zero.
func (s *ChoreService) RemoveByType(ctx context.Context, userID, roomID, choreName string) (int64, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return 0, err
	}
	if choreName == "" {
		return 0, apperr.Validation("chore name is required")
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	removed, err := s.store.DeleteChoresByName(ctx, roomID, choreName)
	if err != nil {
		return 0, err
	}

	slog.Info("chores removed", "room_id", roomID, "name", choreName, "count", removed)
	return removed, nil
}

// ListByRoom returns a room's chore instances. Membership is the only
// gate; listing tolerates staleness and takes no lock.
func (s *ChoreService) ListByRoom(ctx context.Context, userID, roomID string) ([]*models.ChoreInstance, error) {
	if _, err := s.store.GetMembershipForUser(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.store.ListChoreInstancesByRoom(ctx, roomID)
}

// ListForUser returns chore instances across every room the caller
// actively belongs to.
func (s *ChoreService) ListForUser(ctx context.Context, userID string) ([]*models.ChoreInstance, error) {
	return s.store.ListChoreInstancesForUser(ctx, userID)
}
