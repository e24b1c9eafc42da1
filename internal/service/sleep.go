package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/grade"
	"github.com/yourname/wellnesstracker/internal/storage"
)

var validate = validator.New()

type StartCycleRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
}

type EndCycleRequest struct {
	EndTime time.Time `json:"end_time" validate:"required"`
	Quality int       `json:"quality" validate:"gte=0,lte=10"`
}

// UpdateCycleRequest is a partial rewrite of an existing cycle. Nil fields
// keep their stored value. Fields are validated up front; the first
// violation is returned.
type UpdateCycleRequest struct {
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
	Quality *int       `json:"quality,omitempty" validate:"omitempty,gte=0,lte=10"`
}

func ValidateStartCycleRequest(req *StartCycleRequest) error {
	return validate.Struct(req)
}

func ValidateEndCycleRequest(req *EndCycleRequest) error {
	return validate.Struct(req)
}

// SleepCycleStore owns the lifecycle of a user's sleep cycles and enforces
// the at-most-one-open-cycle invariant. The invariant is a read-then-write
// check: sound under the single-writer deployment this service assumes; a
// multi-writer deployment would need the storage layer to enforce it.
type SleepCycleStore struct {
	repo storage.SleepCycleRepository
}

func NewSleepCycleStore(repo storage.SleepCycleRepository) *SleepCycleStore {
	return &SleepCycleStore{repo: repo}
}

// Start opens a new cycle with no end and quality 0 (unrated). Fails with
// ErrActiveCycleExists when the user already has an open cycle, regardless
// of the timestamps involved.
func (s *SleepCycleStore) Start(ctx context.Context, user *internal.User, startTime time.Time) (*internal.SleepCycle, error) {
	_, err := s.repo.OpenCycle(ctx, user.ID)
	if err == nil {
		return nil, internal.ErrActiveCycleExists
	}
	if err != internal.ErrCycleNotFound {
		return nil, err
	}

	cycle := &internal.SleepCycle{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Start:     startTime,
		Quality:   0,
		CreatedAt: time.Now(),
	}
	if err := s.repo.SaveCycle(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// End closes the user's open cycle, recording the end time and quality.
// The end must be strictly after the start; an equal timestamp fails.
func (s *SleepCycleStore) End(ctx context.Context, user *internal.User, endTime time.Time, quality int) (*internal.SleepCycle, error) {
	open, err := s.repo.OpenCycle(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !endTime.After(open.Start) {
		return nil, internal.ErrInvalidInterval
	}

	open.End = &endTime
	open.Quality = grade.New(quality).Value
	if err := s.repo.UpdateCycle(ctx, open); err != nil {
		return nil, err
	}
	return open, nil
}

// Active returns the user's open cycle, or nil when none is open.
func (s *SleepCycleStore) Active(ctx context.Context, user *internal.User) (*internal.SleepCycle, error) {
	open, err := s.repo.OpenCycle(ctx, user.ID)
	if err == internal.ErrCycleNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return open, nil
}

// State derives the user's tracking state from the record set: Active when
// an open cycle exists, Completed when the most recent cycle is closed,
// None when the user has no cycles at all.
func (s *SleepCycleStore) State(ctx context.Context, user *internal.User) (internal.CycleState, error) {
	open, err := s.Active(ctx, user)
	if err != nil {
		return internal.CycleState{}, err
	}
	if open != nil {
		return internal.CycleState{Phase: internal.PhaseActive, Cycle: open}, nil
	}

	latest, err := s.repo.ListCycles(ctx, user.ID, 1)
	if err != nil {
		return internal.CycleState{}, err
	}
	if len(latest) == 0 {
		return internal.CycleState{Phase: internal.PhaseNone}, nil
	}
	return internal.CycleState{Phase: internal.PhaseCompleted, Cycle: &latest[0]}, nil
}

// History lists the user's cycles by start time descending. limit <= 0
// returns everything.
func (s *SleepCycleStore) History(ctx context.Context, user *internal.User, limit int) ([]internal.SleepCycle, error) {
	return s.repo.ListCycles(ctx, user.ID, limit)
}

// Update rewrites an arbitrary cycle's fields for manual correction. The
// request is validated field by field before any write; the resulting
// interval must stay valid. Uniqueness against the user's other cycles is
// deliberately not re-checked here.
func (s *SleepCycleStore) Update(ctx context.Context, cycleID string, req UpdateCycleRequest) (*internal.SleepCycle, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}

	cycle, err := s.repo.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	newStart := cycle.Start
	if req.Start != nil {
		newStart = *req.Start
	}
	newEnd := cycle.End
	if req.End != nil {
		newEnd = req.End
	}
	if newEnd != nil && !newEnd.After(newStart) {
		return nil, internal.ErrInvalidInterval
	}

	cycle.Start = newStart
	cycle.End = newEnd
	if req.Quality != nil {
		cycle.Quality = *req.Quality
	}
	if err := s.repo.UpdateCycle(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// Delete removes a cycle permanently.
func (s *SleepCycleStore) Delete(ctx context.Context, cycleID string) error {
	return s.repo.DeleteCycle(ctx, cycleID)
}
