package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/dateutil"
	"github.com/yourname/wellnesstracker/internal/storage"
)

type SetGoalRequest struct {
	Day    time.Time `json:"day" validate:"required"`
	Amount int       `json:"amount" validate:"gte=0"`
}

func ValidateSetGoalRequest(req *SetGoalRequest) error {
	return validate.Struct(req)
}

// GoalStore owns the per-(user, calendar day) goal records. Water and step
// updates are absolute-set upserts: the day's record is created lazily on
// first write and the field is overwritten, never incremented, so setting
// the same amount twice stores that amount once.
type GoalStore struct {
	repo storage.GoalRepository
}

func NewGoalStore(repo storage.GoalRepository) *GoalStore {
	return &GoalStore{repo: repo}
}

func (s *GoalStore) SetWater(ctx context.Context, user *internal.User, day time.Time, amount int) (*internal.Goal, error) {
	return s.upsert(ctx, user, day, func(g *internal.Goal) {
		g.Water = amount
	})
}

func (s *GoalStore) SetSteps(ctx context.Context, user *internal.User, day time.Time, amount int) (*internal.Goal, error) {
	return s.upsert(ctx, user, day, func(g *internal.Goal) {
		g.Steps = amount
	})
}

func (s *GoalStore) upsert(ctx context.Context, user *internal.User, day time.Time, apply func(*internal.Goal)) (*internal.Goal, error) {
	now := time.Now()

	goal, err := s.repo.GetGoalByDay(ctx, user.ID, day)
	if err == internal.ErrGoalNotFound {
		goal = &internal.Goal{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Day:       dateutil.StartOfDay(day),
			CreatedAt: now,
		}
	} else if err != nil {
		return nil, err
	}

	apply(goal)
	goal.UpdatedAt = now
	if err := s.repo.SaveGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Fetch returns the goal for that exact calendar day, or ErrGoalNotFound.
func (s *GoalStore) Fetch(ctx context.Context, user *internal.User, day time.Time) (*internal.Goal, error) {
	return s.repo.GetGoalByDay(ctx, user.ID, day)
}

// FetchRecent returns the goals of the trailing sinceDaysAgo window, day
// descending.
func (s *GoalStore) FetchRecent(ctx context.Context, user *internal.User, sinceDaysAgo int) ([]internal.Goal, error) {
	since := dateutil.DaysAgo(time.Now(), sinceDaysAgo)
	return s.repo.ListGoalsSince(ctx, user.ID, since)
}

func (s *GoalStore) Delete(ctx context.Context, goalID string) error {
	return s.repo.DeleteGoal(ctx, goalID)
}
