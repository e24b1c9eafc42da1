package storage

import (
	"context"
	"time"

	"github.com/yourname/wellnesstracker/internal"
)

// Repositories return detached copies: mutating a returned record never
// changes stored state. All writes go through the repository API.

type SleepCycleRepository interface {
	SaveCycle(ctx context.Context, cycle *internal.SleepCycle) error
	GetCycle(ctx context.Context, id string) (*internal.SleepCycle, error)
	UpdateCycle(ctx context.Context, cycle *internal.SleepCycle) error
	DeleteCycle(ctx context.Context, id string) error
	// ListCycles returns the user's cycles ordered by start descending.
	// limit <= 0 means no limit.
	ListCycles(ctx context.Context, userID string, limit int) ([]internal.SleepCycle, error)
	// OpenCycle returns the user's open cycle, or ErrCycleNotFound.
	OpenCycle(ctx context.Context, userID string) (*internal.SleepCycle, error)
}

type GoalRepository interface {
	SaveGoal(ctx context.Context, goal *internal.Goal) error
	// GetGoalByDay matches on calendar day, or ErrGoalNotFound.
	GetGoalByDay(ctx context.Context, userID string, day time.Time) (*internal.Goal, error)
	// ListGoalsSince returns goals with day >= since, day descending.
	ListGoalsSince(ctx context.Context, userID string, since time.Time) ([]internal.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

type ExerciseRepository interface {
	SaveExercise(ctx context.Context, ex *internal.Exercise) error
	// ListExercisesByDay matches on calendar day, date ascending.
	ListExercisesByDay(ctx context.Context, userID string, day time.Time) ([]internal.Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
}
