package service

import (
	"context"
	"time"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/dateutil"
	"github.com/yourname/wellnesstracker/internal/storage"
)

// caloriesPerStep converts a day's step count into its calorie term.
const caloriesPerStep = 0.04

// Badge thresholds for goal progress ratios, kept here so the
// presentation layer and the views agree on one pair of values.
const (
	AchievedRatio = 1.0
	ExceededRatio = 1.1
)

// Badge classifies a progress ratio: "" below target, "achieved" at or
// above it, "exceeded" at or above ExceededRatio.
func Badge(ratio float64) string {
	switch {
	case ratio >= ExceededRatio:
		return "exceeded"
	case ratio >= AchievedRatio:
		return "achieved"
	default:
		return ""
	}
}

// GoalTargets are the implicit daily targets progress is measured against.
type GoalTargets struct {
	Water int
	Steps int
}

// progressRatio guards the zero-target division: no target means no
// progress to report.
func progressRatio(current, target int) float64 {
	if target == 0 {
		return 0
	}
	return float64(current) / float64(target)
}

// ComputeDailyMetrics derives the read-only metrics for one calendar day
// from snapshots of the underlying records. Calories sum each same-day
// exercise's duration × intensity × type factor, plus a steps term when a
// goal record exists. Sleep minutes sum the full duration of every cycle
// whose end falls on the day: a cycle crossing midnight counts wholly on
// its end day, and an open cycle contributes nothing until it is closed
// (which undercounts "tonight so far" views; accepted). goal may be nil.
func ComputeDailyMetrics(day time.Time, exercises []internal.Exercise, cycles []internal.SleepCycle, goal *internal.Goal, targets GoalTargets) internal.DailyMetrics {
	m := internal.DailyMetrics{Day: dateutil.StartOfDay(day)}

	for _, ex := range exercises {
		if !dateutil.SameDay(ex.Date, day) {
			continue
		}
		m.Calories += float64(ex.DurationMin) * float64(ex.Intensity) * ex.Type.CalorieFactor()
	}

	for _, c := range cycles {
		if c.End == nil || !dateutil.SameDay(*c.End, day) {
			continue
		}
		m.SleepMinutes += int(c.End.Sub(c.Start).Minutes())
	}

	if goal != nil {
		m.Calories += float64(goal.Steps) * caloriesPerStep
		m.WaterProgress = progressRatio(goal.Water, targets.Water)
		m.StepsProgress = progressRatio(goal.Steps, targets.Steps)
	}

	return m
}

// AggregationEngine gathers the day's records and hands them to
// ComputeDailyMetrics. It never mutates its inputs and returns a fresh
// value each call; nothing derived is ever stored.
type AggregationEngine struct {
	cycles    storage.SleepCycleRepository
	goals     storage.GoalRepository
	exercises storage.ExerciseRepository
	targets   GoalTargets
}

func NewAggregationEngine(repos storage.Repositories, targets GoalTargets) *AggregationEngine {
	return &AggregationEngine{
		cycles:    repos.Cycles,
		goals:     repos.Goals,
		exercises: repos.Exercises,
		targets:   targets,
	}
}

func (e *AggregationEngine) Targets() GoalTargets {
	return e.targets
}

func (e *AggregationEngine) DailyMetrics(ctx context.Context, user *internal.User, day time.Time) (internal.DailyMetrics, error) {
	exercises, err := e.exercises.ListExercisesByDay(ctx, user.ID, day)
	if err != nil {
		return internal.DailyMetrics{}, err
	}
	cycles, err := e.cycles.ListCycles(ctx, user.ID, 0)
	if err != nil {
		return internal.DailyMetrics{}, err
	}
	goal, err := e.goals.GetGoalByDay(ctx, user.ID, day)
	if err == internal.ErrGoalNotFound {
		goal = nil
	} else if err != nil {
		return internal.DailyMetrics{}, err
	}

	return ComputeDailyMetrics(day, exercises, cycles, goal, e.targets), nil
}
