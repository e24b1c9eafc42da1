package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/wellnesstracker/internal"
)

var testTargets = GoalTargets{Water: 2000, Steps: 10000}

func TestSleepMinutesAttributedToEndDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 22, 30, 0, 0, time.Local)
	end := time.Date(2025, 1, 2, 6, 45, 0, 0, time.Local)
	cycles := []internal.SleepCycle{
		{ID: "c1", UserID: "u1", Start: start, End: &end, Quality: 7},
	}

	endDay := ComputeDailyMetrics(end, nil, cycles, nil, testTargets)
	assert.Equal(t, 495, endDay.SleepMinutes)

	// The cycle crosses midnight; nothing is attributed to the start day.
	startDay := ComputeDailyMetrics(start, nil, cycles, nil, testTargets)
	assert.Equal(t, 0, startDay.SleepMinutes)
}

func TestOpenCycleContributesNothing(t *testing.T) {
	start := time.Date(2025, 1, 2, 1, 0, 0, 0, time.Local)
	cycles := []internal.SleepCycle{
		{ID: "c1", UserID: "u1", Start: start, End: nil},
	}
	m := ComputeDailyMetrics(start, nil, cycles, nil, testTargets)
	assert.Equal(t, 0, m.SleepMinutes)
}

func TestCaloriesFromExercisesAndSteps(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	exercises := []internal.Exercise{
		{Date: day.Add(8 * time.Hour), DurationMin: 30, Intensity: 6, Type: internal.ExerciseRunning},
		{Date: day.Add(18 * time.Hour), DurationMin: 60, Intensity: 4, Type: internal.ExerciseCycling},
		{Date: day.AddDate(0, 0, -1), DurationMin: 90, Intensity: 9, Type: internal.ExerciseRunning}, // other day
	}
	goal := &internal.Goal{Day: day, Water: 1000, Steps: 6000}

	m := ComputeDailyMetrics(day, exercises, nil, goal, testTargets)

	// 30×6×1.2 + 60×4×1.0 + 6000×0.04
	assert.InDelta(t, 216+240+240, m.Calories, 1e-9)
}

func TestCaloriesWithoutGoalRecord(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	exercises := []internal.Exercise{
		{Date: day.Add(time.Hour), DurationMin: 45, Intensity: 5, Type: internal.ExerciseWalking},
	}

	// No goal for the day: no steps-derived term, no progress ratios.
	m := ComputeDailyMetrics(day, exercises, nil, nil, testTargets)
	assert.InDelta(t, 45*5*0.5, m.Calories, 1e-9)
	assert.Zero(t, m.WaterProgress)
	assert.Zero(t, m.StepsProgress)
}

func TestProgressRatios(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	goal := &internal.Goal{Day: day, Water: 1500, Steps: 11000}

	m := ComputeDailyMetrics(day, nil, nil, goal, testTargets)
	assert.InDelta(t, 0.75, m.WaterProgress, 1e-9)
	assert.InDelta(t, 1.1, m.StepsProgress, 1e-9)
}

func TestZeroTargetGuardsDivision(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	goal := &internal.Goal{Day: day, Water: 500, Steps: 500}

	m := ComputeDailyMetrics(day, nil, nil, goal, GoalTargets{})
	assert.Zero(t, m.WaterProgress)
	assert.Zero(t, m.StepsProgress)
}

func TestBadgeThresholds(t *testing.T) {
	assert.Equal(t, "", Badge(0.99))
	assert.Equal(t, "achieved", Badge(1.0))
	assert.Equal(t, "achieved", Badge(1.09))
	assert.Equal(t, "exceeded", Badge(1.1))
	assert.Equal(t, "exceeded", Badge(2.5))
}

func TestAggregationEngineGathersRecords(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	user := testUser()

	sleep := NewSleepCycleStore(repos.Cycles)
	goals := NewGoalStore(repos.Goals)
	exercises := NewExerciseStore(repos.Exercises)
	engine := NewAggregationEngine(repos, testTargets)

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	_, err := sleep.Start(ctx, user, start)
	require.NoError(t, err)
	end := time.Date(2025, 1, 2, 6, 30, 0, 0, time.Local)
	_, err = sleep.End(ctx, user, end, 8)
	require.NoError(t, err)

	_, err = goals.SetSteps(ctx, user, end, 5000)
	require.NoError(t, err)
	_, err = goals.SetWater(ctx, user, end, 2000)
	require.NoError(t, err)

	_, err = exercises.Log(ctx, user, &LogExerciseRequest{
		Date:        end.Add(4 * time.Hour),
		DurationMin: 20,
		Intensity:   5,
		Type:        "yoga",
	})
	require.NoError(t, err)

	m, err := engine.DailyMetrics(ctx, user, end)
	require.NoError(t, err)
	assert.Equal(t, 450, m.SleepMinutes)
	assert.InDelta(t, 20*5*0.4+5000*0.04, m.Calories, 1e-9)
	assert.InDelta(t, 1.0, m.WaterProgress, 1e-9)
	assert.InDelta(t, 0.5, m.StepsProgress, 1e-9)

	view := NewDailyMetricsView(m)
	assert.Equal(t, "7h 30min", view.SleepLabel)
	assert.Equal(t, "achieved", view.WaterBadge)
	assert.Equal(t, "", view.StepsBadge)
}
