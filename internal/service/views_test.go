package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/clock"
)

func TestSleepCycleViewCompleted(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	end := time.Date(2025, 1, 2, 6, 30, 0, 0, time.Local)
	v := NewSleepCycleView(internal.SleepCycle{
		ID: "c1", UserID: "u1", Start: start, End: &end, Quality: 8,
	})

	assert.False(t, v.Open)
	assert.Equal(t, "7h 30min", v.DurationLabel)
	assert.Equal(t, "good", v.Grade.Description)
	assert.Equal(t, "green", v.Grade.Color)

	// 23:00 sits at 330°, 6:30 at 195°: the sweep crosses the dial
	// origin and splits in two.
	require.Len(t, v.Dial, 2)
	assert.Equal(t, clock.ArcSegment{Start: 330, End: 360}, v.Dial[0])
	assert.Equal(t, clock.ArcSegment{Start: 0, End: 195}, v.Dial[1])
}

func TestSleepCycleViewOpen(t *testing.T) {
	v := NewSleepCycleView(internal.SleepCycle{
		ID: "c1", UserID: "u1", Start: time.Now(),
	})
	assert.True(t, v.Open)
	assert.Empty(t, v.DurationLabel)
	assert.Nil(t, v.Dial)
	assert.Equal(t, "ungraded", v.Grade.Description)
}

func TestSleepCycleViewIsDetached(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	end := start.Add(8 * time.Hour)
	cycle := internal.SleepCycle{ID: "c1", UserID: "u1", Start: start, End: &end}

	v := NewSleepCycleView(cycle)
	*v.End = v.End.Add(48 * time.Hour)

	// Mutating the snapshot never reaches the source record.
	assert.Equal(t, end, *cycle.End)
}

func TestGoalViewBadges(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	v := NewGoalView(internal.Goal{
		ID: "g1", Day: day, Water: 2300, Steps: 9000,
	}, GoalTargets{Water: 2000, Steps: 10000})

	assert.InDelta(t, 1.15, v.WaterProgress, 1e-9)
	assert.Equal(t, "exceeded", v.WaterBadge)
	assert.InDelta(t, 0.9, v.StepsProgress, 1e-9)
	assert.Equal(t, "", v.StepsBadge)
}
