package service

import (
	"time"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/clock"
	"github.com/yourname/wellnesstracker/internal/dateutil"
	"github.com/yourname/wellnesstracker/internal/grade"
)

// Read models handed to the presentation layer. They are detached copies
// built per request; mutating one never touches stored state.

type SleepCycleView struct {
	ID            string             `json:"id"`
	Start         time.Time          `json:"start"`
	End           *time.Time         `json:"end,omitempty"`
	Open          bool               `json:"open"`
	DurationLabel string             `json:"duration_label,omitempty"`
	Grade         grade.Grade        `json:"grade"`
	Dial          []clock.ArcSegment `json:"dial,omitempty"`
}

// NewSleepCycleView prepares a cycle's display values: formatted duration,
// quality grade and the dial arc segments between the start and end
// angles. Open cycles get no duration or dial geometry.
func NewSleepCycleView(c internal.SleepCycle) SleepCycleView {
	v := SleepCycleView{
		ID:    c.ID,
		Start: c.Start,
		Open:  c.Open(),
		Grade: grade.New(c.Quality),
	}
	if c.End != nil {
		end := *c.End
		v.End = &end
		v.DurationLabel = dateutil.FormatDuration(c.Duration())
		v.Dial = clock.ArcSpan(clock.AngleForTime(c.Start), clock.AngleForTime(end))
	}
	return v
}

func NewSleepCycleViews(cycles []internal.SleepCycle) []SleepCycleView {
	views := make([]SleepCycleView, len(cycles))
	for i, c := range cycles {
		views[i] = NewSleepCycleView(c)
	}
	return views
}

type GoalView struct {
	ID            string    `json:"id"`
	Day           time.Time `json:"day"`
	Water         int       `json:"water"`
	Steps         int       `json:"steps"`
	WaterProgress float64   `json:"water_progress"`
	StepsProgress float64   `json:"steps_progress"`
	WaterBadge    string    `json:"water_badge,omitempty"`
	StepsBadge    string    `json:"steps_badge,omitempty"`
}

func NewGoalView(g internal.Goal, targets GoalTargets) GoalView {
	waterRatio := progressRatio(g.Water, targets.Water)
	stepsRatio := progressRatio(g.Steps, targets.Steps)
	return GoalView{
		ID:            g.ID,
		Day:           g.Day,
		Water:         g.Water,
		Steps:         g.Steps,
		WaterProgress: waterRatio,
		StepsProgress: stepsRatio,
		WaterBadge:    Badge(waterRatio),
		StepsBadge:    Badge(stepsRatio),
	}
}

func NewGoalViews(goals []internal.Goal, targets GoalTargets) []GoalView {
	views := make([]GoalView, len(goals))
	for i, g := range goals {
		views[i] = NewGoalView(g, targets)
	}
	return views
}

type DailyMetricsView struct {
	internal.DailyMetrics
	SleepLabel string `json:"sleep_label"`
	WaterBadge string `json:"water_badge,omitempty"`
	StepsBadge string `json:"steps_badge,omitempty"`
}

func NewDailyMetricsView(m internal.DailyMetrics) DailyMetricsView {
	return DailyMetricsView{
		DailyMetrics: m,
		SleepLabel:   dateutil.FormatDuration(time.Duration(m.SleepMinutes) * time.Minute),
		WaterBadge:   Badge(m.WaterProgress),
		StepsBadge:   Badge(m.StepsProgress),
	}
}
