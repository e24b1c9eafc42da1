package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// SleepCycle is one sleep session. End is nil while the session is open;
// Quality 0 means unrated. When End is set it is strictly after Start.
type SleepCycle struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end,omitempty"`
	Quality   int        `json:"quality"` // 0–10, 0 = unrated
	CreatedAt time.Time  `json:"created_at"`
}

// Open reports whether the cycle has no end recorded yet.
func (c *SleepCycle) Open() bool {
	return c.End == nil
}

// Duration is the elapsed time of a completed cycle, zero while open.
func (c *SleepCycle) Duration() time.Duration {
	if c.End == nil {
		return 0
	}
	return c.End.Sub(c.Start)
}

// Goal accumulates hydration and step counts for one (user, calendar day)
// pair. At most one Goal exists per user per day.
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Day       time.Time `json:"day"` // truncated to midnight
	Water     int       `json:"water"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExerciseType tags an exercise with its calorie factor.
type ExerciseType string

const (
	ExerciseWalking  ExerciseType = "walking"
	ExerciseRunning  ExerciseType = "running"
	ExerciseCycling  ExerciseType = "cycling"
	ExerciseSwimming ExerciseType = "swimming"
	ExerciseStrength ExerciseType = "strength"
	ExerciseYoga     ExerciseType = "yoga"
	ExerciseOther    ExerciseType = "other"
)

var exerciseCalorieFactors = map[ExerciseType]float64{
	ExerciseWalking:  0.5,
	ExerciseRunning:  1.2,
	ExerciseCycling:  1.0,
	ExerciseSwimming: 1.1,
	ExerciseStrength: 0.9,
	ExerciseYoga:     0.4,
	ExerciseOther:    0.8,
}

// CalorieFactor returns the per-type multiplier used by the aggregation
// engine. Unknown types fall back to the "other" factor.
func (t ExerciseType) CalorieFactor() float64 {
	if f, ok := exerciseCalorieFactors[t]; ok {
		return f
	}
	return exerciseCalorieFactors[ExerciseOther]
}

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	_, ok := exerciseCalorieFactors[t]
	return ok
}

type Exercise struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Date        time.Time    `json:"date"`
	DurationMin int          `json:"duration_min"`
	Intensity   int          `json:"intensity"` // 0–10
	Type        ExerciseType `json:"type"`
	CreatedAt   time.Time    `json:"created_at"`
}

// DailyMetrics is derived on demand from the day's exercises, completed
// sleep cycles and goal record. It is never persisted.
type DailyMetrics struct {
	Day           time.Time `json:"day"`
	Calories      float64   `json:"calories"`
	SleepMinutes  int       `json:"sleep_minutes"`
	WaterProgress float64   `json:"water_progress"`
	StepsProgress float64   `json:"steps_progress"`
}

// CyclePhase tags the user's sleep state derived from the record set.
type CyclePhase string

const (
	PhaseNone      CyclePhase = "none"
	PhaseActive    CyclePhase = "active"
	PhaseCompleted CyclePhase = "completed"
)

// CycleState is the explicit sleep-tracking state of a user: None (no
// cycles recorded), Active (an open cycle exists) or Completed (the most
// recent cycle is closed). It is always computed from the stored records,
// never cached alongside them.
type CycleState struct {
	Phase CyclePhase  `json:"phase"`
	Cycle *SleepCycle `json:"cycle,omitempty"`
}
