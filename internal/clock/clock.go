// Package clock maps times of day onto a 12-hour dial for the sleep
// view. The canonical convention is 12 divisions of 30° with modular
// wraparound: hours 0 and 12 both sit at the dial origin (0°), and
// minutes advance the angle at 0.5° per minute. All functions are pure.
package clock

import "time"

const (
	degreesPerHour   = 360.0 / 12
	degreesPerMinute = degreesPerHour / 60
	fullCircle       = 360.0
)

// ArcSegment is a contiguous sweep on the dial, in degrees.
type ArcSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// AngleForHour places an hour on the dial. Hours are taken modulo 12.
func AngleForHour(hour int) float64 {
	h := hour % 12
	if h < 0 {
		h += 12
	}
	return float64(h) * degreesPerHour
}

// AngleForTime places a timestamp on the dial at fractional resolution,
// combining hour, minute and second.
func AngleForTime(t time.Time) float64 {
	angle := AngleForHour(t.Hour()) +
		float64(t.Minute())*degreesPerMinute +
		float64(t.Second())*degreesPerMinute/60
	if angle >= fullCircle {
		angle -= fullCircle
	}
	return angle
}

// ArcSpan splits the sweep from start to end into contiguous segments.
// When end >= start the sweep is a single segment; when the interval
// crosses the dial origin it is split into [start, 360) and [0, end].
func ArcSpan(start, end float64) []ArcSegment {
	if end >= start {
		return []ArcSegment{{Start: start, End: end}}
	}
	return []ArcSegment{
		{Start: start, End: fullCircle},
		{Start: 0, End: end},
	}
}
