// Package grade buckets a raw 0–10 score into five descriptive bands with
// fixed display colors. Inputs outside the scale are clamped, so callers
// never see an error from this package.
package grade

// Grade is a clamped 0–10 score.
type Grade struct {
	Value       int    `json:"value"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// New clamps value to [0, 10] and resolves its band:
// 0 ungraded, 1–3 poor, 4–6 fair, 7–8 good, 9–10 excellent.
func New(value int) Grade {
	if value < 0 {
		value = 0
	}
	if value > 10 {
		value = 10
	}
	desc, color := band(value)
	return Grade{Value: value, Description: desc, Color: color}
}

func band(v int) (string, string) {
	switch {
	case v == 0:
		return "ungraded", "gray"
	case v <= 3:
		return "poor", "red"
	case v <= 6:
		return "fair", "orange"
	case v <= 8:
		return "good", "green"
	default:
		return "excellent", "blue"
	}
}
