// Package dateutil is the calendar collaborator for the stores and the
// aggregation engine: same-calendar-day comparison, day truncation and
// trailing-window arithmetic, plus duration formatting for display.
package dateutil

import (
	"fmt"
	"time"
)

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day. This is
// local-calendar equality, not an elapsed 24-hour window.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysAgo returns midnight of the day n days before t.
func DaysAgo(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, -n)
}

// FormatDuration renders d as "7h 30min", or "45min" under one hour.
// Seconds are dropped.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	h := total / 60
	m := total % 60
	if h == 0 {
		return fmt.Sprintf("%dmin", m)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}
