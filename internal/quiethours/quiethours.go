// Package quiethours decides whether an instant falls inside a user's
// configured do-not-disturb window. The check runs at scheduling time
// only; a retry that drifts past the window boundary is not
// re-suppressed.
package quiethours

import (
	"fmt"
	"time"
)

// InWindow reports whether t falls inside the [start, end) window
// expressed in the user's local timezone. start and end use "HH:MM".
// A window whose start is after its end wraps past midnight
// (22:00-08:00 covers 23:30 and 03:00). start == end means the window
// is empty, never inside.
func InWindow(t time.Time, timezone, start, end string) (bool, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return false, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	startMins, err := parseClock(start)
	if err != nil {
		return false, fmt.Errorf("parse window start: %w", err)
	}

	endMins, err := parseClock(end)
	if err != nil {
		return false, fmt.Errorf("parse window end: %w", err)
	}

	if startMins == endMins {
		return false, nil
	}

	local := t.In(loc)
	nowMins := local.Hour()*60 + local.Minute()

	if startMins < endMins {
		return nowMins >= startMins && nowMins < endMins, nil
	}

	// Window wraps midnight.
	return nowMins >= startMins || nowMins < endMins, nil
}

func parseClock(s string) (int, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}
