package followup

import "time"

// HoursSince returns the whole hours elapsed from instant to now, floored.
// Future instants yield negative values; every rule treats negative elapsed
// time as not yet due.
// INVARIANT: now is sampled once per evaluation pass and shared by all rules
func HoursSince(instant, now time.Time) int {
	d := now.Sub(instant)
	h := int(d / time.Hour)
	if d%time.Hour < 0 {
		h--
	}
	return h
}

// DaysSince returns floor(HoursSince / 24).
func DaysSince(instant, now time.Time) int {
	h := HoursSince(instant, now)
	if h < 0 {
		return -((-h + 23) / 24)
	}
	return h / 24
}

// DateDue reports whether date's calendar day is on or before now's calendar
// day. Referral dates compare at day granularity irrespective of
// time-of-day, deliberately, so a candidate does not flap across timezone
// boundaries within a single day.
func DateDue(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	return !dayOf(date).After(dayOf(now))
}

// hoursSinceDate returns hours elapsed since local midnight of date's
// calendar day, used only to order date-based candidates by overdue-ness.
func hoursSinceDate(date, now time.Time) int {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return HoursSince(start, now)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
