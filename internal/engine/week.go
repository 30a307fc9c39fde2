package engine

import "time"

const dayLayout = "2006-01-02"

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight on the Monday of t's week, in t's location.
// Sunday belongs to the week that started six days earlier.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return truncateDay(t).AddDate(0, 0, -(weekday - 1))
}

// DayString formats t as a local calendar day.
func DayString(t time.Time) string {
	return t.Format(dayLayout)
}
