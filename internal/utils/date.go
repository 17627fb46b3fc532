package utils

import "time"

// StartCurrentDay truncates the time of day, keeping the timezone.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay returns midnight of the following day in the same timezone.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}
