package services

import "time"

// DayRange returns the [start, end) window of the calendar day containing t
// in the given location.
func DayRange(t time.Time, location *time.Location) (time.Time, time.Time) {
	local := t.In(location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	return start, start.AddDate(0, 0, 1)
}

// DateAtLocation truncates t to the start of its calendar day.
func DateAtLocation(t time.Time, location *time.Location) time.Time {
	start, _ := DayRange(t, location)
	return start
}
