// Package timeutil combines calendar dates with "HH:MM" wall-clock strings
// into absolute instants and computes the half-open day/week/month windows
// used by the schedule views.
package timeutil

import (
	"fmt"
	"time"
)

// ParseClock parses a strict 24-hour "HH:MM" string.
func ParseClock(clock string) (hour, minute int, err error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, 0, fmt.Errorf("invalid clock %q: want HH:MM", clock)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return 0, 0, fmt.Errorf("invalid clock %q: want HH:MM", clock)
		}
	}
	hour = int(clock[0]-'0')*10 + int(clock[1]-'0')
	minute = int(clock[3]-'0')*10 + int(clock[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock %q: out of range", clock)
	}
	return hour, minute, nil
}

// ClockMinutes returns the number of minutes past midnight for an "HH:MM"
// string.
func ClockMinutes(clock string) (int, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// MinutesBetween returns end minus start in minutes. Both clocks are on the
// same calendar day, so the result is negative when end precedes start.
func MinutesBetween(start, end string) (int, error) {
	s, err := ClockMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ClockMinutes(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// CombineDateAndClock anchors an "HH:MM" clock to the calendar day of date as
// observed in loc, yielding an absolute instant. Comparing the results in UTC
// stays monotonic across daylight-saving transitions because time.Date
// normalizes nonexistent wall-clock times.
func CombineDateAndClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.In(loc).Date()
	return time.Date(y, mo, d, h, m, 0, 0, loc), nil
}

// FormatClock renders an instant's wall-clock time as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, mo, d := t.In(loc).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}

// StartOfWeek returns midnight of the Monday of t's ISO week in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month in loc.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	y, mo, _ := t.In(loc).Date()
	return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
}
