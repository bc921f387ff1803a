// Package schedule partitions a fetched session set into calendar views.
// Partition is pure: it never touches the store and sorts its own output.
package schedule

import (
	"sort"
	"time"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/timeutil"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterThisWeek  Filter = "week"
	FilterThisMonth Filter = "month"
	FilterHistory   Filter = "history"
)

// ParseFilter maps a query-string value onto a Filter, defaulting to All.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterToday, FilterThisWeek, FilterThisMonth, FilterHistory:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Partition filters sessions against the reference instant. Window
// boundaries are half-open [start, end) intervals computed in ref's
// location; weeks start on Monday. History compares the session's end
// instant, not its date, and returns most recent first. All other views
// return ascending by date with the start instant as tie-break.
func Partition(sessions []models.Session, ref time.Time, f Filter) []models.Session {
	loc := ref.Location()

	var out []models.Session
	switch f {
	case FilterToday:
		start := timeutil.StartOfDay(ref, loc)
		out = within(sessions, start, start.AddDate(0, 0, 1))
	case FilterThisWeek:
		start := timeutil.StartOfWeek(ref, loc)
		out = within(sessions, start, start.AddDate(0, 0, 7))
	case FilterThisMonth:
		start := timeutil.StartOfMonth(ref, loc)
		out = within(sessions, start, start.AddDate(0, 1, 0))
	case FilterHistory:
		for _, s := range sessions {
			if s.EndsAt.Before(ref) {
				out = append(out, s)
			}
		}
		sortDescending(out)
		return out
	default:
		out = append(out, sessions...)
	}

	sortAscending(out)
	return out
}

func within(sessions []models.Session, start, end time.Time) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if !s.Date.Before(start) && s.Date.Before(end) {
			out = append(out, s)
		}
	}
	return out
}

func sortAscending(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].StartsAt.Before(sessions[j].StartsAt)
	})
}

func sortDescending(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.After(sessions[j].Date)
		}
		return sessions[i].StartsAt.After(sessions[j].StartsAt)
	})
}
