package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/timeutil"
)

// Wednesday midday, so the week window is Mon 12 Jan .. Mon 19 Jan.
var ref = time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)

func makeSession(t *testing.T, id string, date time.Time, start, end string) models.Session {
	t.Helper()
	starts, err := timeutil.CombineDateAndClock(date, start, time.UTC)
	require.NoError(t, err)
	ends, err := timeutil.CombineDateAndClock(date, end, time.UTC)
	require.NoError(t, err)
	return models.Session{
		ID:        id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		StartsAt:  starts,
		EndsAt:    ends,
	}
}

func ids(sessions []models.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func TestPartitionToday(t *testing.T) {
	sessions := []models.Session{
		makeSession(t, "same-day", time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "next-day", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "prev-day", time.Date(2026, time.January, 13, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
	}

	got := Partition(sessions, ref, FilterToday)
	assert.Equal(t, []string{"same-day"}, ids(got))
}

func TestPartitionThisWeekBoundaries(t *testing.T) {
	sessions := []models.Session{
		makeSession(t, "at-week-start", time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "midweek", time.Date(2026, time.January, 16, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "at-week-end", time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "before-week", time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
	}

	got := Partition(sessions, ref, FilterThisWeek)
	// Half-open window: the start boundary is in, the end boundary is out.
	assert.Equal(t, []string{"at-week-start", "midweek"}, ids(got))
}

func TestPartitionThisMonthBoundaries(t *testing.T) {
	sessions := []models.Session{
		makeSession(t, "first-of-month", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "last-of-month", time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "next-month", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "prev-month", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
	}

	got := Partition(sessions, ref, FilterThisMonth)
	assert.Equal(t, []string{"first-of-month", "last-of-month"}, ids(got))
}

func TestPartitionHistoryUsesEndInstant(t *testing.T) {
	sessions := []models.Session{
		// Same calendar day as ref but already finished.
		makeSession(t, "ended-today", time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC), "08:00", "09:00"),
		// Same calendar day, still in progress at ref (ends 13:00).
		makeSession(t, "in-progress", time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC), "11:00", "13:00"),
		makeSession(t, "last-week", time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "future", time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
	}

	got := Partition(sessions, ref, FilterHistory)
	// Most recent past first.
	assert.Equal(t, []string{"ended-today", "last-week"}, ids(got))
}

func TestPartitionAllAscendingWithStartTieBreak(t *testing.T) {
	day := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		makeSession(t, "late", day, "17:00", "18:00"),
		makeSession(t, "future-day", time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), "09:00", "10:00"),
		makeSession(t, "early", day, "07:00", "08:00"),
	}

	got := Partition(sessions, ref, FilterAll)
	assert.Equal(t, []string{"early", "late", "future-day"}, ids(got))
}

func TestPartitionDoesNotMutateInput(t *testing.T) {
	day := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		makeSession(t, "b", day, "17:00", "18:00"),
		makeSession(t, "a", day, "07:00", "08:00"),
	}

	_ = Partition(sessions, ref, FilterAll)
	assert.Equal(t, []string{"b", "a"}, ids(sessions))
}

func TestParseFilter(t *testing.T) {
	assert.Equal(t, FilterToday, ParseFilter("today"))
	assert.Equal(t, FilterHistory, ParseFilter("history"))
	assert.Equal(t, FilterAll, ParseFilter(""))
	assert.Equal(t, FilterAll, ParseFilter("bogus"))
}
