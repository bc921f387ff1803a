// Package dashboard derives the instructor's weekly business metrics from a
// week-filtered session set. Nothing is cached; the caller recomputes on
// every dashboard load.
package dashboard

import (
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
)

type WeeklyMetrics struct {
	ClassCount     int     `json:"class_count"`
	HourTotal      float64 `json:"hour_total"`
	UniqueStudents int     `json:"unique_students"`
	Revenue        float64 `json:"revenue"`
}

// Aggregate reduces the session set in a single pass. An empty input yields
// the zero value, not an error.
func Aggregate(sessions []models.Session) WeeklyMetrics {
	var m WeeklyMetrics
	students := make(map[string]struct{})

	for _, s := range sessions {
		m.ClassCount++
		m.HourTotal += float64(s.DurationMinutes) / 60
		m.Revenue += s.Price * float64(len(s.RegisteredStudents))
		for _, id := range s.RegisteredStudents {
			students[id] = struct{}{}
		}
	}

	m.UniqueStudents = len(students)
	return m
}
