package models

import (
	"time"
)

// FavoriteEntry marks a lesson as bookmarked by the current user. Entries
// live only in the on-device store; the remote collection never sees them.
type FavoriteEntry struct {
	LessonID  string    `json:"lesson_id"`
	DateAdded time.Time `json:"date_added"`
}
