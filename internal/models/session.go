package models

import (
	"time"
)

type SessionType string

const (
	TypeOnline   SessionType = "online"
	TypeInPerson SessionType = "in_person"
	TypeHybrid   SessionType = "hybrid"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Session is a scheduled, bookable wellness class owned by one instructor.
// StartTime/EndTime are wall-clock "HH:MM" strings in the session's declared
// time zone; StartsAt/EndsAt are the absolute instants derived from them at
// parse time and are never stored.
type Session struct {
	ID                 string      `json:"id" bson:"_id,omitempty"`
	InstructorID       string      `json:"instructor_id" bson:"instructor_id"`
	Title              string      `json:"title" bson:"title"`
	Description        string      `json:"description" bson:"description"`
	SessionType        SessionType `json:"session_type" bson:"session_type"`
	Level              Level       `json:"level" bson:"level"`
	Date               time.Time   `json:"date" bson:"date"`
	StartTime          string      `json:"start_time" bson:"start_time"` // "HH:MM"
	EndTime            string      `json:"end_time" bson:"end_time"`     // "HH:MM"
	Timezone           string      `json:"timezone" bson:"timezone"`     // IANA name, e.g. "Pacific/Auckland"
	DurationMinutes    int         `json:"duration_minutes" bson:"duration_minutes"`
	Price              float64     `json:"price" bson:"price"`
	RegisteredStudents []string    `json:"registered_students" bson:"registered_students"`
	CreatedAt          time.Time   `json:"created_at" bson:"created_at"`

	StartsAt time.Time `json:"starts_at" bson:"-"`
	EndsAt   time.Time `json:"ends_at" bson:"-"`
}
