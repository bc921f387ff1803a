package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
)

func marshalDoc(t *testing.T, doc bson.M) bson.Raw {
	t.Helper()
	b, err := bson.Marshal(doc)
	require.NoError(t, err)
	return bson.Raw(b)
}

func validDoc(id string) bson.M {
	return bson.M{
		"_id":                 id,
		"instructor_id":       "inst-1",
		"title":               "Morning Yoga",
		"description":         "Vinyasa flow",
		"session_type":        "online",
		"level":               "beginner",
		"date":                time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		"start_time":          "09:00",
		"end_time":            "10:00",
		"timezone":            "UTC",
		"duration_minutes":    60,
		"price":               12.5,
		"registered_students": []string{"s1"},
		"created_at":          time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseDocument(t *testing.T) {
	s, err := parseDocument(marshalDoc(t, validDoc("sess-1")))
	require.NoError(t, err)

	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, models.TypeOnline, s.SessionType)
	assert.Equal(t, 60, s.DurationMinutes)
	assert.Equal(t, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC), s.StartsAt)
	assert.Equal(t, time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC), s.EndsAt)
	assert.True(t, s.EndsAt.After(s.StartsAt))
}

func TestParseDocumentBatchDropsMalformed(t *testing.T) {
	missingTitle := validDoc("bad-1")
	delete(missingTitle, "title")

	batch := []bson.Raw{
		marshalDoc(t, validDoc("good-1")),
		marshalDoc(t, missingTitle),
		marshalDoc(t, validDoc("good-2")),
	}

	var parsed []models.Session
	for _, raw := range batch {
		s, err := parseDocument(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, s)
	}

	require.Len(t, parsed, 2)
	assert.Equal(t, "good-1", parsed[0].ID)
	assert.Equal(t, "good-2", parsed[1].ID)
}

func TestDecodeBatchDropsMalformed(t *testing.T) {
	missingTitle := validDoc("bad-1")
	delete(missingTitle, "title")

	cursor, err := mongo.NewCursorFromDocuments(
		[]interface{}{validDoc("good-1"), missingTitle, validDoc("good-2")}, nil, nil,
	)
	require.NoError(t, err)

	sessions, err := decodeBatch(context.Background(), cursor)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "good-1", sessions[0].ID)
	assert.Equal(t, "good-2", sessions[1].ID)
}

func TestDecodeBatchSurfacesCursorError(t *testing.T) {
	cursor, err := mongo.NewCursorFromDocuments(
		[]interface{}{validDoc("good-1")}, errors.New("connection reset"), nil,
	)
	require.NoError(t, err)

	// A mid-stream transport failure is a fetch failure, never a silently
	// shortened batch.
	_, err = decodeBatch(context.Background(), cursor)
	assert.Error(t, err)
}

func TestParseDocumentRejectsBadClock(t *testing.T) {
	doc := validDoc("bad-clock")
	doc["start_time"] = "9am"

	_, err := parseDocument(marshalDoc(t, doc))
	assert.Error(t, err)
}

func TestHydrateComputesInstantsInDeclaredZone(t *testing.T) {
	doc := validDoc("tz-1")
	doc["timezone"] = "Pacific/Auckland"

	s, err := parseDocument(marshalDoc(t, doc))
	require.NoError(t, err)

	// 09:00 NZDT on 2 March 2026 is 20:00 UTC the previous day.
	assert.Equal(t, time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC), s.StartsAt.UTC())
}

func TestHydrateRejectsUnknownZone(t *testing.T) {
	doc := validDoc("tz-2")
	doc["timezone"] = "Mars/Olympus"

	_, err := parseDocument(marshalDoc(t, doc))
	assert.Error(t, err)
}

func TestHydrateRejectsInconsistentDuration(t *testing.T) {
	doc := validDoc("skewed")
	doc["duration_minutes"] = 45 // clocks say 60

	_, err := parseDocument(marshalDoc(t, doc))
	assert.Error(t, err)
}

func TestHydrateRejectsEndBeforeStart(t *testing.T) {
	doc := validDoc("inverted")
	doc["start_time"] = "10:00"
	doc["end_time"] = "09:00"

	_, err := parseDocument(marshalDoc(t, doc))
	assert.Error(t, err)
}

func TestHydrateDefaultsRoster(t *testing.T) {
	doc := validDoc("no-roster")
	delete(doc, "registered_students")

	s, err := parseDocument(marshalDoc(t, doc))
	require.NoError(t, err)
	assert.NotNil(t, s.RegisteredStudents)
	assert.Empty(t, s.RegisteredStudents)
}

func TestSortAscending(t *testing.T) {
	day1 := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{ID: "c", Date: day2, StartsAt: day2.Add(9 * time.Hour)},
		{ID: "b", Date: day1, StartsAt: day1.Add(17 * time.Hour)},
		{ID: "a", Date: day1, StartsAt: day1.Add(7 * time.Hour)},
	}

	sortAscending(sessions)

	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
	assert.Equal(t, "c", sessions[2].ID)
}
