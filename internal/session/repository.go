// Package session provides query and create access to the remote session
// collection. Documents are parsed at this boundary: each record is decoded
// and hydrated independently, and malformed records are dropped from the
// batch rather than failing the whole fetch.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/timeutil"
)

const queryTimeout = 10 * time.Second

var errMissingFields = errors.New("session document missing required fields")

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(client *mongo.Client, dbName string) *Repository {
	return &Repository{
		collection: client.Database(dbName).Collection("sessions"),
	}
}

// FetchByInstructor returns all sessions owned by the instructor, ascending
// by date then start instant. A failed query surfaces as an error with an
// empty result; individually malformed documents are dropped.
func (r *Repository) FetchByInstructor(ctx context.Context, instructorID string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"instructor_id": instructorID})
	if err != nil {
		return nil, fmt.Errorf("fetch sessions for instructor %s: %w", instructorID, err)
	}
	defer cursor.Close(ctx)

	sessions, err := decodeBatch(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("fetch sessions for instructor %s: %w", instructorID, err)
	}
	sortAscending(sessions)
	return sessions, nil
}

// FetchAll returns every session in the collection, ascending by date.
func (r *Repository) FetchAll(ctx context.Context) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions, err := decodeBatch(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	sortAscending(sessions)
	return sessions, nil
}

// Create inserts a new session. The caller is expected to have validated the
// structural invariants; Create only assigns an id when none was supplied
// (offline-created sessions arrive with a client-generated UUID) and always
// resets the roster to empty.
func (r *Repository) Create(ctx context.Context, s models.Session) (string, error) {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	s.RegisteredStudents = []string{}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return s.ID, nil
}

// decodeBatch drains the cursor, dropping malformed documents. A cursor
// error is a transport failure of the whole fetch, not a bad record, and is
// returned to the caller.
func decodeBatch(ctx context.Context, cursor *mongo.Cursor) ([]models.Session, error) {
	sessions := []models.Session{}
	for cursor.Next(ctx) {
		s, err := parseDocument(cursor.Current)
		if err != nil {
			log.Debug().Err(err).Str("raw_id", rawID(cursor.Current)).Msg("dropping malformed session document")
			continue
		}
		sessions = append(sessions, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// parseDocument decodes one raw document and hydrates the derived instants.
// Any failure means the record is unusable and is dropped by the caller.
func parseDocument(raw bson.Raw) (models.Session, error) {
	var s models.Session
	if err := bson.Unmarshal(raw, &s); err != nil {
		return models.Session{}, err
	}
	return hydrate(s)
}

// hydrate checks required fields and computes StartsAt/EndsAt in the
// session's declared time zone.
func hydrate(s models.Session) (models.Session, error) {
	if s.InstructorID == "" || s.Title == "" || s.StartTime == "" || s.EndTime == "" || s.Date.IsZero() {
		return models.Session{}, errMissingFields
	}

	loc := time.UTC
	if s.Timezone != "" {
		l, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return models.Session{}, fmt.Errorf("session %s: unknown timezone %q", s.ID, s.Timezone)
		}
		loc = l
	}

	starts, err := timeutil.CombineDateAndClock(s.Date, s.StartTime, loc)
	if err != nil {
		return models.Session{}, fmt.Errorf("session %s: %w", s.ID, err)
	}
	ends, err := timeutil.CombineDateAndClock(s.Date, s.EndTime, loc)
	if err != nil {
		return models.Session{}, fmt.Errorf("session %s: %w", s.ID, err)
	}
	if !ends.After(starts) {
		return models.Session{}, fmt.Errorf("session %s: end %s not after start %s", s.ID, s.EndTime, s.StartTime)
	}
	if minutes, err := timeutil.MinutesBetween(s.StartTime, s.EndTime); err != nil || s.DurationMinutes != minutes {
		return models.Session{}, fmt.Errorf("session %s: duration_minutes %d does not match clocks %s-%s", s.ID, s.DurationMinutes, s.StartTime, s.EndTime)
	}

	s.StartsAt = starts
	s.EndsAt = ends
	if s.RegisteredStudents == nil {
		s.RegisteredStudents = []string{}
	}
	return s, nil
}

func sortAscending(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].StartsAt.Before(sessions[j].StartsAt)
	})
}

func rawID(raw bson.Raw) string {
	if v, err := raw.LookupErr("_id"); err == nil {
		if id, ok := v.StringValueOK(); ok {
			return id
		}
	}
	return ""
}
