// Package booking registers students into session rosters. Registration is a
// single $addToSet update against the session document, so it is idempotent
// and safe to race against a concurrent registration of a different student
// without reading the roster first.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 10 * time.Second

var ErrSessionNotFound = errors.New("session not found")

// rosterCollection is the subset of *mongo.Collection the coordinator uses.
type rosterCollection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type Coordinator struct {
	sessions rosterCollection
}

func NewCoordinator(client *mongo.Client, dbName string) *Coordinator {
	return &Coordinator{
		sessions: client.Database(dbName).Collection("sessions"),
	}
}

// IsRegistered reports whether the student is on the session's roster. The
// read is not transactional relative to concurrent registrations; a stale
// answer is acceptable.
func (c *Coordinator) IsRegistered(ctx context.Context, sessionID, studentID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := c.sessions.CountDocuments(ctx, bson.M{
		"_id":                 sessionID,
		"registered_students": studentID,
	})
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return count > 0, nil
}

// Register adds the student to the session's roster. Registering an already
// registered student is a no-op, and two concurrent registrations for the
// same session merge without a lost update; the store's set-union primitive
// carries both guarantees. A failure leaves the roster unchanged.
func (c *Coordinator) Register(ctx context.Context, sessionID, studentID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := c.sessions.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$addToSet": bson.M{"registered_students": studentID}},
	)
	if err != nil {
		return fmt.Errorf("register student %s: %w", studentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
