package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeRosters applies the store's set-union semantics to in-memory rosters,
// so the tests exercise the exact update shapes the coordinator issues.
type fakeRosters struct {
	rosters map[string][]string
	failing bool
}

func newFakeRosters(sessionIDs ...string) *fakeRosters {
	f := &fakeRosters{rosters: make(map[string][]string)}
	for _, id := range sessionIDs {
		f.rosters[id] = []string{}
	}
	return f
}

func (f *fakeRosters) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if f.failing {
		return nil, errors.New("network down")
	}

	sessionID := filter.(bson.M)["_id"].(string)
	roster, ok := f.rosters[sessionID]
	if !ok {
		return &mongo.UpdateResult{MatchedCount: 0}, nil
	}

	studentID := update.(bson.M)["$addToSet"].(bson.M)["registered_students"].(string)
	for _, existing := range roster {
		if existing == studentID {
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 0}, nil
		}
	}
	f.rosters[sessionID] = append(roster, studentID)
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeRosters) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	if f.failing {
		return 0, errors.New("network down")
	}

	m := filter.(bson.M)
	roster, ok := f.rosters[m["_id"].(string)]
	if !ok {
		return 0, nil
	}
	for _, existing := range roster {
		if existing == m["registered_students"].(string) {
			return 1, nil
		}
	}
	return 0, nil
}

func TestRegisterIsIdempotent(t *testing.T) {
	fake := newFakeRosters("sess-1")
	c := &Coordinator{sessions: fake}
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "sess-1", "student-a"))
	require.NoError(t, c.Register(ctx, "sess-1", "student-a"))

	assert.Equal(t, []string{"student-a"}, fake.rosters["sess-1"])
}

func TestRegisterIsCommutative(t *testing.T) {
	ctx := context.Background()

	ab := newFakeRosters("sess-1")
	c := &Coordinator{sessions: ab}
	require.NoError(t, c.Register(ctx, "sess-1", "student-a"))
	require.NoError(t, c.Register(ctx, "sess-1", "student-b"))

	ba := newFakeRosters("sess-1")
	c = &Coordinator{sessions: ba}
	require.NoError(t, c.Register(ctx, "sess-1", "student-b"))
	require.NoError(t, c.Register(ctx, "sess-1", "student-a"))

	assert.ElementsMatch(t, ab.rosters["sess-1"], ba.rosters["sess-1"])
}

func TestRegisterUnknownSession(t *testing.T) {
	c := &Coordinator{sessions: newFakeRosters()}

	err := c.Register(context.Background(), "missing", "student-a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegisterFailureLeavesRosterUnchanged(t *testing.T) {
	fake := newFakeRosters("sess-1")
	c := &Coordinator{sessions: fake}
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "sess-1", "student-a"))

	fake.failing = true
	err := c.Register(ctx, "sess-1", "student-b")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)

	fake.failing = false
	assert.Equal(t, []string{"student-a"}, fake.rosters["sess-1"])
}

func TestIsRegistered(t *testing.T) {
	fake := newFakeRosters("sess-1")
	c := &Coordinator{sessions: fake}
	ctx := context.Background()

	registered, err := c.IsRegistered(ctx, "sess-1", "student-a")
	require.NoError(t, err)
	assert.False(t, registered)

	require.NoError(t, c.Register(ctx, "sess-1", "student-a"))

	registered, err = c.IsRegistered(ctx, "sess-1", "student-a")
	require.NoError(t, err)
	assert.True(t, registered)
}
