// Package favorites is the durable local cache of bookmarked lessons. One
// Store is constructed at the composition root and shared; every successful
// mutation fans out synchronously to subscribed readers, which reload their
// view of the favorite-id set in response.
package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
)

type Store struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]func()
	nextSub int
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:   db,
		subs: make(map[int]func()),
	}
}

// Migrate creates the favorites table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS favorites (
			lesson_id  TEXT PRIMARY KEY,
			date_added TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate favorites: %w", err)
	}
	return nil
}

// Subscribe registers a callback invoked after every successful mutation.
// The returned function unregisters it. Callbacks run synchronously on the
// mutating goroutine and carry no payload; subscribers reload instead of
// diffing.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// IsFavorite reports whether the lesson is bookmarked.
func (s *Store) IsFavorite(ctx context.Context, lessonID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM favorites WHERE lesson_id = ?", lessonID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query favorite %s: %w", lessonID, err)
	}
	return count > 0, nil
}

// Add bookmarks a lesson. Adding an already-favorited id is a no-op and does
// not notify subscribers.
func (s *Store) Add(ctx context.Context, lessonID string) error {
	favorited, err := s.IsFavorite(ctx, lessonID)
	if err != nil {
		return err
	}
	if favorited {
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO favorites (lesson_id, date_added) VALUES (?, ?)",
		lessonID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("add favorite %s: %w", lessonID, err)
	}

	s.notify()
	return nil
}

// Remove deletes every entry for the lesson, defending against accidental
// duplicates. Subscribers are notified only when something was deleted.
func (s *Store) Remove(ctx context.Context, lessonID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE lesson_id = ?", lessonID,
	)
	if err != nil {
		return fmt.Errorf("remove favorite %s: %w", lessonID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.notify()
	}
	return nil
}

// ListIDs returns every favorited lesson id, most recently added first.
// Insertion order is the rowid, which stays total even when two adds land on
// the same timestamp.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT lesson_id FROM favorites ORDER BY rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Entries returns the full favorite records, most recently added first.
func (s *Store) Entries(ctx context.Context) ([]models.FavoriteEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT lesson_id, date_added FROM favorites ORDER BY rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	entries := []models.FavoriteEntry{}
	for rows.Next() {
		var entry models.FavoriteEntry
		var added string
		if err := rows.Scan(&entry.LessonID, &added); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		if entry.DateAdded, err = time.Parse(time.RFC3339Nano, added); err != nil {
			return nil, fmt.Errorf("parse date_added for %s: %w", entry.LessonID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Filter keeps only the favorited lessons from the full catalog, ordered by
// insertion recency rather than the catalog's own order.
func (s *Store) Filter(ctx context.Context, lessons []models.Session) ([]models.Session, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Session, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}

	out := []models.Session{}
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
