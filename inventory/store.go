// Package inventory holds the CD records of a collection and the operations
// that mutate them.
//
// A Table is owned by the caller and passed explicitly to each Store
// operation:
//
//	table := inventory.NewTable()
//	store := inventory.NewStore()
//	rec, err := store.Add(ctx, table, "1", "Abbey Road", "The Beatles")
//	found := store.Delete(ctx, table, 1)
package inventory

import (
	"context"

	"github.com/tailored-agentic-units/cdinventory/observability"
)

// Store adds and removes records on a Table.
type Store struct {
	observer observability.Observer
}

// Option configures a Store.
type Option func(*Store)

// WithObserver sets the observer that receives record events.
func WithObserver(o observability.Observer) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore creates a Store. Without options events are discarded.
func NewStore(opts ...Option) *Store {
	s := &Store{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add parses id and appends a new record to t. The table is left unchanged
// when id is not an integer. Duplicate IDs are accepted.
func (s *Store) Add(ctx context.Context, t *Table, id, title, artist string) (Record, error) {
	n, err := ParseID(id)
	if err != nil {
		return Record{}, err
	}

	rec := Record{ID: n, Title: title, Artist: artist}

	if t.Contains(rec.ID) {
		observability.Emit(ctx, s.observer, EventRecordDuplicate, observability.LevelWarning, "inventory.Add", map[string]any{
			"id":       rec.ID,
			"existing": t.Count(rec.ID),
		})
	}

	t.append(rec)

	observability.Emit(ctx, s.observer, EventRecordAdd, observability.LevelVerbose, "inventory.Add", map[string]any{
		"id":      rec.ID,
		"records": t.Len(),
	})

	return rec, nil
}

// Delete removes the first record in t whose ID equals id and reports whether
// one was found.
func (s *Store) Delete(ctx context.Context, t *Table, id int) bool {
	removed, ok := t.removeFirst(id)
	if !ok {
		observability.Emit(ctx, s.observer, EventRecordMissing, observability.LevelVerbose, "inventory.Delete", map[string]any{
			"id": id,
		})
		return false
	}

	observability.Emit(ctx, s.observer, EventRecordDelete, observability.LevelVerbose, "inventory.Delete", map[string]any{
		"id":      removed.ID,
		"title":   removed.Title,
		"records": t.Len(),
	})
	return true
}
