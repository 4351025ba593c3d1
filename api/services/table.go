package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type row[T any] struct {
	record    T
	createdAt time.Time
}

// Table is an in-memory collection of records keyed by a server-assigned ID.
// Records are listed in insertion order.
type Table[T any] struct {
	Name string

	stamp    func(rec *T, id string, createdAt time.Time)
	validate func(rec T) error
	now      func() time.Time

	mu   sync.RWMutex
	ids  []string
	rows map[string]row[T]
}

func NewTable[T any](name string, stamp func(*T, string, time.Time), validate func(T) error) *Table[T] {
	return &Table[T]{
		Name:     name,
		stamp:    stamp,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		rows:     make(map[string]row[T]),
	}
}

// List returns all records.
func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	records := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		records = append(records, t.rows[id].record)
	}
	return records
}

// Get returns the record with the given ID.
func (t *Table[T]) Get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return r.record, nil
}

// Create decodes body as a new record. Any ID or creation time in the body
// is replaced.
func (t *Table[T]) Create(body []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, &ValidationError{Field: "body", Message: err.Error()}
	}
	return t.Insert(rec)
}

// Insert stores rec under a fresh ID.
func (t *Table[T]) Insert(rec T) (T, error) {
	id := uuid.NewString()
	createdAt := t.now()
	t.stamp(&rec, id, createdAt)

	if err := t.validate(rec); err != nil {
		return rec, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = append(t.ids, id)
	t.rows[id] = row[T]{record: rec, createdAt: createdAt}
	return rec, nil
}

// Update overlays the fields present in body onto the stored record.
func (t *Table[T]) Update(id string, body []byte) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}

	rec := r.record
	if err := json.Unmarshal(body, &rec); err != nil {
		return r.record, &ValidationError{Field: "body", Message: err.Error()}
	}
	t.stamp(&rec, id, r.createdAt)

	if err := t.validate(rec); err != nil {
		return r.record, err
	}

	t.rows[id] = row[T]{record: rec, createdAt: r.createdAt}
	return rec, nil
}

// Delete removes the record with the given ID.
func (t *Table[T]) Delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %s: %w", t.Name, id, ErrNotFound)
	}
	delete(t.rows, id)
	for i, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
