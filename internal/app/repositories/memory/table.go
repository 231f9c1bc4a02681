// Package memory implements the repositories in process memory. It backs the
// default deployment and the tests.
package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yigit/lockersys/internal/pkg/helpers"
)

var (
	errDuplicateID = errors.New("duplicate id")
	errUnique      = errors.New("unique constraint violated")
)

type row[T any] struct {
	seq uint64
	val T
}

// table is a map of records keyed by id, listed newest first
// (createdAt DESC, insertion order DESC on ties).
type table[T any] struct {
	mu        sync.RWMutex
	seq       uint64
	rows      map[string]row[T]
	id        func(*T) string
	createdAt func(*T) time.Time
	// unique reports whether two distinct records collide on a unique column
	unique func(a, b *T) bool
}

func newTable[T any](id func(*T) string, createdAt func(*T) time.Time) *table[T] {
	return &table[T]{
		rows:      make(map[string]row[T]),
		id:        id,
		createdAt: createdAt,
	}
}

func (t *table[T]) collides(v *T) bool {
	if t.unique == nil {
		return false
	}
	id := t.id(v)
	for k, r := range t.rows {
		if k != id && t.unique(&r.val, v) {
			return true
		}
	}
	return false
}

func (t *table[T]) insert(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(&v)
	if _, ok := t.rows[id]; ok {
		return errDuplicateID
	}
	if t.collides(&v) {
		return errUnique
	}
	t.seq++
	t.rows[id] = row[T]{seq: t.seq, val: v}
	return nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	return r.val, ok
}

// replace overwrites an existing record, keeping its list position
func (t *table[T]) replace(v T) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(&v)
	r, ok := t.rows[id]
	if !ok {
		return false, nil
	}
	if t.collides(&v) {
		return true, errUnique
	}
	r.val = v
	t.rows[id] = r
	return true, nil
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) sortedLocked() []row[T] {
	out := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := t.createdAt(&out[i].val), t.createdAt(&out[j].val)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

// page returns up to limit records starting at offset and the total count
func (t *table[T]) page(offset uint64, limit int) ([]T, int64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := t.sortedLocked()
	start, end := helpers.CalculateSliceBounds(offset, limit, len(all))

	items := make([]T, 0, end-start)
	for _, r := range all[start:end] {
		items = append(items, r.val)
	}
	return items, int64(len(all))
}

func (t *table[T]) count(match func(*T) bool) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var n int64
	for _, r := range t.rows {
		if match == nil || match(&r.val) {
			n++
		}
	}
	return n
}

func (t *table[T]) each(fn func(*T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		v := r.val
		fn(&v)
	}
}

// updateWhere mutates every matching record in place and returns how many changed
func (t *table[T]) updateWhere(match func(*T) bool, mutate func(*T)) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for id, r := range t.rows {
		if !match(&r.val) {
			continue
		}
		mutate(&r.val)
		t.rows[id] = r
		n++
	}
	return n
}
