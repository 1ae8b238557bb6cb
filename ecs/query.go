package ecs

import "iter"

// Query is a View that remembers which archetypes match, so repeated
// iteration every tick skips the archetype scan. The cache is rebuilt when
// new archetypes appear. A zero Query is usable once Init has been called,
// which the Scheduler does for system fields.
type Query[T any] struct {
	view    *View[T]
	storage *Storage
	matched []*Archetype
	cols    [][]int
	seen    int
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cached archetypes.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.cols = nil
	q.seen = -1
}

func (q *Query[T]) refresh() {
	if q.view == nil {
		panic("ecs: Query used before Init")
	}
	if len(q.storage.archetypes) == q.seen {
		return
	}
	q.matched = q.matched[:0]
	q.cols = q.cols[:0]
	for _, a := range q.storage.GetArchetypes() {
		if q.view.matches(a) {
			q.matched = append(q.matched, a)
			q.cols = append(q.cols, q.view.columnsFor(a))
		}
	}
	q.seen = len(q.storage.archetypes)
}

// Iter yields every matching entity. Archetypes are visited in id order.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.refresh()
	return func(yield func(T) bool) {
		for i, a := range q.matched {
			if !iterArchetype(q.view, a, q.cols[i], yield) {
				return
			}
		}
	}
}

// Collect returns every matching entity as a slice.
func (q *Query[T]) Collect() []T {
	out := make([]T, 0, q.Count())
	for item := range q.Iter() {
		out = append(out, item)
	}
	return out
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	q.refresh()
	for _, a := range q.matched {
		n += a.Len()
	}
	return n
}
