package core

// Journal is the single mechanism behind every shadowable mutable
// container in the solver (spec §4.H): the node table, each edge
// family's indices, the memoisation caches, and the host registries are
// all instances of Journal[K, V] for different K, V.
//
// shadow() returns a child whose reads fall through to the parent and
// whose writes are local; commit() flattens local writes into the
// parent; revert() discards them. While a child is live the parent is
// "locked": writing directly to a shadowed parent is a bug, and is
// reported as such rather than silently corrupting state (spec §4.H,
// §9 "Lock detection... should be a debug-mode assertion").
type Journal[K comparable, V any] struct {
	parent *Journal[K, V]
	writes map[K]V
	dels   map[K]bool
	locked bool
}

// NewJournal returns a fresh, unshadowed root journal.
func NewJournal[K comparable, V any]() *Journal[K, V] {
	return &Journal[K, V]{writes: map[K]V{}, dels: map[K]bool{}}
}

// Shadow returns a new journal layered on top of j. j becomes locked for
// direct writes until the shadow is committed or reverted.
func (j *Journal[K, V]) Shadow() *Journal[K, V] {
	if j.locked {
		panic("core: shadow() of an already-shadowed (locked) journal")
	}
	j.locked = true
	return &Journal[K, V]{parent: j, writes: map[K]V{}, dels: map[K]bool{}}
}

// Commit flattens this shadow's writes into its parent and unlocks it.
func (j *Journal[K, V]) Commit() {
	if j.parent == nil {
		panic("core: commit() of a root journal")
	}
	for k := range j.dels {
		j.parent.rawDelete(k)
	}
	for k, v := range j.writes {
		j.parent.rawSet(k, v)
	}
	j.parent.locked = false
	j.invalidate()
}

// Revert discards this shadow's writes and unlocks its parent.
func (j *Journal[K, V]) Revert() {
	if j.parent == nil {
		panic("core: revert() of a root journal")
	}
	j.parent.locked = false
	j.invalidate()
}

// invalidate poisons a committed/reverted shadow so further use panics
// loudly instead of silently operating on stale state.
func (j *Journal[K, V]) invalidate() {
	j.parent = nil
	j.writes = nil
	j.dels = nil
	j.locked = true
}

func (j *Journal[K, V]) rawSet(k K, v V) {
	delete(j.dels, k)
	j.writes[k] = v
}

func (j *Journal[K, V]) rawDelete(k K) {
	j.dels[k] = true
	delete(j.writes, k)
}

// Set records a write, visible to this journal and any future shadow of
// it, but not to the parent until Commit.
func (j *Journal[K, V]) Set(k K, v V) {
	if j.locked {
		panic("core: write to a locked (shadowed) journal")
	}
	j.rawSet(k, v)
}

// Delete records a tombstone, masking any parent value for k.
func (j *Journal[K, V]) Delete(k K) {
	if j.locked {
		panic("core: write to a locked (shadowed) journal")
	}
	j.rawDelete(k)
}

// Get resolves k against this journal, falling through to the parent
// chain if not locally written or deleted.
func (j *Journal[K, V]) Get(k K) (V, bool) {
	if j.dels != nil && j.dels[k] {
		var zero V
		return zero, false
	}
	if v, ok := j.writes[k]; ok {
		return v, true
	}
	if j.parent != nil {
		return j.parent.Get(k)
	}
	var zero V
	return zero, false
}

// Each calls fn once per key visible from this journal (local writes
// shadow the parent's value for the same key; local deletes suppress
// it). Iteration order is unspecified.
func (j *Journal[K, V]) Each(fn func(K, V)) {
	seen := make(map[K]bool, len(j.writes)+len(j.dels))
	for k, v := range j.writes {
		seen[k] = true
		fn(k, v)
	}
	for k := range j.dels {
		seen[k] = true
	}
	if j.parent != nil {
		j.parent.Each(func(k K, v V) {
			if !seen[k] {
				fn(k, v)
			}
		})
	}
}

// Len reports the number of live (non-deleted) keys visible from this
// journal. It walks the whole parent chain, so callers on a hot path
// should prefer Each with their own counter when they also need the
// entries.
func (j *Journal[K, V]) Len() int {
	n := 0
	j.Each(func(K, V) { n++ })
	return n
}
