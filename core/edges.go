package core

import (
	"fmt"

	set "github.com/hashicorp/go-set/v2"
)

// Edge is the common shape every edge family satisfies so EdgeStore can
// index them uniformly by from-endpoint, to-endpoint, and the
// between-both pair (spec §3.5: "stored in an indexed collection with
// three indices").
type Edge interface {
	From() NodeID
	To() NodeID
	// DedupeKey identifies edges that must be treated as the same edge:
	// same endpoints and relation/arg where applicable. Inserting a
	// second edge with an equal DedupeKey is a no-op (spec §3.5,
	// Testable Property 5).
	DedupeKey() string
	Block() int
	CauseOf() Cause
}

// ConstrainEdge is "left ≤_relation right".
type ConstrainEdge struct {
	Left, Right     NodeID
	Relation        Relation
	ShallowestBlock int
	Cause           Cause
}

func (e ConstrainEdge) From() NodeID    { return e.Left }
func (e ConstrainEdge) To() NodeID      { return e.Right }
func (e ConstrainEdge) Block() int      { return e.ShallowestBlock }
func (e ConstrainEdge) CauseOf() Cause  { return e.Cause }
func (e ConstrainEdge) DedupeKey() string {
	return fmt.Sprintf("C|%d|%d|%s", e.Left, e.Right, e.Relation.Key())
}

// LeftCallEdge is "(left arg) ≤_relation right".
type LeftCallEdge struct {
	Left, Arg, Right NodeID
	Relation         Relation
	ShallowestBlock  int
	Cause            Cause
}

func (e LeftCallEdge) From() NodeID   { return e.Left }
func (e LeftCallEdge) To() NodeID     { return e.Right }
func (e LeftCallEdge) Block() int     { return e.ShallowestBlock }
func (e LeftCallEdge) CauseOf() Cause { return e.Cause }
func (e LeftCallEdge) DedupeKey() string {
	return fmt.Sprintf("L|%d|%d|%d|%s", e.Left, e.Arg, e.Right, e.Relation.Key())
}

// RightCallEdge is "left ≤_relation (right arg)".
type RightCallEdge struct {
	Left, Right, Arg NodeID
	Relation         Relation
	ShallowestBlock  int
	Cause            Cause
}

func (e RightCallEdge) From() NodeID   { return e.Left }
func (e RightCallEdge) To() NodeID     { return e.Right }
func (e RightCallEdge) Block() int     { return e.ShallowestBlock }
func (e RightCallEdge) CauseOf() Cause { return e.Cause }
func (e RightCallEdge) DedupeKey() string {
	return fmt.Sprintf("R|%d|%d|%d|%s", e.Left, e.Right, e.Arg, e.Relation.Key())
}

// EdgeID identifies one inserted edge within a single EdgeStore.
type EdgeID uint64

// EdgeStore holds one edge family, indexed from-endpoint, to-endpoint,
// and between-both, each shadowable (spec §3.5, §4.H).
type EdgeStore[E Edge] struct {
	parent     *EdgeStore[E]
	nextID     EdgeID
	byID       *Journal[EdgeID, E]
	fromIdx    *Journal[NodeID, *set.Set[EdgeID]]
	toIdx      *Journal[NodeID, *set.Set[EdgeID]]
	betweenIdx *Journal[[2]NodeID, *set.Set[EdgeID]]
	dedupe     *Journal[string, EdgeID]
}

// NewEdgeStore returns an empty, unshadowed edge store.
func NewEdgeStore[E Edge]() *EdgeStore[E] {
	return &EdgeStore[E]{
		byID:       NewJournal[EdgeID, E](),
		fromIdx:    NewJournal[NodeID, *set.Set[EdgeID]](),
		toIdx:      NewJournal[NodeID, *set.Set[EdgeID]](),
		betweenIdx: NewJournal[[2]NodeID, *set.Set[EdgeID]](),
		dedupe:     NewJournal[string, EdgeID](),
	}
}

func addToIndex[K comparable](idx *Journal[K, *set.Set[EdgeID]], key K, id EdgeID) {
	cur, ok := idx.Get(key)
	var next *set.Set[EdgeID]
	if ok {
		next = cur.Copy()
	} else {
		next = set.New[EdgeID](1)
	}
	next.Insert(id)
	idx.Set(key, next)
}

// Insert adds e unless an edge with an equal DedupeKey already exists
// (spec §3.5). It returns the edge's id and whether it was newly
// inserted.
func (s *EdgeStore[E]) Insert(e E) (EdgeID, bool) {
	key := e.DedupeKey()
	if id, ok := s.dedupe.Get(key); ok {
		return id, false
	}
	s.nextID++
	id := s.nextID
	s.byID.Set(id, e)
	s.dedupe.Set(key, id)
	addToIndex(s.fromIdx, e.From(), id)
	addToIndex(s.toIdx, e.To(), id)
	addToIndex(s.betweenIdx, [2]NodeID{e.From(), e.To()}, id)
	return id, true
}

func (s *EdgeStore[E]) resolve(ids *set.Set[EdgeID], ok bool) []E {
	if !ok || ids == nil {
		return nil
	}
	out := make([]E, 0, ids.Size())
	for _, id := range ids.Slice() {
		if e, ok := s.byID.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// From returns every live edge whose From() endpoint is n.
func (s *EdgeStore[E]) From(n NodeID) []E {
	ids, ok := s.fromIdx.Get(n)
	return s.resolve(ids, ok)
}

// To returns every live edge whose To() endpoint is n.
func (s *EdgeStore[E]) To(n NodeID) []E {
	ids, ok := s.toIdx.Get(n)
	return s.resolve(ids, ok)
}

// Between returns every live edge directly between from and to.
func (s *EdgeStore[E]) Between(from, to NodeID) []E {
	ids, ok := s.betweenIdx.Get([2]NodeID{from, to})
	return s.resolve(ids, ok)
}

// All returns every live edge, for invariant-checking and tests.
func (s *EdgeStore[E]) All() []E {
	var out []E
	s.byID.Each(func(_ EdgeID, e E) { out = append(out, e) })
	return out
}

func (s *EdgeStore[E]) Shadow() *EdgeStore[E] {
	return &EdgeStore[E]{
		parent:     s,
		nextID:     s.nextID,
		byID:       s.byID.Shadow(),
		fromIdx:    s.fromIdx.Shadow(),
		toIdx:      s.toIdx.Shadow(),
		betweenIdx: s.betweenIdx.Shadow(),
		dedupe:     s.dedupe.Shadow(),
	}
}

func (s *EdgeStore[E]) Commit() {
	s.byID.Commit()
	s.fromIdx.Commit()
	s.toIdx.Commit()
	s.betweenIdx.Commit()
	s.dedupe.Commit()
	if s.parent != nil && s.nextID > s.parent.nextID {
		s.parent.nextID = s.nextID
	}
}

func (s *EdgeStore[E]) Revert() {
	s.byID.Revert()
	s.fromIdx.Revert()
	s.toIdx.Revert()
	s.betweenIdx.Revert()
	s.dedupe.Revert()
}
