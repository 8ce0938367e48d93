package core

import "fmt"

// NodeID identifies a node in the constraint graph: either an interned
// concrete value or one endpoint of a metavariable (spec §4.G step 1).
type NodeID uint64

type nodeRecord struct {
	id    NodeID
	label string
	value Flex // nil for a bare metavariable endpoint with no interned value
}

// Graph is the solver's node table. Concrete values are interned once
// per (value, tag) via nodeKey; metavariables instead get two
// pre-allocated node ids (their Value and Usage endpoints) that never
// participate in interning, since two distinct metavariables with
// "equal" current bounds must still be tracked as distinct unknowns
// (spec §9: "resist the temptation to collapse them").
type Graph struct {
	parent  *Graph
	nextID  NodeID
	byKey   *Journal[string, NodeID]
	records *Journal[NodeID, *nodeRecord]
}

// NewGraph returns an empty, unshadowed graph.
func NewGraph() *Graph {
	return &Graph{
		nextID:  1,
		byKey:   NewJournal[string, NodeID](),
		records: NewJournal[NodeID, *nodeRecord](),
	}
}

func (g *Graph) alloc(label string, v Flex) NodeID {
	g.nextID++
	id := g.nextID
	g.records.Set(id, &nodeRecord{id: id, label: label, value: v})
	return id
}

// AllocMetaNodes allocates the Value/Usage node pair for a freshly
// created metavariable.
func (g *Graph) AllocMetaNodes(label string) (value, usage NodeID) {
	return g.alloc(label+".value", nil), g.alloc(label+".usage", nil)
}

// nodeKey computes a deterministic structural key for interning. Flex
// values that embed reference-like data (a pi's result closure,
// metavariable occurrences, unique tokens, placeholders) key on Go's
// default formatting of their pointer fields, which gives them identity
// semantics - exactly the behaviour wanted for those kinds - while plain
// composite data (closure values, tuple values, host primitives, enum
// descriptors, ...) keys structurally, so
// repeated occurrences of e.g. host_number_type collapse to one node.
func nodeKey(v Flex) string {
	return fmt.Sprintf("%d:%#v", v.Kind(), v)
}

// CheckValue resolves v to a node id (spec §4.G step 1, "check_value").
// asUse selects which endpoint of a metavariable occurrence to use:
// when a metavariable appears on the "use" (right, lower-bound) side of
// a constraint it resolves to its Usage node; on the "val" (left,
// upper-bound) side it resolves to its Value node.
func (g *Graph) CheckValue(v Flex, asUse bool) NodeID {
	if mo, ok := metaOccurrence(v); ok {
		if asUse {
			return mo.UsageNode
		}
		return mo.ValueNode
	}
	key := nodeKey(v)
	if id, ok := g.byKey.Get(key); ok {
		return id
	}
	id := g.alloc(key, v)
	g.byKey.Set(key, id)
	return id
}

// Value returns the concrete Flex value interned at a node id, if any
// (false for metavariable endpoints, which carry no fixed value).
func (g *Graph) Value(id NodeID) (Flex, bool) {
	rec, ok := g.records.Get(id)
	if !ok || rec.value == nil {
		return nil, false
	}
	return rec.value, true
}

func (g *Graph) Label(id NodeID) string {
	if rec, ok := g.records.Get(id); ok {
		return rec.label
	}
	return fmt.Sprintf("node%d", id)
}

// metaOccurrence extracts the *Metavariable behind a StuckFree value, if
// v is a metavariable occurrence.
func metaOccurrence(v Flex) (*Metavariable, bool) {
	sf, ok := v.(StuckFree)
	if !ok {
		return nil, false
	}
	mo, ok := sf.Var.(*MetaOccurrence)
	if !ok {
		return nil, false
	}
	return mo.Meta, true
}

// Shadow, Commit, Revert implement the transactional protocol (spec
// §4.H) over both of Graph's journals and its allocation counter.
func (g *Graph) Shadow() *Graph {
	return &Graph{
		parent:  g,
		nextID:  g.nextID,
		byKey:   g.byKey.Shadow(),
		records: g.records.Shadow(),
	}
}

func (g *Graph) Commit() {
	g.byKey.Commit()
	g.records.Commit()
	if g.parent != nil && g.nextID > g.parent.nextID {
		g.parent.nextID = g.nextID
	}
}

func (g *Graph) Revert() {
	g.byKey.Revert()
	g.records.Revert()
}
