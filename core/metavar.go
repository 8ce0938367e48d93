package core

import "fmt"

// Metavariable is an unknown typed value represented by two distinct
// graph nodes rather than a single mutable "current type" slot (spec
// §3.4, §9 design notes): ValueNode is what the unknown *is* (an upper
// bound collects on it), UsageNode is what it is expected to be (a
// lower bound collects on it). Resist collapsing them after a single
// constraint — bivariance is the point.
type Metavariable struct {
	ID         uint64
	ValueNode  NodeID
	UsageNode  NodeID
	Trait      bool
	BlockLevel int
}

func (m *Metavariable) String() string {
	if m.Trait {
		return fmt.Sprintf("?trait%d", m.ID)
	}
	return fmt.Sprintf("?%d", m.ID)
}

// AsOccurrence returns the stuck value that represents this metavariable
// when it appears as a value (e.g. the result of evaluating a
// constrained_type, spec §4.C).
func (m *Metavariable) AsOccurrence() Flex {
	return StuckFree{Var: &MetaOccurrence{Meta: m}}
}
