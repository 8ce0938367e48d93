package core

import "fmt"

// Cause is a tree of reasons attached to every constraint edge: a
// primitive string+span, a label nested around a prior cause, or a
// binary composition of two prior edges' causes. Causes are
// human-readable only; the solver never inspects them (spec §3.5).
type Cause interface {
	isCause()
	fmt.Stringer
}

type causeBase struct{}

func (causeBase) isCause() {}

// PrimitiveCause is a leaf reason: a message plus the span responsible.
type PrimitiveCause struct {
	causeBase
	Message string
	Span    Span
}

func (c PrimitiveCause) String() string {
	if c.Span == (Span{}) {
		return c.Message
	}
	return fmt.Sprintf("%s (%s)", c.Message, c.Span)
}

// NestedCause labels an inner cause with additional context (e.g. which
// relation combinator introduced a sub-obligation).
type NestedCause struct {
	causeBase
	Label string
	Inner Cause
}

func (c NestedCause) String() string {
	return fmt.Sprintf("%s: %s", c.Label, c.Inner)
}

// ComposedCause records that an edge was derived by composing two prior
// edges (e.g. transitivity or call composition).
type ComposedCause struct {
	causeBase
	Left  Cause
	Right Cause
}

func (c ComposedCause) String() string {
	return fmt.Sprintf("(%s) ∘ (%s)", c.Left, c.Right)
}

// LostCause tags a constraint derived from unpacking a Range node: it
// bypasses the edge's normal cause chain, and diagnostics surface that
// fact rather than pretending to a precise derivation (spec §7).
type LostCause struct {
	causeBase
	Inner Cause
}

func (c LostCause) String() string {
	return fmt.Sprintf("lost<%s>", c.Inner)
}
