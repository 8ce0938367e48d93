// Package core implements the dependently-typed core: term algebra,
// normalization-by-evaluation, the bidirectional elaborator, and the
// subtyping constraint solver with speculative (shadow/commit/revert)
// state. See SPEC_FULL.md for the component map.
package core

import "fmt"

// Anchor identifies one point within one source file, analogous to
// pea's loc.Loc but kept as a plain file+line+column triple since the
// core never sees raw byte offsets, only spans handed down from the
// (out of scope) parser.
type Anchor struct {
	File   string
	Line   int
	Column int
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s:%d:%d", a.File, a.Line, a.Column)
}

// Span is the half-open source range between two Anchors.
type Span struct {
	Start Anchor
	End   Anchor
}

func (s Span) String() string {
	if s.Start.File != s.End.File {
		return fmt.Sprintf("%s-%s", s.Start, s.End)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SpannedName is the debug information every binder in this system
// carries: a textual name plus the span that introduced it. Runtime
// contexts store a SpannedName alongside every bound value; a bound
// variable occurrence must match the SpannedName stored at its index,
// or the program is ill-formed (spec §3.1, §3.3).
type SpannedName struct {
	Name string
	Span Span
}

func (d SpannedName) String() string { return d.Name }

// NoDebug is used only for synthetic binders the implementation itself
// introduces (fresh uniques, capture tuples); it is never attached to a
// binder that originated from elaborating user-supplied syntax.
var NoDebug = SpannedName{Name: "_"}
