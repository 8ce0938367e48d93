package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eaburns/dtlang/core"
)

// constPosition builds a TupleDesc position whose type does not depend
// on any earlier element (a non-dependent tuple).
func constPosition(typ core.Flex) *core.Closure {
	return &core.Closure{Body: core.TLiteral{Value: typ}}
}

// TestTupleElimDependentSubject is spec.md §8's "Tuple-elim dual path"
// scenario, dependent-tuple half: when the subject's static type is
// already a concrete core tuple type, tuple-elim must bind each name to
// that position's declared type rather than a fresh metavariable.
func TestTupleElimDependentSubject(t *testing.T) {
	s := core.NewTypecheckerState()

	desc := core.TupleDesc{Positions: []*core.Closure{
		constPosition(core.HostNumberType{}),
		constPosition(core.HostStringType{}),
	}}
	subjectValue := core.TupleValue{Elems: []core.Flex{
		core.HostValue{Data: 1.0},
		core.HostValue{Data: "x"},
	}}
	subject := core.NewAlreadyTyped(core.Dbg("pair"), core.TLiteral{Value: subjectValue}, core.TupleType{Desc: desc})

	// body: just the second element (the string), referenced by its
	// placeholder index (subject is not in scope, so index 2 is "b").
	body := core.NewVar(core.Dbg("b"), 2)
	elim := core.NewTupleElim(core.Dbg("elim"), subject, []core.SpannedName{core.Dbg("a"), core.Dbg("b")}, body)

	typed, typ, _, err := s.Infer(core.NewTypeContext(), elim)
	if err != nil {
		t.Fatalf("Infer: %s", err)
	}
	if diff := cmp.Diff(core.HostStringType{}, typ, diffOpts...); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}

	val := s.Eval(typed, core.RuntimeContext{})
	if diff := cmp.Diff(core.HostValue{Data: "x"}, val, diffOpts...); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

// TestTupleElimIndependentFallback is the other half of the dual path:
// when the subject's static type is a metavariable (not yet known to
// be a core tuple), tuple-elim must still succeed by typing each bound
// name with a fresh metavariable instead of failing outright.
func TestTupleElimIndependentFallback(t *testing.T) {
	s := core.NewTypecheckerState()
	mv := s.FreshMetavariable("subject", false)

	subject := core.NewAlreadyTyped(core.Dbg("unknown"), core.TLiteral{Value: core.HostValue{Data: 1.0}}, mv.AsOccurrence())
	body := core.NewVar(core.Dbg("b"), 2)
	elim := core.NewTupleElim(core.Dbg("elim"), subject, []core.SpannedName{core.Dbg("a"), core.Dbg("b")}, body)

	if _, _, _, err := s.Infer(core.NewTypeContext(), elim); err != nil {
		t.Fatalf("Infer: %s, want the independent fallback to succeed", err)
	}
}
