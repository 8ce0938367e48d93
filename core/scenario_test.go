package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eaburns/dtlang/core"
	"github.com/eaburns/dtlang/fixture"
)

// TestIdentityPolymorphism is spec.md §8's "Identity polymorphism"
// scenario: `(λ(A : star 0 0). λ(x : A). x) host_number_type 3.0`
// should synthesise host_number_type and evaluate to the host number 3.
func TestIdentityPolymorphism(t *testing.T) {
	s := core.NewTypecheckerState()
	term := fixture.IdentityPolymorphism()

	typed, typ, _, err := s.Infer(core.NewTypeContext(), term)
	if err != nil {
		t.Fatalf("Infer: %s", err)
	}
	if diff := cmp.Diff(core.HostNumberType{}, typ, diffOpts...); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}

	val := s.Eval(typed, core.RuntimeContext{})
	if diff := cmp.Diff(core.HostValue{Data: 3.0}, val, diffOpts...); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

// TestImplicitInsertion is spec.md §8's "Implicit insertion" scenario:
// `f 3.0` against `f : forall{A : star 0 0}. A -> A` should insert a
// metavariable for the implicit A without it being written explicitly;
// the call's type is that metavariable, bounded below by
// host_number_type.
func TestImplicitInsertion(t *testing.T) {
	s := core.NewTypecheckerState()
	ctx, call := fixture.ImplicitInsertionContext(s)

	_, typ, _, err := s.Infer(ctx, call)
	if err != nil {
		t.Fatalf("Infer: %s", err)
	}
	free, ok := typ.(core.StuckFree)
	if !ok {
		t.Fatalf("type = %s, want the inserted metavariable", core.PrettyPrint(typ))
	}
	if _, ok := free.Var.(*core.MetaOccurrence); !ok {
		t.Fatalf("type.Var = %T, want *core.MetaOccurrence", free.Var)
	}
	cause := core.PrimitiveCause{Message: "test"}
	if err := s.Flow(ctx, typ, ctx, core.HostNumberType{}, core.SubtypeRelation{}, 0, cause); err != nil {
		t.Fatalf("Flow(A <= host_number_type): %s", err)
	}
	if err := s.Flow(ctx, typ, ctx, core.HostStringType{}, core.SubtypeRelation{}, 0, cause); err == nil {
		t.Fatalf("Flow(A <= host_string_type) succeeded, want the host_number_type lower bound to reject it")
	}
}

// TestSpeculateCommitsOnSuccess checks the shadow/commit half of
// Speculate: a metavariable allocated inside a successful speculation,
// and the bound recorded on it there, are visible on the parent state
// afterwards.
func TestSpeculateCommitsOnSuccess(t *testing.T) {
	s := core.NewTypecheckerState()
	var mv *core.Metavariable
	err := s.Speculate(func(sh *core.TypecheckerState) error {
		mv = sh.FreshMetavariable("m", false)
		return sh.Flow(core.NewTypeContext(), core.HostNumberType{}, core.NewTypeContext(), mv.AsOccurrence(), core.SubtypeRelation{}, 0, core.PrimitiveCause{Message: "test"})
	})
	if err != nil {
		t.Fatalf("Speculate: %s", err)
	}
	if mv == nil {
		t.Fatalf("FreshMetavariable did not run inside Speculate")
	}
	if err := s.Flow(core.NewTypeContext(), mv.AsOccurrence(), core.NewTypeContext(), core.HostStringType{}, core.SubtypeRelation{}, 0, core.PrimitiveCause{Message: "test"}); err == nil {
		t.Fatalf("Flow(m <= host_string_type) on the parent succeeded, want the committed host_number_type bound to reject it")
	}
}

// TestSpeculateRevertsOnFailure checks the shadow-isolation half of
// Speculate (Testable Property 6): a failed speculative branch's edges
// must not leak into the parent state, so a second, independent
// speculation against the same metavariable must not observe any
// constraint left behind by the first.
func TestSpeculateRevertsOnFailure(t *testing.T) {
	s := core.NewTypecheckerState()
	mv := s.FreshMetavariable("m", false)

	err := s.Speculate(func(sh *core.TypecheckerState) error {
		// Bound mv below by host_number_type, then fail the speculation
		// with a flow no subtype rule allows, so both edges must be
		// discarded.
		if err := sh.Flow(core.NewTypeContext(), core.HostNumberType{}, core.NewTypeContext(), mv.AsOccurrence(), core.SubtypeRelation{}, 0, core.PrimitiveCause{Message: "test"}); err != nil {
			return err
		}
		return sh.Flow(core.NewTypeContext(), core.HostNumberType{}, core.NewTypeContext(), core.HostStringType{}, core.SubtypeRelation{}, 0, core.PrimitiveCause{Message: "test"})
	})
	if err == nil {
		t.Fatalf("Speculate succeeded, want a relation mismatch error")
	}

	// A fresh, independent speculation against the same metavariable
	// must succeed: had the host_number_type lower bound survived the
	// revert, mv <= host_string_type would fail.
	err = s.Speculate(func(sh *core.TypecheckerState) error {
		return sh.Flow(core.NewTypeContext(), mv.AsOccurrence(), core.NewTypeContext(), core.HostStringType{}, core.SubtypeRelation{}, 0, core.PrimitiveCause{Message: "test2"})
	})
	if err != nil {
		t.Fatalf("Speculate after revert: %s", err)
	}
}
