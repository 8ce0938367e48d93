package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// internalDiffOpts mirrors core_test's diffOpts (core/cmp_test.go) for
// this package's one internal-package test file: cmp refuses to
// traverse an unexported embedded field (strictBase, typedBase, ...)
// without being told which concrete types to ignore them on.
var internalDiffOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(HostNumberType{}, TLiteral{}),
}

// TestScopeEscapeMaterializesConstrainedType is spec.md §8's "Scope
// escape" scenario: open a block, create a metavariable M, constrain
// M <= host_number_type, then close the block with a substitution that
// quotes M. The resulting typed term must be a constrained_type carrying
// a single sliced-constrain element bounding the fresh metavariable to
// host_number_type, and evaluating it must re-register that bound
// against a freshly allocated metavariable in the outer scope.
func TestScopeEscapeMaterializesConstrainedType(t *testing.T) {
	s := NewTypecheckerState()
	sh := s.Shadow()

	mv := sh.FreshMetavariable("M", false)
	cause := PrimitiveCause{Message: "scope escape bound"}
	if err := sh.Flow(NewTypeContext(), mv.AsOccurrence(), NewTypeContext(), HostNumberType{}, SubtypeRelation{}, sh.blockLevel, cause); err != nil {
		t.Fatalf("Flow(M <= host_number_type): %s", err)
	}

	quoted := substituteInner(sh, mv.AsOccurrence(), nil, 0, s.blockLevel)
	ct, ok := quoted.(TConstrainedType)
	if !ok {
		t.Fatalf("quoted = %T, want TConstrainedType", quoted)
	}
	if len(ct.Constraints) != 1 {
		t.Fatalf("len(Constraints) = %d, want 1", len(ct.Constraints))
	}
	elem := ct.Constraints[0]
	if elem.ElemKind != ElemSlicedConstrain {
		t.Fatalf("ElemKind = %s, want %s", elem.ElemKind, ElemSlicedConstrain)
	}
	if diff := cmp.Diff(TLiteral{Value: HostNumberType{}}, elem.Other, internalDiffOpts...); diff != "" {
		t.Fatalf("Other mismatch (-want +got):\n%s", diff)
	}

	sh.Commit()

	result := s.Eval(quoted, RuntimeContext{})
	free, ok := result.(StuckFree)
	if !ok {
		t.Fatalf("result = %s, want a fresh metavariable occurrence", PrettyPrint(result))
	}
	if _, ok := free.Var.(*MetaOccurrence); !ok {
		t.Fatalf("result.Var = %T, want *MetaOccurrence", free.Var)
	}

	// The sliced bound must have survived the round trip: the fresh
	// metavariable still flows into host_number_type.
	if err := s.Flow(NewTypeContext(), result, NewTypeContext(), HostNumberType{}, SubtypeRelation{}, s.blockLevel, cause); err != nil {
		t.Fatalf("Flow(fresh <= host_number_type) after scope escape: %s", err)
	}
	// And an unrelated type must not flow into it: host_string_type <=
	// fresh <= host_number_type has no subtype rule, so the bound is
	// real, not vacuous.
	if err := s.Flow(NewTypeContext(), HostStringType{}, NewTypeContext(), result, SubtypeRelation{}, s.blockLevel, cause); err == nil {
		t.Fatalf("Flow(host_string_type <= fresh) succeeded, want the sliced host_number_type bound to reject it")
	}
}
