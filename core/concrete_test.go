package core_test

import (
	"testing"

	"github.com/eaburns/dtlang/core"
)

// TestEnumDesugarsToTupleDescType is spec.md §8's "Enum-desc supertype of
// tuple-desc" scenario: an enum type whose variants are exactly the
// canonical {empty, cons} tuple-descriptor constructor set must be
// accepted as an inhabitant of tuple_desc_type(target), with each
// variant's payload flowing covariantly into target.
func TestEnumDesugarsToTupleDescType(t *testing.T) {
	s := core.NewTypecheckerState()
	universe := core.Star{Depth: 0}

	enum := core.EnumType{Desc: core.EnumDesc{
		Variants: map[string]core.Flex{
			"empty": core.HostTypeType{},
			"cons":  core.HostTypeType{},
		},
		Order: []string{"empty", "cons"},
	}}
	use := core.TupleDescType{Target: universe}

	cause := core.PrimitiveCause{Message: "test"}
	if err := s.Flow(core.NewTypeContext(), enum, core.NewTypeContext(), use, core.SubtypeRelation{}, 0, cause); err != nil {
		t.Fatalf("Flow(enum{empty,cons}, tuple_desc_type(universe)): %s", err)
	}
}

// TestEnumWithWrongVariantsRejectsTupleDescType checks the desugaring
// stays exact: an enum whose variant set is not {empty, cons} is not a
// tuple descriptor in disguise and must be rejected.
func TestEnumWithWrongVariantsRejectsTupleDescType(t *testing.T) {
	s := core.NewTypecheckerState()
	universe := core.Star{Depth: 0}

	enum := core.EnumType{Desc: core.EnumDesc{
		Variants: map[string]core.Flex{
			"ok":  core.HostTypeType{},
			"err": core.HostTypeType{},
		},
		Order: []string{"ok", "err"},
	}}
	use := core.TupleDescType{Target: universe}

	cause := core.PrimitiveCause{Message: "test"}
	if err := s.Flow(core.NewTypeContext(), enum, core.NewTypeContext(), use, core.SubtypeRelation{}, 0, cause); err == nil {
		t.Fatalf("Flow(enum{ok,err}, tuple_desc_type(universe)) succeeded, want it rejected")
	}
}
