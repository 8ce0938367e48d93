// Package numeric is a concrete host integration exercising
// register_host_srel (spec §6) end to end: it registers a parametric
// "list" host type family's variance, and provides Invoke, a dispatch
// function for a small set of host intrinsics (add/sub/mul/lt) that the
// embedding host program calls; nothing is installed into core for
// them. Grounded on spec §8's "Identity
// polymorphism"/"Implicit insertion" scenarios, which both bottom out
// at host_number_type and host number literals.
package numeric

import (
	"fmt"

	"github.com/eaburns/dtlang/core"
)

// ListFamilyID is the host_user_defined_type id this package installs
// a subtype relation for: list(T) <= list(U) iff T <= U (covariant).
const ListFamilyID = "list"

// Register installs this package's host subtype relation on s. Call it
// once per TypecheckerState before elaborating terms that mention
// host_user_defined_type("list", ...).
func Register(s *core.TypecheckerState) {
	s.RegisterHostSrel(ListFamilyID, []core.Variance{core.VarianceCovariant}, core.SubtypeRelation{})
}

// ListOf builds the host_user_defined_type value for list(elem).
func ListOf(elem core.Flex) core.HostUserDefinedType {
	return core.HostUserDefinedType{ID: ListFamilyID, Args: []core.Flex{elem}}
}

// Intrinsic source names host_intrinsic literals in spec §8's fixtures
// may compile against; Invoke is what a host program calls once an
// elaborated host_intrinsic has reduced to a core.HostValue wrapping
// one of these names (core itself never calls back into host code —
// compiling a host_intrinsic only memoises the source string, spec
// §4.C — so invocation is the embedding host program's job).
const (
	SourceAdd = "num.add"
	SourceSub = "num.sub"
	SourceMul = "num.mul"
	SourceLt  = "num.lt"
)

// Invoke dispatches a compiled host intrinsic by source name against
// two already-evaluated host number arguments.
func Invoke(source string, a, b core.Flex) (core.Flex, error) {
	av, aok := asNumber(a)
	bv, bok := asNumber(b)
	if !aok || !bok {
		return nil, fmt.Errorf("numeric.Invoke(%s): non-numeric argument", source)
	}
	switch source {
	case SourceAdd:
		return core.HostValue{Data: av + bv}, nil
	case SourceSub:
		return core.HostValue{Data: av - bv}, nil
	case SourceMul:
		return core.HostValue{Data: av * bv}, nil
	case SourceLt:
		return core.HostValue{Data: av < bv}, nil
	default:
		return nil, fmt.Errorf("numeric.Invoke: unknown source %q", source)
	}
}

func asNumber(v core.Flex) (float64, bool) {
	hv, ok := v.(core.HostValue)
	if !ok {
		return 0, false
	}
	n, ok := hv.Data.(float64)
	return n, ok
}
