package core

import "fmt"

// Relation is a constraint relation: the label attached to an edge that
// tells the solver how to compare the two concrete values once both
// endpoints resolve to heads (spec §3.4, §4.F). Most relations are
// singletons (see SubtypeRelation); the combinators below build
// compound relations out of simpler ones, mirroring how the
// constraint graph itself is built structurally rather than by special
// casing every term former.
type Relation interface {
	// DebugName is used in traces and error messages.
	DebugName() string
	// Key distinguishes relations for edge deduplication: two edges
	// between the same nodes under relations with equal Key are the
	// same edge (spec §3.5).
	Key() string
	// Refl reports whether x Relation x holds unconditionally, letting
	// the solver skip a no-op self-constraint (spec §9).
	Refl() bool
	// Antisym reports whether the relation additionally discharges the
	// opposite direction once matched exactly (true for invariant
	// relations such as EqualRelation).
	Antisym() bool
	// Constrain compares two concrete (non-metavariable) heads already
	// resolved by the solver, queuing whatever sub-obligations the
	// comparison implies.
	Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error
}

// SubtypeRelation is the base relation: ordinary biunification subtyping,
// dispatched through checkConcrete (core/concrete.go).
type SubtypeRelation struct{}

func (SubtypeRelation) DebugName() string { return "<=" }
func (SubtypeRelation) Key() string       { return "<=" }
func (SubtypeRelation) Refl() bool        { return true }
func (SubtypeRelation) Antisym() bool     { return false }

func (r SubtypeRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	return checkConcrete(s, lctx, val, rctx, use, block, cause)
}

// EqualRelation demands the two heads are mutually subtypes under inner,
// used where the spec calls for invariance (e.g. a trait's srel slot).
type EqualRelation struct{ Inner Relation }

func (r EqualRelation) DebugName() string { return "=" + r.Inner.DebugName() }
func (r EqualRelation) Key() string       { return "=" + r.Inner.Key() }
func (r EqualRelation) Refl() bool        { return r.Inner.Refl() }
func (r EqualRelation) Antisym() bool     { return true }

func (r EqualRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	if err := r.Inner.Constrain(s, lctx, val, rctx, use, block, NestedCause{Label: "invariant forward", Inner: cause}); err != nil {
		return err
	}
	return r.Inner.Constrain(s, rctx, use, lctx, val, block, NestedCause{Label: "invariant backward", Inner: cause})
}

// Variance says whether a compound relation's slot flows forward
// (covariant) or flipped (contravariant) when flowed through.
type Variance int

const (
	VarianceCovariant Variance = iota
	VarianceContravariant
)

func (v Variance) String() string {
	if v == VarianceContravariant {
		return "contra"
	}
	return "co"
}

// FunctionRelation builds the relation used for pi/host-function-type
// comparison: given a pointwise relation R over results, the derived
// relation on functions introduces one fresh unique argument and
// recurses R between the two applications (spec §4.F, pi rule).
// Domain comparison is handled separately by checkConcrete because it
// is contravariant and pi's domain is itself a Flex, not a nested
// relation.
func FunctionRelation(result Relation) Relation {
	return functionRelation{result: result}
}

type functionRelation struct{ result Relation }

func (r functionRelation) DebugName() string { return "fn(" + r.result.DebugName() + ")" }
func (r functionRelation) Key() string       { return "fn(" + r.result.Key() + ")" }
func (r functionRelation) Refl() bool        { return r.result.Refl() }
func (r functionRelation) Antisym() bool     { return false }

func (r functionRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	arg := s.FreshUnique("fnrel")
	lRes := s.Apply(val, arg)
	rRes := s.Apply(use, arg)
	return s.Flow(lctx, lRes, rctx, rRes, r.result, block, NestedCause{Label: "function result", Inner: cause})
}

// tupleRelItem pairs one positional slot's relation with its variance.
type tupleRelItem struct {
	Rel      Relation
	Variance Variance
}

// IndepTupleRelation describes a position-by-position comparison of two
// descriptors with independently chosen variances. Nothing in this
// package installs it on an edge: TupleDescRelation and
// RecordDescRelation below compare descriptor positions themselves.
type IndepTupleRelation struct {
	Items []tupleRelItem
}

func NewIndepTupleRelation(items ...tupleRelItem) IndepTupleRelation {
	return IndepTupleRelation{Items: items}
}

func (r IndepTupleRelation) DebugName() string { return "indep-tuple" }
func (r IndepTupleRelation) Key() string {
	return fmt.Sprintf("indep-tuple/%d", len(r.Items))
}
func (r IndepTupleRelation) Refl() bool {
	for _, it := range r.Items {
		if !it.Rel.Refl() {
			return false
		}
	}
	return true
}
func (r IndepTupleRelation) Antisym() bool { return false }

func (r IndepTupleRelation) Constrain(*TypecheckerState, TypeContext, Flex, TypeContext, Flex, int, Cause) error {
	// This generic form is never installed on an edge;
	// TupleDescRelation / RecordDescRelation below project and compare
	// each positional closure without going through it.
	panic("core: IndepTupleRelation.Constrain called directly; use TupleDescRelation/RecordDescRelation")
}

// TupleDescRelation compares two tuple_desc values position by
// position, each slot covariant (spec §4.F: "tuple_desc_type is
// covariant in target" extends pointwise to the descriptor's fields
// once uncurried via their closures).
type TupleDescRelation struct{}

func (TupleDescRelation) DebugName() string { return "tuple-desc" }
func (TupleDescRelation) Key() string       { return "tuple-desc" }
func (TupleDescRelation) Refl() bool        { return true }
func (TupleDescRelation) Antisym() bool     { return false }

func (r TupleDescRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	lv, ok1 := val.(TupleDesc)
	rv, ok2 := use.(TupleDesc)
	if !ok1 || !ok2 {
		return &ConstraintError{Desc: "tuple descriptor arity mismatch", Cause: cause}
	}
	if len(lv.Positions) != len(rv.Positions) {
		return &ConstraintError{Desc: fmt.Sprintf("tuple descriptor arity mismatch: %d vs %d", len(lv.Positions), len(rv.Positions)), Cause: cause}
	}
	witness := make([]Flex, 0, len(lv.Positions))
	for i := range lv.Positions {
		prior := TupleValue{Elems: append([]Flex{}, witness...)}
		lt := s.ApplyClosure(lv.Positions[i], prior)
		rt := s.ApplyClosure(rv.Positions[i], prior)
		if err := s.Flow(lctx, lt, rctx, rt, SubtypeRelation{}, block, NestedCause{Label: fmt.Sprintf("tuple position %d", i), Inner: cause}); err != nil {
			return err
		}
		witness = append(witness, s.FreshUnique(fmt.Sprintf("descpos%d", i)))
	}
	return nil
}

// EnumDescRelation compares two enum_desc values: every variant present
// in use must be present in val with a covariantly compatible payload
// type (spec §4.F enum_desc subsumes a tuple_desc iff the target
// variant's tuple matches the "tag" arm).
type EnumDescRelation struct{}

func (EnumDescRelation) DebugName() string { return "enum-desc" }
func (EnumDescRelation) Key() string       { return "enum-desc" }
func (EnumDescRelation) Refl() bool        { return true }
func (EnumDescRelation) Antisym() bool     { return false }

func (r EnumDescRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	lv, ok1 := val.(EnumDesc)
	rv, ok2 := use.(EnumDesc)
	if !ok1 || !ok2 {
		return &ConstraintError{Desc: "enum descriptor shape mismatch", Cause: cause}
	}
	for _, name := range rv.Order {
		lt, ok := lv.Variants[name]
		if !ok {
			return &ConstraintError{Desc: "enum descriptor missing variant " + name, Cause: cause}
		}
		if err := s.Flow(lctx, lt, rctx, rv.Variants[name], SubtypeRelation{}, block, NestedCause{Label: "enum variant " + name, Inner: cause}); err != nil {
			return err
		}
	}
	return nil
}

// RecordDescRelation compares two record_desc values: val must carry at
// least every field use requires, each covariantly compatible (width
// subtyping, spec §4.F record rule).
type RecordDescRelation struct{}

func (RecordDescRelation) DebugName() string { return "record-desc" }
func (RecordDescRelation) Key() string       { return "record-desc" }
func (RecordDescRelation) Refl() bool        { return true }
func (RecordDescRelation) Antisym() bool     { return false }

func (r RecordDescRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	lv, ok1 := val.(RecordDesc)
	rv, ok2 := use.(RecordDesc)
	if !ok1 || !ok2 {
		return &ConstraintError{Desc: "record descriptor shape mismatch", Cause: cause}
	}
	witness := RecordValue{Fields: map[string]Flex{}, Order: rv.Order}
	for _, name := range rv.Order {
		witness.Fields[name] = s.FreshUnique("descfield." + name)
	}
	for _, name := range rv.Order {
		lc, ok := lv.Fields[name]
		if !ok {
			return &ConstraintError{Desc: "record descriptor missing field " + name, Cause: cause}
		}
		lt := s.ApplyClosure(lc, witness)
		rt := s.ApplyClosure(rv.Fields[name], witness)
		if err := s.Flow(lctx, lt, rctx, rt, SubtypeRelation{}, block, NestedCause{Label: "record field " + name, Inner: cause}); err != nil {
			return err
		}
	}
	return nil
}

// EffectRowRelation compares two effect rows: every effect use demands
// must be present (by label) in val with a covariantly compatible
// payload, width-subtyped exactly like records (spec §4.A program_type,
// §8 effect program scenario).
type EffectRowRelation struct{}

func (EffectRowRelation) DebugName() string { return "effect-row" }
func (EffectRowRelation) Key() string       { return "effect-row" }
func (EffectRowRelation) Refl() bool        { return true }
func (EffectRowRelation) Antisym() bool     { return false }

func (r EffectRowRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	lv, ok1 := val.(EffectRow)
	rv, ok2 := use.(EffectRow)
	if !ok1 || !ok2 {
		return &ConstraintError{Desc: "effect row shape mismatch", Cause: cause}
	}
	for id, wantType := range rv.Components {
		haveType, ok := lv.Components[id]
		if !ok {
			return &ConstraintError{Desc: "effect row missing effect " + id, Cause: cause}
		}
		if err := s.Flow(lctx, haveType, rctx, wantType, SubtypeRelation{}, block, NestedCause{Label: "effect " + id, Inner: cause}); err != nil {
			return err
		}
	}
	return nil
}

// UniverseOmegaRelation compares star(_, d1) against star(_, d2) by the
// depth lattice, treating OmegaLevel as absorbing (spec §4.F: "star
// depth omega dominates any finite depth").
type UniverseOmegaRelation struct{}

func (UniverseOmegaRelation) DebugName() string { return "universe" }
func (UniverseOmegaRelation) Key() string       { return "universe" }
func (UniverseOmegaRelation) Refl() bool        { return true }
func (UniverseOmegaRelation) Antisym() bool     { return false }

func (r UniverseOmegaRelation) Constrain(s *TypecheckerState, lctx TypeContext, val Flex, rctx TypeContext, use Flex, block int, cause Cause) error {
	lv, ok1 := val.(Star)
	rv, ok2 := use.(Star)
	if !ok1 || !ok2 {
		return &ConstraintError{Desc: "universe comparison on non-star values", Cause: cause}
	}
	// star(la,da) <= star(lb,db) iff la<=lb and da>=db, with db==OmegaLevel
	// absorbing any finite da (spec §4.F, §9).
	if rv.Depth != OmegaLevel && lv.Depth < rv.Depth {
		return &ConstraintError{Desc: fmt.Sprintf("star depth %d does not cover required depth %d", lv.Depth, rv.Depth), Cause: cause}
	}
	if lv.Level > rv.Level {
		return &ConstraintError{Desc: fmt.Sprintf("star level %d does not fit within level %d", lv.Level, rv.Level), Cause: cause}
	}
	return nil
}
