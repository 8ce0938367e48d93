// Package fixture builds core.Inferrable/core.Checkable terms as Go
// values, standing in for "the core receives an already-built
// inferrable term from an external parser" (spec.md §1). It plays the
// same role in this repo that checker/func_test.go's checkTestMod /
// findIDs helpers play in the teacher: a small, hand-rolled way to get
// a term tree without writing (or parsing) surface syntax.
package fixture

import "github.com/eaburns/dtlang/core"

// Helpers below wrap core's New* constructors with the defaults a
// fixture term usually wants: a plain name-only SpannedName (no real
// source span) and explicit, non-effectful parameters unless told
// otherwise.

func name(n string) core.SpannedName { return core.Dbg(n) }

// Var references the binder n-th-from-the-root (1-based absolute
// index, matching core.Var/core.TypeContext addressing).
func Var(debugName string, index int) core.Var {
	return core.NewVar(name(debugName), index)
}

// Lam builds an explicit, pure AnnLambda.
func Lam(paramName string, paramType core.Checkable, body core.Inferrable) core.AnnLambda {
	return core.NewAnnLambda(name(paramName), name(paramName), paramType, core.ParamInfo{}, body)
}

// ImplicitLam builds an implicit, pure AnnLambda (spec §4.E implicit
// argument insertion fires against a Pi built with Info.Implicit).
func ImplicitLam(paramName string, paramType core.Checkable, body core.Inferrable) core.AnnLambda {
	return core.NewAnnLambda(name(paramName), name(paramName), paramType, core.ParamInfo{Implicit: true}, body)
}

// Pi builds an explicit dependent function type former.
func Pi(paramName string, paramType core.Checkable, result core.Checkable) core.PiForm {
	return core.NewPiForm(name(paramName), name(paramName), paramType, core.ParamInfo{}, result)
}

// ImplicitPi builds an implicit dependent function type former.
func ImplicitPi(paramName string, paramType core.Checkable, result core.Checkable) core.PiForm {
	return core.NewPiForm(name(paramName), name(paramName), paramType, core.ParamInfo{Implicit: true}, result)
}

// App builds an application whose argument is itself inferrable
// (wrapped in CheckInferrable, the common case).
func App(fn core.Inferrable, arg core.Inferrable) core.App {
	return core.NewApp(name("app"), fn, Check(arg))
}

// Check wraps an Inferrable as the common CheckInferrable Checkable.
func Check(term core.Inferrable) core.CheckInferrable {
	return core.NewCheckInferrable(name("check"), term)
}

// Literal wraps an already-evaluated value directly as an Inferrable,
// via AlreadyTyped over a TLiteral — used for host constants and types
// a fixture wants to inject without building an elaboration path for
// them (e.g. host_number_type, a star literal, a host number).
func Literal(debugName string, value core.Flex, typ core.Flex) core.AlreadyTyped {
	return core.NewAlreadyTyped(name(debugName), core.TLiteral{Value: value}, typ)
}

// StarLiteral is `star(level, depth)` as a fixture Inferrable.
func StarLiteral(level, depth int) core.AlreadyTyped {
	return Literal("star", core.Star{Level: level, Depth: depth}, core.Star{Depth: core.OmegaLevel})
}

// HostNumberTypeLiteral is `host_number_type` as a fixture Inferrable.
func HostNumberTypeLiteral() core.AlreadyTyped {
	return Literal("host_number_type", core.HostNumberType{}, core.Star{Depth: 0})
}

// HostNumber is a host number literal as a fixture Inferrable.
func HostNumber(v float64) core.AlreadyTyped {
	return Literal("host_number", core.HostValue{Data: v}, core.HostNumberType{})
}

// IdentityPolymorphism builds spec.md §8's "Identity polymorphism"
// scenario: `(λ(A : star 0 0). λ(x : A). x) host_number_type 3.0`.
// Infer-ing the result should synthesise host_number_type and, once
// evaluated, reduce to the host value 3.0.
func IdentityPolymorphism() core.Inferrable {
	identity := Lam("A", Check(StarLiteral(0, 0)), Lam("x", Check(Var("A", 1)), Var("x", 2)))
	appliedToType := App(identity, HostNumberTypeLiteral())
	return App(appliedToType, HostNumber(3.0))
}

// ImplicitInsertionContext returns a TypeContext with `f : forall{A :
// star 0 0}. A -> A` already bound at index 1, and the inferrable call
// `f 3.0` that should trigger implicit-argument insertion for A (spec
// §8 "Implicit insertion").
func ImplicitInsertionContext(s *core.TypecheckerState) (core.TypeContext, core.Inferrable) {
	fType := core.Pi{
		ParamDebug: name("A"),
		ParamType:  core.Star{Depth: 0},
		Info:       core.ParamInfo{Implicit: true},
		Result: &core.Closure{
			ParamDebug: name("A"),
			Body: core.TPi{
				Param:     name("x"),
				ParamType: core.TVar{Index: 1},
				Result:    core.TVar{Index: 1},
			},
		},
	}
	ctx := core.NewTypeContext().Append(s.FreshUnique("f"), fType, "f", name("f"))
	call := App(Var("f", 1), HostNumber(3.0))
	return ctx, call
}
