// Package effectdemo is a concrete host integration exercising
// register_effect_handler (spec §6) and the effect-program evaluation
// path end to end: spec.md §8's "Effect program" scenario evaluates
// `program_sequence(program_invoke(lua_prog, host_tuple(f, args)), k)`
// and expects the registered handler to be called exactly once with
// `(f, args)` packaged as a host tuple, threading its result into k.
package effectdemo

import (
	"fmt"

	"github.com/eaburns/dtlang/core"
)

// InvokeEffectID is the effect id spec.md's own scenario names
// (program_invoke(lua_prog, ...)): "calling an external host function
// with a host tuple argument" (spec §8).
const InvokeEffectID = "lua_prog"

// HostFunc is what the payload's first element must unwrap to: an
// opaque Go callable a host_value can carry across the FFI boundary.
type HostFunc func(args core.Flex) (core.Flex, error)

// RegisterInvokeHandler installs the InvokeEffectID handler on s. The
// step's payload must be a core.HostTupleValue{Elems: [f, args]} where
// f is a core.HostValue wrapping a HostFunc; the handler calls f(args)
// and returns its result as the resume value (spec §4.C "program
// evaluation", §8 "Effect program").
func RegisterInvokeHandler(s *core.TypecheckerState) {
	s.RegisterEffectHandler(InvokeEffectID, func(payload core.Flex) (core.Flex, error) {
		tuple, ok := payload.(core.HostTupleValue)
		if !ok || len(tuple.Elems) != 2 {
			return nil, fmt.Errorf("effectdemo: %s payload is not a (f, args) host tuple", InvokeEffectID)
		}
		fv, ok := tuple.Elems[0].(core.HostValue)
		if !ok {
			return nil, fmt.Errorf("effectdemo: %s payload's first element is not a host function", InvokeEffectID)
		}
		f, ok := fv.Data.(HostFunc)
		if !ok {
			return nil, fmt.Errorf("effectdemo: %s payload's host value does not wrap a HostFunc", InvokeEffectID)
		}
		return f(tuple.Elems[1])
	})
}

// InvokeStep builds the EnumValue a step must reduce to for
// stepProgram to dispatch to this handler (spec §4.C "step must reduce
// to an EnumValue tagging the effect id performed").
func InvokeStep(f HostFunc, args core.Flex) core.EnumValue {
	payload := core.HostTupleValue{Elems: []core.Flex{core.HostValue{Data: f}, args}}
	return core.EnumValue{Variant: InvokeEffectID, Payload: payload}
}
