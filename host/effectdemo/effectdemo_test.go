package effectdemo_test

import (
	"fmt"
	"testing"

	"github.com/eaburns/dtlang/core"
	"github.com/eaburns/dtlang/host/effectdemo"
)

// TestInvokeStepEndToEnd is spec.md §8's "Effect program" scenario:
// program_sequence(program_invoke(lua_prog, host_tuple(f, args)), k)
// must call the registered handler exactly once with (f, args) and
// thread its result into the continuation k.
func TestInvokeStepEndToEnd(t *testing.T) {
	s := core.NewTypecheckerState()
	effectdemo.RegisterInvokeHandler(s)

	calls := 0
	f := effectdemo.HostFunc(func(args core.Flex) (core.Flex, error) {
		calls++
		hv, ok := args.(core.HostValue)
		if !ok {
			return nil, fmt.Errorf("args = %T, want core.HostValue", args)
		}
		return core.HostValue{Data: hv.Data.(float64) + 1}, nil
	})

	step := core.TLiteral{Value: effectdemo.InvokeStep(f, core.HostValue{Data: 41.0})}
	cont := core.TVar{Index: 1} // the resume value bound by program_sequence as "k"
	prog := core.TProgramSeq{Name: core.Dbg("k"), Step: step, Cont: cont}

	val := s.Eval(prog, core.RuntimeContext{})
	hv, ok := val.(core.HostValue)
	if !ok {
		t.Fatalf("result = %s, want a host value", core.PrettyPrint(val))
	}
	if hv.Data != 42.0 {
		t.Fatalf("result = %v, want 42.0", hv.Data)
	}
	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
}

func TestInvokeStepRejectsWrongPayloadShape(t *testing.T) {
	s := core.NewTypecheckerState()
	effectdemo.RegisterInvokeHandler(s)

	step := core.TLiteral{Value: core.EnumValue{Variant: effectdemo.InvokeEffectID, Payload: core.HostValue{Data: 1.0}}}
	cont := core.TVar{Index: 1}
	prog := core.TProgramSeq{Name: core.Dbg("k"), Step: step, Cont: cont}

	val := s.Eval(prog, core.RuntimeContext{})
	if _, ok := val.(core.StuckFree); !ok {
		t.Fatalf("result = %s, want a stuck value for a malformed effect payload", core.PrettyPrint(val))
	}
}
