package numeric_test

import (
	"testing"

	"github.com/eaburns/dtlang/core"
	"github.com/eaburns/dtlang/host/numeric"
)

func TestInvokeArithmetic(t *testing.T) {
	cases := []struct {
		source string
		a, b   float64
		want   interface{}
	}{
		{numeric.SourceAdd, 2, 3, 5.0},
		{numeric.SourceSub, 5, 3, 2.0},
		{numeric.SourceMul, 2, 3, 6.0},
		{numeric.SourceLt, 2, 3, true},
	}
	for _, c := range cases {
		got, err := numeric.Invoke(c.source, core.HostValue{Data: c.a}, core.HostValue{Data: c.b})
		if err != nil {
			t.Fatalf("Invoke(%s): %s", c.source, err)
		}
		hv, ok := got.(core.HostValue)
		if !ok {
			t.Fatalf("Invoke(%s) = %T, want core.HostValue", c.source, got)
		}
		if hv.Data != c.want {
			t.Fatalf("Invoke(%s) = %v, want %v", c.source, hv.Data, c.want)
		}
	}
}

func TestInvokeUnknownSource(t *testing.T) {
	if _, err := numeric.Invoke("nope", core.HostValue{Data: 1.0}, core.HostValue{Data: 2.0}); err == nil {
		t.Fatalf("Invoke(nope) succeeded, want an error")
	}
}

func TestInvokeNonNumericArgument(t *testing.T) {
	if _, err := numeric.Invoke(numeric.SourceAdd, core.HostValue{Data: "x"}, core.HostValue{Data: 2.0}); err == nil {
		t.Fatalf("Invoke(add) with a non-numeric argument succeeded, want an error")
	}
}

// TestRegisterListCovariance exercises register_host_srel end to end:
// list(host_type_type) should flow into list(star 0) under the
// registered covariant relation, since host_type_type <= star 0, via the
// same Flow path the elaborator uses for host_user_defined_type
// comparisons.
func TestRegisterListCovariance(t *testing.T) {
	s := core.NewTypecheckerState()
	numeric.Register(s)

	left := numeric.ListOf(core.HostTypeType{})
	right := numeric.ListOf(core.Star{Depth: 0})
	if err := s.Flow(core.NewTypeContext(), left, core.NewTypeContext(), right, core.SubtypeRelation{}, 0, core.PrimitiveCause{Message: "test"}); err != nil {
		t.Fatalf("Flow(list(host_type_type), list(star 0)): %s", err)
	}
}
