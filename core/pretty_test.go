package core_test

import (
	"strings"
	"testing"

	"github.com/eaburns/dtlang/core"
)

func TestPrettyPrintConcreteValues(t *testing.T) {
	cases := []struct {
		name string
		v    core.Flex
		want string
	}{
		{"number", core.HostNumberType{}, "host_number"},
		{"string", core.HostStringType{}, "host_string"},
		{"bool", core.HostBoolType{}, "host_bool"},
		{"tuple", core.TupleValue{Elems: []core.Flex{core.HostValue{Data: 1.0}, core.HostValue{Data: 2.0}}}, ""},
		{"enum", core.EnumValue{Variant: "some", Payload: core.HostValue{Data: 1.0}}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := core.PrettyPrint(c.v)
			if got == "" {
				t.Fatalf("PrettyPrint(%#v) returned empty string", c.v)
			}
			if c.want != "" && got != c.want {
				t.Fatalf("PrettyPrint = %q, want %q", got, c.want)
			}
		})
	}
}

func TestPrettyPrintEnumMentionsVariant(t *testing.T) {
	got := core.PrettyPrint(core.EnumValue{Variant: "ok", Payload: core.HostValue{Data: 1.0}})
	if !strings.Contains(got, "ok") {
		t.Fatalf("PrettyPrint = %q, want it to mention the variant %q", got, "ok")
	}
}

func TestPrettyPrintTypedLiteral(t *testing.T) {
	got := core.PrettyPrintTyped(core.TLiteral{Value: core.HostNumberType{}})
	if !strings.Contains(got, "host_number") {
		t.Fatalf("PrettyPrintTyped = %q, want it to mention host_number", got)
	}
}
