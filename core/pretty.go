package core

import (
	"fmt"
	"strings"
)

// PrettyPrint renders a Flex value for diagnostics and traces: the
// constraint-error cause tree (core/errors.go) and Flow's trace line
// (describeFlex, core/solver.go) both bottom out here rather than printing Go's
// default %v, which is unreadable once a value nests a few closures
// deep (spec §9 "diagnostics"). Mirrors the teacher's buildString
// pattern (checker/string.go): every case writes into a shared
// *strings.Builder instead of allocating and concatenating strings.
func PrettyPrint(v Flex) string {
	return buildFlexString(v, new(strings.Builder)).String()
}

// PrettyPrintTyped renders an elaborated term for diagnostics.
func PrettyPrintTyped(t Typed) string {
	return buildTypedString(t, new(strings.Builder)).String()
}

func buildFlexString(v Flex, w *strings.Builder) *strings.Builder {
	if v == nil {
		w.WriteString("<nil>")
		return w
	}
	switch t := v.(type) {
	case StuckFree:
		w.WriteString(t.Var.String())
	case StuckApplication:
		buildFlexString(t.Fun, w)
		w.WriteRune('(')
		buildFlexString(t.Arg, w)
		w.WriteRune(')')
	case StuckTupleElemAccess:
		buildFlexString(t.Subject, w)
		fmt.Fprintf(w, ".%d", t.Index)
	case StuckRecordFieldAccess:
		buildFlexString(t.Subject, w)
		w.WriteRune('.')
		w.WriteString(t.Field)
	case StuckHostIf:
		w.WriteString("host_if(")
		buildFlexString(t.Subject, w)
		w.WriteString(", ")
		buildFlexString(t.Then, w)
		w.WriteString(", ")
		buildFlexString(t.Else, w)
		w.WriteRune(')')
	case StuckObjectElim:
		w.WriteString("elim(")
		buildFlexString(t.Subject, w)
		w.WriteString(", ...)")
	case StuckEnumElim:
		w.WriteString("case(")
		buildFlexString(t.Subject, w)
		w.WriteString(", ...)")
	case StuckHostIntrinsic:
		w.WriteString("host(")
		buildFlexString(t.Source, w)
		w.WriteRune(')')

	case Pi:
		w.WriteRune('(')
		w.WriteString(t.ParamDebug.Name)
		w.WriteString(" : ")
		buildFlexString(t.ParamType, w)
		w.WriteString(") -> ")
		if t.Result != nil {
			buildTypedString(t.Result.Body, w)
		}
	case HostFuncType:
		w.WriteRune('(')
		for i, p := range t.Parms {
			if i > 0 {
				w.WriteString(", ")
			}
			buildFlexString(p, w)
		}
		w.WriteString(") host-> ")
		buildFlexString(t.Ret, w)
	case TupleValue:
		w.WriteRune('(')
		for i, e := range t.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			buildFlexString(e, w)
		}
		w.WriteRune(')')
	case HostTupleValue:
		w.WriteString("host(")
		for i, e := range t.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			buildFlexString(e, w)
		}
		w.WriteRune(')')
	case RecordValue:
		w.WriteRune('{')
		for i, name := range t.Order {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(name)
			w.WriteString(" = ")
			buildFlexString(t.Fields[name], w)
		}
		w.WriteRune('}')
	case EnumValue:
		w.WriteString(t.Variant)
		if t.Payload != nil {
			w.WriteRune('(')
			buildFlexString(t.Payload, w)
			w.WriteRune(')')
		}
	case TupleType:
		w.WriteString("tuple_type(")
		buildFlexString(t.Desc, w)
		w.WriteRune(')')
	case TupleDesc:
		w.WriteString("tuple_desc[")
		fmt.Fprintf(w, "%d positions]", len(t.Positions))
	case EnumType:
		w.WriteString("enum_type(")
		buildFlexString(t.Desc, w)
		w.WriteRune(')')
	case EnumDesc:
		w.WriteRune('[')
		for i, name := range t.Order {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(name)
		}
		w.WriteRune(']')
	case RecordType:
		w.WriteString("record_type(")
		buildFlexString(t.Desc, w)
		w.WriteRune(')')
	case RecordDesc:
		w.WriteRune('{')
		for i, name := range t.Order {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(name)
		}
		w.WriteRune('}')
	case HostTypeType:
		w.WriteString("host_type")
	case HostNumberType:
		w.WriteString("host_number")
	case HostStringType:
		w.WriteString("host_string")
	case HostBoolType:
		w.WriteString("host_bool")
	case HostUserDefinedType:
		w.WriteString(t.ID)
		if len(t.Args) > 0 {
			w.WriteRune('(')
			for i, a := range t.Args {
				if i > 0 {
					w.WriteString(", ")
				}
				buildFlexString(a, w)
			}
			w.WriteRune(')')
		}
	case HostWrappedType:
		w.WriteString("wrapped(")
		buildFlexString(t.Wrapped, w)
		w.WriteRune(')')
	case UnionType:
		w.WriteRune('[')
		for i, p := range t.Parts {
			if i > 0 {
				w.WriteString(" | ")
			}
			buildFlexString(p, w)
		}
		w.WriteRune(']')
	case IntersectionType:
		w.WriteRune('[')
		for i, p := range t.Parts {
			if i > 0 {
				w.WriteString(" & ")
			}
			buildFlexString(p, w)
		}
		w.WriteRune(']')
	case Singleton:
		w.WriteString("singleton(")
		buildFlexString(t.Value, w)
		w.WriteString(" : ")
		buildFlexString(t.Super, w)
		w.WriteRune(')')
	case Star:
		fmt.Fprintf(w, "star(%d, %d)", t.Level, t.Depth)
	case Prop:
		w.WriteString("prop")
	case Level:
		fmt.Fprintf(w, "level(%d)", t.N)
	case ProgramType:
		w.WriteString("program(")
		buildFlexString(t.EffectDesc, w)
		w.WriteString(", ")
		buildFlexString(t.Result, w)
		w.WriteRune(')')
	case EffectRow:
		w.WriteRune('<')
		first := true
		for id := range t.Components {
			if !first {
				w.WriteString(", ")
			}
			first = false
			w.WriteString(id)
		}
		w.WriteRune('>')
	case HostValue:
		fmt.Fprintf(w, "%v", t.Data)
	case OperativeValue:
		w.WriteString(t.Name)
	case OperativeType:
		w.WriteString(t.Name)
	default:
		fmt.Fprintf(w, "<%T>", v)
	}
	return w
}

func buildTypedString(t Typed, w *strings.Builder) *strings.Builder {
	if t == nil {
		w.WriteString("<nil>")
		return w
	}
	switch n := t.(type) {
	case TLiteral:
		buildFlexString(n.Value, w)
	case TMetaRef:
		w.WriteString(n.Meta.String())
	case TUnique:
		w.WriteString(n.Token.String())
	case TVar:
		fmt.Fprintf(w, "#%d", n.Index)
	case TLambda:
		w.WriteString("\\")
		w.WriteString(n.Param.Name)
		w.WriteString(" -> ")
		buildTypedString(n.Body, w)
	case TLambdaExplicitCapture:
		w.WriteString("\\")
		w.WriteString(n.Param.Name)
		w.WriteString(" -> ")
		buildTypedString(n.Body, w)
	case TApp:
		buildTypedString(n.Fun, w)
		w.WriteRune('(')
		buildTypedString(n.Arg, w)
		w.WriteRune(')')
	case TTupleCons:
		w.WriteRune('(')
		for i, e := range n.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			buildTypedString(e, w)
		}
		w.WriteRune(')')
	case TTupleElemAccess:
		buildTypedString(n.Subject, w)
		fmt.Fprintf(w, ".%d", n.Index)
	case TRecordCons:
		w.WriteRune('{')
		for i, f := range n.Fields {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(f.Name.Name)
			w.WriteString(" = ")
			buildTypedString(f.Expr, w)
		}
		w.WriteRune('}')
	case TRecordElim:
		w.WriteString("let {")
		for i, name := range n.Fields {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(name.Name)
		}
		w.WriteString("} = ")
		buildTypedString(n.Subject, w)
		w.WriteString(" in ...")
	case TEnumCons:
		w.WriteString(n.Variant)
		w.WriteRune('(')
		buildTypedString(n.Payload, w)
		w.WriteRune(')')
	case TEnumCase:
		w.WriteString("case ")
		buildTypedString(n.Subject, w)
		w.WriteString(" of ...")
	case TEnumAbsurd:
		w.WriteString("absurd(")
		buildTypedString(n.Subject, w)
		w.WriteRune(')')
	case THostIntrinsic:
		w.WriteString("host(")
		w.WriteString(n.Source)
		w.WriteRune(')')
	case THostWrap:
		w.WriteString("wrap(")
		buildTypedString(n.Expr, w)
		w.WriteRune(')')
	case THostUnwrap:
		w.WriteString("unwrap(")
		buildTypedString(n.Expr, w)
		w.WriteRune(')')
	case THostIntFold:
		w.WriteString("host_int_fold(...)")
	case THostIf:
		w.WriteString("host_if(")
		buildTypedString(n.Subject, w)
		w.WriteString(", ")
		buildTypedString(n.Then, w)
		w.WriteString(", ")
		buildTypedString(n.Else, w)
		w.WriteRune(')')
	case TLet:
		w.WriteString("let ")
		w.WriteString(n.Name.Name)
		w.WriteString(" = ")
		buildTypedString(n.Expr, w)
		w.WriteString(" in ")
		buildTypedString(n.Body, w)
	case TProgramSeq:
		w.WriteString(n.Name.Name)
		w.WriteString(" <- ")
		buildTypedString(n.Step, w)
		w.WriteString("; ")
		buildTypedString(n.Cont, w)
	case TProgramEnd:
		w.WriteString("return ")
		buildTypedString(n.Result, w)
	case TPi:
		w.WriteRune('(')
		w.WriteString(n.Param.Name)
		w.WriteString(" : ")
		buildTypedString(n.ParamType, w)
		w.WriteString(") -> ")
		buildTypedString(n.Result, w)
	default:
		fmt.Fprintf(w, "<%T>", t)
	}
	return w
}
