package core

// substituteInner is spec §4.D's substitute_inner(value, mapping, ctx_len,
// tc_ctx): the value-to-typed direction of NbE quoting, as opposed to
// quoteNode's node-to-typed direction (core/eval.go). It rebuilds a Typed
// term from an already-evaluated Flex value, remapping every free
// Placeholder occurrence through mapping the same way a TVar index is
// remapped during closure conversion (an index absent from mapping is an
// internal binder introduced below the value's original position and is
// left untouched), and it is the mechanism by which an escaping metavariable becomes a
// constrained_type: a MetaOccurrence whose BlockLevel is at or above
// block belongs to a scope that is closing, so its live edges are sliced
// (core/slice.go) into a TConstrainedType rather than quoted as a bare
// TMetaRef.
//
// Only the shapes that actually arise from evaluating a lambda body or a
// sliced constraint bound are rebuilt structurally (applications,
// projections, free/meta occurrences, and the covariant type formers);
// the remaining Strict/Stuck shapes carry no free Placeholder a caller of
// this function needs remapped in practice (host primitives, fully
// evaluated data, and the rarer host-elimination stuck forms) and are
// embedded verbatim via TLiteral, the same opaque-embedding escape hatch
// quoteNode itself falls back to for a resolved graph value.
func substituteInner(s *TypecheckerState, v Flex, mapping map[int]int, ctxLen int, block int) Typed {
	if v == nil {
		return nil
	}
	sub := func(x Flex) Typed { return substituteInner(s, x, mapping, ctxLen, block) }
	subAll := func(xs []Flex) []Typed {
		out := make([]Typed, len(xs))
		for i, x := range xs {
			out[i] = sub(x)
		}
		return out
	}
	switch n := v.(type) {
	case StuckFree:
		switch fv := n.Var.(type) {
		case *Placeholder:
			if idx, ok := mapping[fv.Index]; ok {
				return TVar{Index: idx}
			}
			return TVar{Index: fv.Index}
		case *UniqueToken:
			return TUnique{Token: fv}
		case *MetaOccurrence:
			if fv.Meta.BlockLevel >= block {
				return TConstrainedType{Constraints: s.sliceConstraintsFor(fv.Meta)}
			}
			return TMetaRef{Meta: fv.Meta}
		}
		return TLiteral{Value: v}
	case StuckApplication:
		return TApp{Fun: sub(n.Fun), Arg: sub(n.Arg)}
	case StuckTupleElemAccess:
		return TTupleElemAccess{Subject: sub(n.Subject), Index: n.Index}
	case Pi:
		// The result closure is quoted by applying it to a placeholder
		// for its own parameter, one past the closure's capture.
		binderIndex := n.Result.Capture.Len() + 1
		binder := StuckFree{Var: &Placeholder{Index: binderIndex, Debug: n.ParamDebug}}
		return TPi{
			Param:     n.ParamDebug,
			ParamType: sub(n.ParamType),
			Info:      n.Info,
			Result:    substituteInner(s, s.ApplyClosure(n.Result, binder), mapping, binderIndex, block),
		}
	case TupleType:
		return TTupleType{Desc: sub(n.Desc)}
	case EnumType:
		return TEnumType{Desc: sub(n.Desc)}
	case RecordType:
		return TRecordType{Desc: sub(n.Desc)}
	case UnionType:
		return TUnionType{Parts: subAll(n.Parts)}
	case IntersectionType:
		return TIntersectionType{Parts: subAll(n.Parts)}
	case Singleton:
		return TSingleton{Super: sub(n.Super), Value: sub(n.Value)}
	case HostFuncType:
		return THostFuncType{Parms: subAll(n.Parms), Ret: sub(n.Ret)}
	case ProgramType:
		return TProgramType{EffectDesc: sub(n.EffectDesc), Result: sub(n.Result)}
	default:
		return TLiteral{Value: v}
	}
}

// gatherUsages walks a typed term and counts, for each outer-context
// index in [1, ctxLen], how many times it is referenced by a TVar (spec
// §4.D "usage gathering" - the first half of closure conversion).
// Binders inside t (TLambda, TTupleElim, ...) introduce their own
// indices beyond ctxLen and never shadow an outer index, since indices
// are absolute positions into the context the term was elaborated
// against, not De Bruijn-relative.
func gatherUsages(t Typed, ctxLen int) Usages {
	u := NewUsages(ctxLen)
	var walk func(Typed)
	walkAll := func(ts []Typed) {
		for _, x := range ts {
			walk(x)
		}
	}
	walk = func(t Typed) {
		if t == nil {
			return
		}
		switch n := t.(type) {
		case TLiteral, TMetaRef, TUnique:
			return
		case TVar:
			if n.Index >= 1 && n.Index <= ctxLen {
				u.Inc(n.Index)
			}
		case TLambda:
			walk(n.Body)
		case TLambdaExplicitCapture:
			walk(n.Capture)
		case TPi:
			walk(n.ParamType)
			walk(n.Result)
		case TApp:
			walk(n.Fun)
			walk(n.Arg)
		case TTupleCons:
			walkAll(n.Elems)
		case TTupleElim:
			walk(n.Subject)
			walk(n.Body)
		case TTupleElemAccess:
			walk(n.Subject)
		case TTupleType:
			walk(n.Desc)
		case TRecordCons:
			for _, f := range n.Fields {
				walk(f.Expr)
			}
		case TRecordElim:
			walk(n.Subject)
			walk(n.Body)
		case TRecordType:
			walk(n.Desc)
		case TEnumCons:
			walk(n.Payload)
		case TEnumCase:
			walk(n.Subject)
			for _, a := range n.Arms {
				walk(a.Body)
			}
		case TEnumType:
			walk(n.Desc)
		case TEnumAbsurd:
			walk(n.Subject)
		case THostIntrinsic:
			return
		case THostFuncType:
			walkAll(n.Parms)
			walk(n.Ret)
		case THostWrap:
			walk(n.Type)
			walk(n.Expr)
		case THostUnwrap:
			walk(n.Expr)
		case THostIntFold:
			walk(n.Count)
			walk(n.Init)
			walk(n.Fun)
		case THostIf:
			walk(n.Subject)
			walk(n.Then)
			walk(n.Else)
		case TSingleton:
			walk(n.Super)
			walk(n.Value)
		case TUnionType:
			walkAll(n.Parts)
		case TIntersectionType:
			walkAll(n.Parts)
		case TConstrainedType:
			return
		case TLevelOp:
			walkAll(n.Args)
		case TLet:
			walk(n.Expr)
			walk(n.Body)
		case TProgramSeq:
			walk(n.Step)
			walk(n.Cont)
		case TProgramEnd:
			walk(n.Result)
		case TProgramType:
			walk(n.EffectDesc)
			walk(n.Result)
		}
	}
	walk(t)
	return u
}

