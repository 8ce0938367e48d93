package core

import "fmt"

// Eval reduces a typed term to a value under ctx (spec §4.C). It never
// fails: ill-typed input is a bug in the elaborator that produced term,
// not a runtime condition Eval recovers from. The one place genuine
// compute happens that a host might reject - compiling a host intrinsic
// source string - is handled by returning a stuck placeholder when the
// source itself has not reduced to a literal yet, and by memoising the
// compiled result once it has (spec §4.C).
//
// Results are memoised by the structural identity of (term, ctx), the
// same way Infer is memoised by (term, TypeContext): spec §9 calls this
// out as correctness-critical for tractability, since the solver
// re-evaluates shared subterms (a sliced constraint's Other/Arg, a
// re-checked speculative branch) far more than it evaluates anything
// fresh.
//
// constrained_type is exempted: materialising one allocates a fresh
// outer metavariable and registers its sliced constraints as a side
// effect (core/slice.go), so two evaluations of the structurally
// identical term are two distinct scope-exit events, not the same
// answer recomputed - memoising it would silently collapse them into
// one metavariable.
func (s *TypecheckerState) Eval(term Typed, ctx RuntimeContext) Flex {
	if _, ok := term.(TConstrainedType); ok {
		return s.evalUncached(term, ctx)
	}
	if cached, ok := s.lookupEvalMemo(term, ctx); ok {
		return cached
	}
	done := s.trace.Enter("eval %s", term.Debug().Name)
	defer done()

	v := s.evalUncached(term, ctx)
	s.storeEvalMemo(term, ctx, v)
	return v
}

func (s *TypecheckerState) evalUncached(term Typed, ctx RuntimeContext) Flex {
	switch t := term.(type) {
	case TLiteral:
		return t.Value
	case TMetaRef:
		return t.Meta.AsOccurrence()
	case TUnique:
		return StuckFree{Var: t.Token}
	case TVar:
		v, _ := ctx.Get(t.Index)
		return v
	case TLambda:
		// Only emitted transiently by the elaborator before the
		// substitution pass rewrites it; evaluating one directly would
		// capture the whole ambient context, which core/closure.go exists
		// precisely to avoid (spec §3.2 Testable Property 3). Treat it as
		// already having captured everything visible, for terms that slip
		// through (e.g. fixtures built by hand rather than via Check).
		return Closure{ParamDebug: t.Param, CaptureDebug: debugNames(ctx), Capture: ctx, Body: t.Body}
	case TLambdaExplicitCapture:
		capVal := s.Eval(t.Capture, ctx)
		capCtx := RuntimeContext{}
		elems := tupleElems(capVal)
		for i, v := range elems {
			name := SpannedName{Name: "_"}
			if i < len(t.CaptureDebug) {
				name = t.CaptureDebug[i]
			}
			capCtx = capCtx.Append(v, name.Name, name)
		}
		return Closure{ParamDebug: t.Param, CaptureDebug: t.CaptureDebug, Capture: capCtx, Body: t.Body}
	case TPi:
		paramType := s.Eval(t.ParamType, ctx)
		return Pi{ParamDebug: t.Param, ParamType: paramType, Info: t.Info, Result: &Closure{ParamDebug: t.Param, Capture: ctx, Body: t.Result}}
	case TApp:
		fn := s.Eval(t.Fun, ctx)
		arg := s.Eval(t.Arg, ctx)
		return s.Apply(fn, arg)
	case TTupleCons:
		elems := make([]Flex, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = s.Eval(e, ctx)
		}
		return TupleValue{Elems: elems}
	case TTupleElim:
		subj := s.Eval(t.Subject, ctx)
		return s.evalObjectElim(subj, t.Names, t.Body, ctx)
	case TTupleElemAccess:
		subj := s.Eval(t.Subject, ctx)
		return s.indexTuple(subj, t.Index)
	case TTupleType:
		return TupleType{Desc: s.Eval(t.Desc, ctx)}
	case TRecordCons:
		fields := make(map[string]Flex, len(t.Fields))
		order := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[f.Name.Name] = s.Eval(f.Expr, ctx)
			order[i] = f.Name.Name
		}
		return RecordValue{Fields: fields, Order: order}
	case TRecordElim:
		subj := s.Eval(t.Subject, ctx)
		return s.evalRecordElim(subj, t.Fields, t.Body, ctx)
	case TRecordType:
		return RecordType{Desc: s.Eval(t.Desc, ctx)}
	case TEnumCons:
		return EnumValue{Variant: t.Variant, Payload: s.Eval(t.Payload, ctx)}
	case TEnumCase:
		subj := s.Eval(t.Subject, ctx)
		return s.evalEnumCase(subj, t.Arms, ctx)
	case TEnumType:
		return EnumType{Desc: s.Eval(t.Desc, ctx)}
	case TEnumAbsurd:
		subj := s.Eval(t.Subject, ctx)
		return StuckEnumElim{Subject: subj, Arms: nil, Capture: ctx}
	case THostIntrinsic:
		return s.evalHostIntrinsic(HostValue{Data: t.Source}, s.Eval(t.Type, ctx))
	case THostFuncType:
		parms := make([]Flex, len(t.Parms))
		for i, p := range t.Parms {
			parms[i] = s.Eval(p, ctx)
		}
		return HostFuncType{Parms: parms, Ret: s.Eval(t.Ret, ctx)}
	case THostWrap:
		return s.Eval(t.Expr, ctx)
	case THostUnwrap:
		return s.Eval(t.Expr, ctx)
	case THostIntFold:
		count := s.Eval(t.Count, ctx)
		acc := s.Eval(t.Init, ctx)
		fn := s.Eval(t.Fun, ctx)
		return s.evalHostIntFold(count, acc, fn)
	case THostIf:
		subj := s.Eval(t.Subject, ctx)
		thenV := s.Eval(t.Then, ctx)
		elseV := s.Eval(t.Else, ctx)
		if hv, ok := subj.(HostValue); ok {
			if b, ok := hv.Data.(bool); ok {
				if b {
					return thenV
				}
				return elseV
			}
		}
		return StuckHostIf{Subject: subj, Then: thenV, Else: elseV}
	case TSingleton:
		return Singleton{Super: s.Eval(t.Super, ctx), Value: s.Eval(t.Value, ctx)}
	case TUnionType:
		parts := make([]Flex, len(t.Parts))
		for i, p := range t.Parts {
			parts[i] = s.Eval(p, ctx)
		}
		return UnionType{Parts: parts}
	case TIntersectionType:
		parts := make([]Flex, len(t.Parts))
		for i, p := range t.Parts {
			parts[i] = s.Eval(p, ctx)
		}
		return IntersectionType{Parts: parts}
	case TConstrainedType:
		return s.materializeConstrainedType(t)
	case TLevelOp:
		return s.evalLevelOp(t.Op, t.Args, ctx)
	case TLet:
		v := s.Eval(t.Expr, ctx)
		next := ctx.Append(v, t.Name.Name, t.Name)
		return s.Eval(t.Body, next)
	case TProgramSeq:
		return s.evalProgramForm(t, ctx)
	case TProgramEnd:
		return s.evalProgramForm(t, ctx)
	case TProgramType:
		return ProgramType{EffectDesc: s.Eval(t.EffectDesc, ctx), Result: s.Eval(t.Result, ctx)}
	default:
		panic(fmt.Sprintf("core: Eval: unhandled typed term kind %d", term.Kind()))
	}
}

func debugNames(ctx RuntimeContext) []SpannedName {
	names := make([]SpannedName, ctx.Len())
	for i := 1; i <= ctx.Len(); i++ {
		_, n := ctx.Get(i)
		names[i-1] = n
	}
	return names
}

func tupleElems(v Flex) []Flex {
	switch tv := v.(type) {
	case TupleValue:
		return tv.Elems
	case HostTupleValue:
		return tv.Elems
	default:
		return nil
	}
}

// ApplyClosure applies a closure to arg: extend its capture with one
// more binding and evaluate its body (spec §3.2, §4.C).
func (s *TypecheckerState) ApplyClosure(c *Closure, arg Flex) Flex {
	next := c.Capture.Append(arg, c.ParamDebug.Name, c.ParamDebug)
	return s.Eval(c.Body, next)
}

// Apply applies a value to an argument: a Closure reduces, anything
// stuck builds a StuckApplication recording the block (spec §4.C).
func (s *TypecheckerState) Apply(fn, arg Flex) Flex {
	switch f := fn.(type) {
	case Closure:
		return s.ApplyClosure(&f, arg)
	default:
		return StuckApplication{Fun: fn, Arg: arg}
	}
}

func (s *TypecheckerState) indexTuple(v Flex, index int) Flex {
	switch tv := v.(type) {
	case TupleValue:
		if index < 0 || index >= len(tv.Elems) {
			return StuckTupleElemAccess{Subject: v, Index: index}
		}
		return tv.Elems[index]
	case HostTupleValue:
		if index < 0 || index >= len(tv.Elems) {
			return StuckTupleElemAccess{Subject: v, Index: index}
		}
		return tv.Elems[index]
	default:
		return StuckTupleElemAccess{Subject: v, Index: index}
	}
}

func (s *TypecheckerState) evalObjectElim(subj Flex, names []SpannedName, body Typed, ctx RuntimeContext) Flex {
	elems := tupleElems(subj)
	if elems == nil {
		return StuckObjectElim{Subject: subj, Names: names, Body: body, Capture: ctx}
	}
	next := ctx
	for i, n := range names {
		var v Flex
		if i < len(elems) {
			v = elems[i]
		} else {
			v = StuckTupleElemAccess{Subject: subj, Index: i}
		}
		next = next.Append(v, n.Name, n)
	}
	return s.Eval(body, next)
}

func (s *TypecheckerState) evalRecordElim(subj Flex, fields []SpannedName, body Typed, ctx RuntimeContext) Flex {
	rv, ok := subj.(RecordValue)
	if !ok {
		return StuckObjectElim{Subject: subj, Names: fields, Body: body, Capture: ctx}
	}
	next := ctx
	for _, n := range fields {
		v, ok := rv.Fields[n.Name]
		if !ok {
			v = StuckRecordFieldAccess{Subject: subj, Field: n.Name}
		}
		next = next.Append(v, n.Name, n)
	}
	return s.Eval(body, next)
}

func (s *TypecheckerState) evalEnumCase(subj Flex, arms []TEnumArm, ctx RuntimeContext) Flex {
	ev, ok := subj.(EnumValue)
	if !ok {
		return StuckEnumElim{Subject: subj, Arms: arms, Capture: ctx}
	}
	for _, a := range arms {
		if a.Variant == ev.Variant {
			next := ctx.Append(ev.Payload, a.Param.Name, a.Param)
			return s.Eval(a.Body, next)
		}
	}
	return StuckEnumElim{Subject: subj, Arms: arms, Capture: ctx}
}

func (s *TypecheckerState) evalHostIntFold(count, acc, fn Flex) Flex {
	hv, ok := count.(HostValue)
	if !ok {
		return StuckHostIntFold{Count: count, Acc: acc, Fun: fn}
	}
	n, ok := hv.Data.(int64)
	if !ok {
		return StuckHostIntFold{Count: count, Acc: acc, Fun: fn}
	}
	for i := int64(0); i < n; i++ {
		step := s.Apply(fn, acc)
		acc = s.Apply(step, HostValue{Data: n - i})
	}
	return acc
}

func (s *TypecheckerState) evalHostIntrinsic(source Flex, typ Flex) Flex {
	hv, ok := source.(HostValue)
	if !ok {
		return StuckHostIntrinsic{Source: source, Type: typ}
	}
	src, ok := hv.Data.(string)
	if !ok {
		return StuckHostIntrinsic{Source: source, Type: typ}
	}
	if cached, ok := s.hostIntrinsics.Get(src); ok {
		return cached
	}
	compiled := HostValue{Data: src}
	s.hostIntrinsics.Set(src, compiled)
	return compiled
}

func (s *TypecheckerState) evalLevelOp(op string, args []Typed, ctx RuntimeContext) Flex {
	vals := make([]Flex, len(args))
	for i, a := range args {
		vals[i] = s.Eval(a, ctx)
	}
	asLevel := func(v Flex) (int, bool) {
		l, ok := v.(Level)
		return l.N, ok
	}
	switch op {
	case "succ":
		if len(vals) == 1 {
			if n, ok := asLevel(vals[0]); ok {
				return Level{N: min(n+1, OmegaLevel)}
			}
		}
	case "max":
		best := 0
		for _, v := range vals {
			if n, ok := asLevel(v); ok && n > best {
				best = n
			}
		}
		return Level{N: best}
	}
	return StuckFree{Var: &UniqueToken{Debug: SpannedName{Name: "levelop:" + op}}}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *TypecheckerState) evalProgramForm(term Typed, ctx RuntimeContext) Flex {
	switch t := term.(type) {
	case TProgramEnd:
		return s.Eval(t.Result, ctx)
	case TProgramSeq:
		step := s.Eval(t.Step, ctx)
		return s.stepProgram(step, t, ctx)
	}
	return nil
}

// stepProgram drives one effectful step: step must reduce to an
// EnumValue tagging the effect id performed, whose payload is passed
// to the registered handler; the handler's result is bound and the
// continuation resumed (spec §4.C "program evaluation", §8).
func (s *TypecheckerState) stepProgram(step Flex, t TProgramSeq, ctx RuntimeContext) Flex {
	ev, ok := step.(EnumValue)
	if !ok {
		return StuckFree{Var: &UniqueToken{Debug: SpannedName{Name: "stuck-program-step"}}}
	}
	handler, ok := s.lookupEffectHandler(ev.Variant)
	if !ok {
		return StuckFree{Var: &UniqueToken{Debug: SpannedName{Name: "unhandled-effect:" + ev.Variant}}}
	}
	resumed, err := handler(ev.Payload)
	if err != nil {
		return StuckFree{Var: &UniqueToken{Debug: SpannedName{Name: "effect-error:" + err.Error()}}}
	}
	next := ctx.Append(resumed, t.Name.Name, t.Name)
	return s.Eval(t.Cont, next)
}

// quoteNode is the quote direction of NbE for a graph node (spec §4.G
// "slicing" needs a Typed snapshot of whatever a sliced edge's other
// endpoint currently resolves to). A node interning a concrete value
// quotes to a TLiteral wrapping that value directly, the same
// "evaluate once, stop re-deriving structure" shortcut TLiteral exists
// for elsewhere (see its doc comment in core/term.go); a bare
// metavariable endpoint quotes to a TMetaRef so replaying the sliced
// constraint later still refers to the same unknown.
func (s *TypecheckerState) quoteNode(id NodeID) Typed {
	if v, ok := s.graph.Value(id); ok {
		return TLiteral{Value: v}
	}
	if mv, ok := s.metaByNode.Get(id); ok {
		return TMetaRef{Meta: mv}
	}
	return TLiteral{Value: StuckFree{Var: &UniqueToken{Debug: SpannedName{Name: "unresolved-node"}}}}
}

func (s *TypecheckerState) materializeConstrainedType(t TConstrainedType) Flex {
	fresh := s.FreshMetavariable("unsliced", false)
	for _, elem := range t.Constraints {
		_ = s.replayConstraintElem(elem, fresh.AsOccurrence(), s.blockLevel)
	}
	return fresh.AsOccurrence()
}
