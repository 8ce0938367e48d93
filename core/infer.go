package core

// Infer synthesises a typed term, its type, and the usage vector of
// outer-context references it makes, from an Inferrable term (spec
// §4.E). Results are memoised by the structural identity of (term,
// ctx); repeating the exact same call (e.g. while speculatively
// retrying a sibling branch) is cheap.
func (s *TypecheckerState) Infer(ctx TypeContext, term Inferrable) (Typed, Flex, Usages, error) {
	if cached, ok := s.lookupInferMemo(term, ctx); ok {
		return cached.Term, cached.Type, cached.Usages, nil
	}
	done := s.trace.Enter("infer %s", term.Debug().Name)
	defer done()

	typedTerm, typ, usages, err := s.inferUncached(ctx, term)
	if err != nil {
		return nil, nil, nil, err
	}
	s.storeInferMemo(term, ctx, inferResult{Term: typedTerm, Type: typ, Usages: usages})
	return typedTerm, typ, usages, nil
}

func (s *TypecheckerState) inferUncached(ctx TypeContext, term Inferrable) (Typed, Flex, Usages, error) {
	switch t := term.(type) {
	case Var:
		return s.inferVar(ctx, t)
	case AnnLambda:
		return s.inferAnnLambda(ctx, t)
	case PiForm:
		return s.inferPi(ctx, t)
	case App:
		return s.inferApp(ctx, t)
	case TupleCons:
		return s.inferTupleCons(ctx, t)
	case TupleElim:
		return s.inferTupleElim(ctx, t)
	case TupleTypeForm:
		return s.inferTupleType(ctx, t)
	case RecordCons:
		return s.inferRecordCons(ctx, t)
	case RecordElim:
		return s.inferRecordElim(ctx, t)
	case EnumCons:
		return s.inferEnumCons(ctx, t)
	case EnumCase:
		return s.inferEnumCase(ctx, t)
	case EnumTypeForm:
		return s.inferEnumType(ctx, t)
	case HostIntrinsic:
		return s.inferHostIntrinsic(ctx, t)
	case HostFuncTypeForm:
		return s.inferHostFuncType(ctx, t)
	case LevelOp:
		return s.inferLevelOp(ctx, t)
	case Let:
		return s.inferLet(ctx, t)
	case ProgramSeq:
		return s.inferProgramSeq(ctx, t)
	case ProgramEnd:
		return s.inferProgramEnd(ctx, t)
	case ProgramTypeForm:
		return s.inferProgramType(ctx, t)
	case Annotated:
		return s.inferAnnotated(ctx, t)
	case AlreadyTyped:
		return t.Term, t.Type, gatherUsages(t.Term, ctx.Len()), nil
	default:
		return nil, nil, nil, structuralError(term.Debug(), "unrecognised inferrable term kind %d", term.Kind())
	}
}

func (s *TypecheckerState) inferVar(ctx TypeContext, v Var) (Typed, Flex, Usages, error) {
	if v.Index < 1 || v.Index > ctx.Len() {
		return nil, nil, nil, elaborationError(v.Debug(), "variable index %d out of range", v.Index)
	}
	typ, debug := ctx.GetType(v.Index)
	if debug != v.Debug() {
		return nil, nil, nil, elaborationError(v.Debug(), "variable debug info mismatch with context (fatal scoping bug)")
	}
	u := NewUsages(ctx.Len())
	u.Inc(v.Index)
	return TVar{typedBase: typedBase{debug: v.Debug()}, Index: v.Index}, typ, u, nil
}

func (s *TypecheckerState) inferAnnLambda(ctx TypeContext, t AnnLambda) (Typed, Flex, Usages, error) {
	typedParamType, paramTypeVal, err := s.checkAsType(ctx, t.ParamType)
	if err != nil {
		return nil, nil, nil, err
	}
	paramPlaceholder := StuckFree{Var: &Placeholder{Index: ctx.Len() + 1, Debug: t.Param}}
	innerCtx := ctx.Append(paramPlaceholder, paramTypeVal, t.Param.Name, t.Param)

	bodyTyped, bodyType, bodyUsages, err := s.Infer(innerCtx, t.Body)
	if err != nil {
		return nil, nil, nil, err
	}

	lam := TLambda{typedBase: typedBase{debug: t.Debug()}, Param: t.Param, Info: t.Info, Body: bodyTyped}
	explicit := buildExplicitCapture(s, lam, ctx, innerCtx.Runtime)

	// The result closure yields the body's type, quoted back to a typed
	// term, with the parameter bound to the argument it is applied to.
	resultBody := substituteInner(s, bodyType, nil, innerCtx.Len(), s.blockLevel+1)
	resultClosure := &Closure{ParamDebug: t.Param, Capture: ctx.Runtime, Body: resultBody}
	piType := Pi{ParamDebug: t.Param, ParamType: paramTypeVal, Info: t.Info, Result: resultClosure}

	outerUsages := bodyUsages.DropLast()
	_ = typedParamType
	return explicit, piType, outerUsages, nil
}

func (s *TypecheckerState) inferPi(ctx TypeContext, t PiForm) (Typed, Flex, Usages, error) {
	paramTyped, paramTypeVal, err := s.checkAsType(ctx, t.ParamType)
	if err != nil {
		return nil, nil, nil, err
	}
	paramPlaceholder := StuckFree{Var: &Placeholder{Index: ctx.Len() + 1, Debug: t.Param}}
	innerCtx := ctx.Append(paramPlaceholder, paramTypeVal, t.Param.Name, t.Param)
	resultTyped, resultTypeVal, err := s.checkAsType(innerCtx, t.Result)
	if err != nil {
		return nil, nil, nil, err
	}
	typedPi := TPi{typedBase: typedBase{debug: t.Debug()}, Param: t.Param, ParamType: paramTyped, Info: t.Info, Result: resultTyped}
	universe := Star{Depth: 0}
	_ = resultTypeVal
	return typedPi, universe, NewUsages(ctx.Len()), nil
}

// checkAsType elaborates a Checkable expected to denote a type: check
// it against Star{Depth: OmegaLevel}, a universe goal with no depth
// bound, then evaluate the resulting typed term to get the denoted Flex (spec §4.E
// uses this pattern pervasively for domain/result type positions).
func (s *TypecheckerState) checkAsType(ctx TypeContext, c Checkable) (Typed, Flex, error) {
	goal := Star{Depth: OmegaLevel}
	typedTerm, _, err := s.Check(ctx, c, goal)
	if err != nil {
		return nil, nil, err
	}
	return typedTerm, s.Eval(typedTerm, ctx.Runtime), nil
}

func (s *TypecheckerState) inferApp(ctx TypeContext, t App) (Typed, Flex, Usages, error) {
	funTyped, funType, funUsages, err := s.Infer(ctx, t.Fun)
	if err != nil {
		return nil, nil, nil, err
	}
	pi, ok := funType.(Pi)
	if !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "application head is not a function type")
	}
	for pi.Info.Implicit {
		mv := s.FreshMetavariable("implicit", false)
		funTyped = TApp{typedBase: typedBase{debug: t.Debug()}, Fun: funTyped, Arg: TMetaRef{Meta: mv}}
		funType = s.ApplyClosure(pi.Result, mv.AsOccurrence())
		pi, ok = funType.(Pi)
		if !ok {
			return nil, nil, nil, elaborationError(t.Debug(), "application head's implicit-stripped type is not a function type")
		}
	}
	argTyped, argUsages, err := s.Check(ctx, t.Arg, pi.ParamType)
	if err != nil {
		return nil, nil, nil, err
	}
	argVal := s.Eval(argTyped, ctx.Runtime)
	resultType := s.ApplyClosure(pi.Result, argVal)
	typedApp := TApp{typedBase: typedBase{debug: t.Debug()}, Fun: funTyped, Arg: argTyped}
	return typedApp, resultType, funUsages.Add(argUsages), nil
}

func (s *TypecheckerState) inferTupleCons(ctx TypeContext, t TupleCons) (Typed, Flex, Usages, error) {
	elems := make([]Typed, len(t.Elems))
	// Position closures here simply return the already-inferred element
	// type regardless of the witness they are applied to: this does not
	// express genuine positional dependency (a later position's type
	// depending on an earlier position's *value*), which would require
	// threading each position's typed term through the next's inference.
	// Accepted simplification - see DESIGN.md.
	positions := make([]*Closure, len(t.Elems))
	usages := NewUsages(ctx.Len())
	for i, e := range t.Elems {
		elemTyped, elemType, elemUsages, err := s.Infer(ctx, e)
		if err != nil {
			return nil, nil, nil, err
		}
		elems[i] = elemTyped
		usages = usages.Add(elemUsages)
		positions[i] = &Closure{Capture: RuntimeContext{}, Body: TLiteral{Value: elemType}}
	}
	typedCons := TTupleCons{typedBase: typedBase{debug: t.Debug()}, Elems: elems}
	return typedCons, TupleType{Desc: TupleDesc{Positions: positions}}, usages, nil
}

// inferTupleElim elaborates a tuple_elim whose subject may turn out to
// be either a core (dependently-typed) tuple or a host tuple: it tries
// the dependent path against the subject's TupleDesc first and, if that
// fails (the subject's type isn't a resolved core tuple type at all —
// e.g. it came from a host boundary or is still an unconstrained
// metavariable), falls back to binding each name at its own independent
// fresh metavariable rather than a descriptor-derived type. Both
// branches build the identical TTupleElim shape (spec §8 "tuple-elim
// dual path"; the dependent/host distinction only affects how each
// position's type is computed, not how the elaborated term evaluates).
// Speculate ensures the failed dependent attempt leaves no residual
// edges (spec §8 Testable Property 6, "shadow isolation").
func (s *TypecheckerState) inferTupleElim(ctx TypeContext, t TupleElim) (Typed, Flex, Usages, error) {
	subjTyped, subjType, subjUsages, err := s.Infer(ctx, t.Subject)
	if err != nil {
		return nil, nil, nil, err
	}

	var typedElim Typed
	var bodyType Flex
	var bodyUsages Usages

	elimAttempt := func(sh *TypecheckerState, dependent bool) error {
		innerCtx := ctx
		witness := make([]Flex, 0, len(t.Names))
		for i, n := range t.Names {
			var ty Flex
			if dependent {
				tt, ok := subjType.(TupleType)
				if !ok {
					return elaborationError(t.Debug(), "tuple elimination subject is not a core tuple")
				}
				desc, ok := tt.Desc.(TupleDesc)
				if !ok {
					return elaborationError(t.Debug(), "tuple elimination subject has an unresolved descriptor")
				}
				if len(desc.Positions) != len(t.Names) {
					return elaborationError(t.Debug(), "tuple elimination binds %d names but subject has %d positions", len(t.Names), len(desc.Positions))
				}
				ty = sh.ApplyClosure(desc.Positions[i], TupleValue{Elems: append([]Flex{}, witness...)})
			} else {
				ty = sh.FreshMetavariable(n.Name, false).AsOccurrence()
			}
			ph := StuckFree{Var: &Placeholder{Index: innerCtx.Len() + 1, Debug: n}}
			innerCtx = innerCtx.Append(ph, ty, n.Name, n)
			witness = append(witness, ph)
		}

		bt, bty, bu, err := sh.Infer(innerCtx, t.Body)
		if err != nil {
			return err
		}
		outer := bu
		for range t.Names {
			outer = outer.DropLast()
		}
		typedElim = TTupleElim{typedBase: typedBase{debug: t.Debug()}, Subject: subjTyped, Names: t.Names, Body: bt}
		bodyType = bty
		bodyUsages = outer
		return nil
	}

	if err := s.Speculate(func(sh *TypecheckerState) error { return elimAttempt(sh, true) }); err != nil {
		if err := s.Speculate(func(sh *TypecheckerState) error { return elimAttempt(sh, false) }); err != nil {
			return nil, nil, nil, err
		}
	}
	return typedElim, bodyType, subjUsages.Add(bodyUsages), nil
}

func (s *TypecheckerState) inferTupleType(ctx TypeContext, t TupleTypeForm) (Typed, Flex, Usages, error) {
	descTyped, descType, usages, err := s.Infer(ctx, t.Desc)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, ok := descType.(TupleDescType); !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "tuple_type argument is not a tuple descriptor")
	}
	return TTupleType{typedBase: typedBase{debug: t.Debug()}, Desc: descTyped}, Star{Depth: 0}, usages, nil
}

func (s *TypecheckerState) inferRecordCons(ctx TypeContext, t RecordCons) (Typed, Flex, Usages, error) {
	fields := make([]TRecordField, len(t.Fields))
	descFields := make(map[string]*Closure, len(t.Fields))
	order := make([]string, len(t.Fields))
	usages := NewUsages(ctx.Len())
	for i, f := range t.Fields {
		fieldTyped, fieldType, fieldUsages, err := s.Infer(ctx, f.Expr)
		if err != nil {
			return nil, nil, nil, err
		}
		fields[i] = TRecordField{Name: f.Name, Expr: fieldTyped}
		descFields[f.Name.Name] = &Closure{Capture: RuntimeContext{}, Body: TLiteral{Value: fieldType}}
		order[i] = f.Name.Name
		usages = usages.Add(fieldUsages)
	}
	return TRecordCons{typedBase: typedBase{debug: t.Debug()}, Fields: fields},
		RecordType{Desc: RecordDesc{Fields: descFields, Order: order}}, usages, nil
}

func (s *TypecheckerState) inferRecordElim(ctx TypeContext, t RecordElim) (Typed, Flex, Usages, error) {
	subjTyped, subjType, subjUsages, err := s.Infer(ctx, t.Subject)
	if err != nil {
		return nil, nil, nil, err
	}
	rt, ok := subjType.(RecordType)
	if !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "record elimination subject is not a record")
	}
	desc, ok := rt.Desc.(RecordDesc)
	if !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "record elimination subject has an unresolved descriptor")
	}
	innerCtx := ctx
	witness := RecordValue{Fields: map[string]Flex{}, Order: desc.Order}
	for _, n := range t.Fields {
		closure, ok := desc.Fields[n.Name]
		if !ok {
			return nil, nil, nil, elaborationError(n, "record has no field %q", n.Name)
		}
		ty := s.ApplyClosure(closure, witness)
		ph := StuckFree{Var: &Placeholder{Index: innerCtx.Len() + 1, Debug: n}}
		innerCtx = innerCtx.Append(ph, ty, n.Name, n)
		witness.Fields[n.Name] = ph
	}
	bodyTyped, bodyType, bodyUsages, err := s.Infer(innerCtx, t.Body)
	if err != nil {
		return nil, nil, nil, err
	}
	outer := bodyUsages
	for range t.Fields {
		outer = outer.DropLast()
	}
	return TRecordElim{typedBase: typedBase{debug: t.Debug()}, Subject: subjTyped, Fields: t.Fields, Body: bodyTyped}, bodyType, subjUsages.Add(outer), nil
}

func (s *TypecheckerState) inferEnumCons(ctx TypeContext, t EnumCons) (Typed, Flex, Usages, error) {
	payloadTyped, payloadType, usages, err := s.Infer(ctx, t.Payload)
	if err != nil {
		return nil, nil, nil, err
	}
	desc := EnumDesc{Variants: map[string]Flex{t.Variant.Name: payloadType}, Order: []string{t.Variant.Name}}
	return TEnumCons{typedBase: typedBase{debug: t.Debug()}, Variant: t.Variant.Name, Payload: payloadTyped}, EnumType{Desc: desc}, usages, nil
}

// inferEnumCase elaborates enum-case per spec §4.E: rather than
// requiring the subject's static type to already resolve to a concrete
// EnumType, it invents one metavariable per arm's variant, constrains
// the subject to the enum of those fresh variants, and elaborates each
// arm's body against its own metavariable - letting the payload types
// unify with whatever the subject's type turns out to be (a metavariable
// itself, a concrete EnumType, or anything else the solver can narrow),
// instead of failing outright whenever the subject isn't already known
// to be a concrete enum.
func (s *TypecheckerState) inferEnumCase(ctx TypeContext, t EnumCase) (Typed, Flex, Usages, error) {
	subjTyped, subjType, subjUsages, err := s.Infer(ctx, t.Subject)
	if err != nil {
		return nil, nil, nil, err
	}

	variantTypes := make(map[string]Flex, len(t.Arms))
	order := make([]string, len(t.Arms))
	for i, a := range t.Arms {
		mv := s.FreshMetavariable(a.Variant.Name, false)
		variantTypes[a.Variant.Name] = mv.AsOccurrence()
		order[i] = a.Variant.Name
	}
	enumOfVariants := EnumType{Desc: EnumDesc{Variants: variantTypes, Order: order}}
	cause := PrimitiveCause{Message: "enum case subject", Span: t.Debug().Span}
	if err := s.Flow(ctx, subjType, ctx, enumOfVariants, SubtypeRelation{}, s.blockLevel, cause); err != nil {
		return nil, nil, nil, err
	}

	arms := make([]TEnumArm, len(t.Arms))
	var resultParts []Flex
	usages := subjUsages
	for i, a := range t.Arms {
		payloadType := variantTypes[a.Variant.Name]
		ph := StuckFree{Var: &Placeholder{Index: ctx.Len() + 1, Debug: a.Param}}
		innerCtx := ctx.Append(ph, payloadType, a.Param.Name, a.Param)
		armTyped, armType, armUsages, err := s.Infer(innerCtx, a.Body)
		if err != nil {
			return nil, nil, nil, err
		}
		arms[i] = TEnumArm{Variant: a.Variant.Name, Param: a.Param, Body: armTyped}
		resultParts = append(resultParts, armType)
		usages = usages.Add(armUsages.DropLast())
	}
	return TEnumCase{typedBase: typedBase{debug: t.Debug()}, Subject: subjTyped, Arms: arms}, UnionType{Parts: resultParts}, usages, nil
}

func (s *TypecheckerState) inferEnumType(ctx TypeContext, t EnumTypeForm) (Typed, Flex, Usages, error) {
	descTyped, descType, usages, err := s.Infer(ctx, t.Desc)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, ok := descType.(EnumDescType); !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "enum_type argument is not an enum descriptor")
	}
	return TEnumType{typedBase: typedBase{debug: t.Debug()}, Desc: descTyped}, Star{Depth: 0}, usages, nil
}

func (s *TypecheckerState) inferHostIntrinsic(ctx TypeContext, t HostIntrinsic) (Typed, Flex, Usages, error) {
	typeTyped, _, _, err := s.Infer(ctx, t.TypeExpr)
	if err != nil {
		return nil, nil, nil, err
	}
	typeVal := s.Eval(typeTyped, ctx.Runtime)
	sourceTyped, sourceUsages, err := s.Check(ctx, t.Source, HostStringType{})
	if err != nil {
		return nil, nil, nil, err
	}
	srcVal := s.Eval(sourceTyped, ctx.Runtime)
	hv, ok := srcVal.(HostValue)
	if !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "host intrinsic source did not reduce to a literal string")
	}
	src, _ := hv.Data.(string)
	return THostIntrinsic{typedBase: typedBase{debug: t.Debug()}, Source: src, Type: typeTyped}, typeVal, sourceUsages, nil
}

func (s *TypecheckerState) inferHostFuncType(ctx TypeContext, t HostFuncTypeForm) (Typed, Flex, Usages, error) {
	parms := make([]Typed, len(t.Parms))
	parmVals := make([]Flex, len(t.Parms))
	usages := NewUsages(ctx.Len())
	for i, p := range t.Parms {
		pt, pv, err := s.checkAsType(ctx, p)
		if err != nil {
			return nil, nil, nil, err
		}
		parms[i] = pt
		parmVals[i] = pv
	}
	retTyped, retVal, err := s.checkAsType(ctx, t.Ret)
	if err != nil {
		return nil, nil, nil, err
	}
	return THostFuncType{typedBase: typedBase{debug: t.Debug()}, Parms: parms, Ret: retTyped},
		HostFuncType{Parms: parmVals, Ret: retVal}, usages, nil
}

func (s *TypecheckerState) inferLevelOp(ctx TypeContext, t LevelOp) (Typed, Flex, Usages, error) {
	args := make([]Typed, len(t.Args))
	usages := NewUsages(ctx.Len())
	for i, a := range t.Args {
		at, _, au, err := s.Infer(ctx, a)
		if err != nil {
			return nil, nil, nil, err
		}
		args[i] = at
		usages = usages.Add(au)
	}
	return TLevelOp{typedBase: typedBase{debug: t.Debug()}, Op: t.Op, Args: args}, Level{}, usages, nil
}

func (s *TypecheckerState) inferLet(ctx TypeContext, t Let) (Typed, Flex, Usages, error) {
	exprTyped, exprType, exprUsages, err := s.Infer(ctx, t.Expr)
	if err != nil {
		return nil, nil, nil, err
	}
	exprVal := s.Eval(exprTyped, ctx.Runtime)
	innerCtx := ctx.Append(exprVal, exprType, t.Name.Name, t.Name)
	bodyTyped, bodyType, bodyUsages, err := s.Infer(innerCtx, t.Body)
	if err != nil {
		return nil, nil, nil, err
	}
	return TLet{typedBase: typedBase{debug: t.Debug()}, Name: t.Name, Expr: exprTyped, Body: bodyTyped},
		bodyType, exprUsages.Add(bodyUsages.DropLast()), nil
}

func (s *TypecheckerState) inferProgramSeq(ctx TypeContext, t ProgramSeq) (Typed, Flex, Usages, error) {
	stepTyped, stepType, stepUsages, err := s.Infer(ctx, t.Step)
	if err != nil {
		return nil, nil, nil, err
	}
	stepProg, ok := stepType.(ProgramType)
	if !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "program sequence step is not a program")
	}
	innerCtx := ctx.Append(StuckFree{Var: &Placeholder{Index: ctx.Len() + 1, Debug: t.Name}}, stepProg.Result, t.Name.Name, t.Name)
	contTyped, contType, contUsages, err := s.Infer(innerCtx, t.Cont)
	if err != nil {
		return nil, nil, nil, err
	}
	contProg, ok := contType.(ProgramType)
	if !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "program sequence continuation is not a program")
	}
	merged := EffectRow{Components: mergeEffectComponents(stepProg.EffectDesc, contProg.EffectDesc)}
	result := ProgramType{EffectDesc: merged, Result: contProg.Result}
	return TProgramSeq{typedBase: typedBase{debug: t.Debug()}, Name: t.Name, Step: stepTyped, Cont: contTyped},
		result, stepUsages.Add(contUsages.DropLast()), nil
}

func mergeEffectComponents(a, b Flex) map[string]Flex {
	out := map[string]Flex{}
	if ar, ok := a.(EffectRow); ok {
		for k, v := range ar.Components {
			out[k] = v
		}
	}
	if br, ok := b.(EffectRow); ok {
		for k, v := range br.Components {
			out[k] = v
		}
	}
	return out
}

func (s *TypecheckerState) inferProgramEnd(ctx TypeContext, t ProgramEnd) (Typed, Flex, Usages, error) {
	resultTyped, resultType, usages, err := s.Infer(ctx, t.Result)
	if err != nil {
		return nil, nil, nil, err
	}
	return TProgramEnd{typedBase: typedBase{debug: t.Debug()}, Result: resultTyped},
		ProgramType{EffectDesc: EffectRow{Components: map[string]Flex{}}, Result: resultType}, usages, nil
}

func (s *TypecheckerState) inferProgramType(ctx TypeContext, t ProgramTypeForm) (Typed, Flex, Usages, error) {
	descTyped, descType, descUsages, err := s.Infer(ctx, t.EffectDesc)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, ok := descType.(EffectRow); !ok {
		return nil, nil, nil, elaborationError(t.Debug(), "program_type first argument is not an effect row")
	}
	resultTyped, _, err := s.checkAsType(ctx, t.Result)
	if err != nil {
		return nil, nil, nil, err
	}
	return TProgramType{typedBase: typedBase{debug: t.Debug()}, EffectDesc: descTyped, Result: resultTyped}, Star{Depth: 0}, descUsages, nil
}

func (s *TypecheckerState) inferAnnotated(ctx TypeContext, t Annotated) (Typed, Flex, Usages, error) {
	_, typeVal, err := s.checkAsType(ctx, t.Type)
	if err != nil {
		return nil, nil, nil, err
	}
	exprTyped, usages, err := s.Check(ctx, t.Expr, typeVal)
	if err != nil {
		return nil, nil, nil, err
	}
	return exprTyped, typeVal, usages, nil
}
