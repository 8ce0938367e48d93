package core

// Check elaborates a Checkable against a goal type (spec §4.E). The
// common case (CheckInferrable) defers to Infer and flows the
// synthesised type into goal via SubtypeRelation; the remaining
// variants exist because their shape lets the elaborator avoid
// inventing a metavariable where the goal already pins it down exactly
// (a tuple/host-tuple literal against a known arity, a bare lambda
// against a pi goal).
func (s *TypecheckerState) Check(ctx TypeContext, term Checkable, goal Flex) (Typed, Usages, error) {
	done := s.trace.Enter("check %s against %s", term.Debug().Name, describeFlex(goal))
	defer done()

	switch t := term.(type) {
	case CheckInferrable:
		return s.checkInferrable(ctx, t, goal)
	case CheckTupleCons:
		return s.checkTupleCons(ctx, t, goal)
	case CheckHostTupleCons:
		return s.checkHostTupleCons(ctx, t, goal)
	case CheckLambda:
		return s.checkLambda(ctx, t, goal)
	default:
		return nil, nil, structuralError(term.Debug(), "unrecognised checkable term kind %d", term.Kind())
	}
}

func (s *TypecheckerState) checkInferrable(ctx TypeContext, t CheckInferrable, goal Flex) (Typed, Usages, error) {
	typedTerm, synthType, usages, err := s.Infer(ctx, t.Term)
	if err != nil {
		return nil, nil, err
	}
	cause := PrimitiveCause{Message: "checked against goal", Span: t.Debug().Span}
	if err := s.Flow(ctx, synthType, ctx, goal, SubtypeRelation{}, s.blockLevel, cause); err != nil {
		return nil, nil, err
	}
	return typedTerm, usages, nil
}

// checkTupleCons checks a tuple literal against a goal that is already a
// TupleType with a resolved TupleDesc: element i is checked against the
// type goal position i's closure gives when applied to the values of the
// elements before it. No metavariable is invented per position, so a
// goal that is not yet a resolved tuple type (for example a bare
// metavariable) is rejected with an elaboration error.
func (s *TypecheckerState) checkTupleCons(ctx TypeContext, t CheckTupleCons, goal Flex) (Typed, Usages, error) {
	tt, ok := goal.(TupleType)
	if !ok {
		return nil, nil, elaborationError(t.Debug(), "tuple literal checked against a non-tuple goal")
	}
	desc, ok := tt.Desc.(TupleDesc)
	if !ok {
		return nil, nil, elaborationError(t.Debug(), "tuple literal checked against an unresolved tuple descriptor")
	}
	if len(desc.Positions) != len(t.Elems) {
		return nil, nil, elaborationError(t.Debug(), "tuple literal has %d elements but goal wants %d", len(t.Elems), len(desc.Positions))
	}
	elems := make([]Typed, len(t.Elems))
	usages := NewUsages(ctx.Len())
	witness := make([]Flex, 0, len(t.Elems))
	for i, e := range t.Elems {
		elemGoal := s.ApplyClosure(desc.Positions[i], TupleValue{Elems: append([]Flex{}, witness...)})
		elemTyped, elemUsages, err := s.Check(ctx, e, elemGoal)
		if err != nil {
			return nil, nil, err
		}
		elems[i] = elemTyped
		usages = usages.Add(elemUsages)
		witness = append(witness, s.Eval(elemTyped, ctx.Runtime))
	}
	return TTupleCons{typedBase: typedBase{debug: t.Debug()}, Elems: elems}, usages, nil
}

// checkHostTupleCons is the host-tuple analogue: every element is
// checked against a host function type's parameter list, since host
// tuples carry no dependent descriptor (spec §4.E, host FFI boundary).
// There is no dedicated typed node for a host-tuple literal; it
// produces a plain TTupleCons, since Eval's TupleValue and
// HostTupleValue share the same element-slice shape (tupleElems treats
// them identically) and HostTupleValue's distinct Kind only matters
// once an interior element goes stuck, which happens at the host-call
// boundary rather than at construction.
func (s *TypecheckerState) checkHostTupleCons(ctx TypeContext, t CheckHostTupleCons, goal Flex) (Typed, Usages, error) {
	hft, ok := goal.(HostFuncType)
	if !ok {
		return nil, nil, elaborationError(t.Debug(), "host tuple literal checked against a non-host-function goal")
	}
	if len(hft.Parms) != len(t.Elems) {
		return nil, nil, elaborationError(t.Debug(), "host tuple literal has %d elements but goal wants %d", len(t.Elems), len(hft.Parms))
	}
	elems := make([]Typed, len(t.Elems))
	usages := NewUsages(ctx.Len())
	for i, e := range t.Elems {
		elemTyped, elemUsages, err := s.Check(ctx, e, hft.Parms[i])
		if err != nil {
			return nil, nil, err
		}
		elems[i] = elemTyped
		usages = usages.Add(elemUsages)
	}
	return TTupleCons{typedBase: typedBase{debug: t.Debug()}, Elems: elems}, usages, nil
}

// checkLambda checks a parameter-annotation-free lambda against a pi
// goal: the parameter's type comes from the goal rather than being
// re-elaborated, then the body is inferred and flowed into the goal's
// result (spec §4.E "lambda checking").
func (s *TypecheckerState) checkLambda(ctx TypeContext, t CheckLambda, goal Flex) (Typed, Usages, error) {
	pi, ok := goal.(Pi)
	if !ok {
		return nil, nil, elaborationError(t.Debug(), "lambda checked against a non-function goal")
	}
	paramPlaceholder := StuckFree{Var: &Placeholder{Index: ctx.Len() + 1, Debug: t.Param}}
	innerCtx := ctx.Append(paramPlaceholder, pi.ParamType, t.Param.Name, t.Param)
	resultGoal := s.ApplyClosure(pi.Result, paramPlaceholder)

	bodyTyped, bodyUsages, err := s.Check(innerCtx, t.Body, resultGoal)
	if err != nil {
		return nil, nil, err
	}

	lam := TLambda{typedBase: typedBase{debug: t.Debug()}, Param: t.Param, Info: pi.Info, Body: bodyTyped}
	explicit := buildExplicitCapture(s, lam, ctx, innerCtx.Runtime)
	return explicit, bodyUsages.DropLast(), nil
}
