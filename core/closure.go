package core

// buildExplicitCapture runs closure conversion (spec §4.D) on a lambda
// freshly produced by Check/Infer: it gathers which outer bindings the
// body actually references, builds a tuple expression computing
// exactly those (in ascending index order), and rewrites the body so
// its only free references are into that tuple plus the parameter -
// never the whole ambient context (spec §3.2 Testable Property 3,
// "closure isolation").
//
// Usage counting stays over the typed body term: evaluation can neither
// introduce nor drop a free reference into the outer context, so the set
// of outer indices worth capturing is the same whether it is read off
// the term or its value. The body itself, though, is rebuilt from the
// evaluated value via substituteInner (spec §4.D), not from the raw
// term: that is what lets a metavariable that escapes bodyRuntime's
// block materialise as a constrained_type instead of a bare reference to
// a metavariable the closing scope is about to invalidate.
func buildExplicitCapture(s *TypecheckerState, lam TLambda, outerCtx TypeContext, bodyRuntime RuntimeContext) TLambdaExplicitCapture {
	ctxLen := outerCtx.Len()
	usages := gatherUsages(lam.Body, ctxLen)

	var usedIndices []int
	for i := 1; i <= ctxLen; i++ {
		if i-1 < len(usages) && usages[i-1] > 0 {
			usedIndices = append(usedIndices, i)
		}
	}

	mapping := make(map[int]int, len(usedIndices)+1)
	captureDebug := make([]SpannedName, len(usedIndices))
	elems := make([]Typed, len(usedIndices))
	for pos, idx := range usedIndices {
		mapping[idx] = pos + 1
		_, debug := outerCtx.GetType(idx)
		captureDebug[pos] = debug
		elems[pos] = TVar{Index: idx}
	}
	paramIndex := ctxLen + 1
	mapping[paramIndex] = len(usedIndices) + 1

	bodyVal := s.Eval(lam.Body, bodyRuntime)
	newBody := substituteInner(s, bodyVal, mapping, ctxLen, s.blockLevel)

	return TLambdaExplicitCapture{
		typedBase:    lam.typedBase,
		Capture:      TTupleCons{Elems: elems},
		CaptureDebug: captureDebug,
		Param:        lam.Param,
		Info:         lam.Info,
		Body:         newBody,
	}
}
