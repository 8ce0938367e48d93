package core

// Flow is the entry point every Relation.Constrain and every piece of
// Check/Infer uses to register an obligation "lval flows into rval
// under rel" (spec §4.G). Concrete-to-concrete comparisons are
// resolved immediately; anything touching a metavariable node is
// additionally recorded as a graph edge so a later bound on that
// metavariable re-triggers the comparison (transitive closure, spec
// §3.5, Testable Property 4).
func (s *TypecheckerState) Flow(lctx TypeContext, lval Flex, rctx TypeContext, rval Flex, rel Relation, block int, cause Cause) error {
	done := s.trace.Enter("flow %s %s %s", describeFlex(lval), rel.DebugName(), describeFlex(rval))
	defer done()

	lNode := s.graph.CheckValue(lval, false)
	rNode := s.graph.CheckValue(rval, true)
	return s.constrainNodes(lNode, rNode, rel, block, cause)
}

func describeFlex(v Flex) string {
	return PrettyPrint(v)
}

// constrainNodes inserts a Constrain edge between two already-resolved
// node ids and propagates it: direct concrete/concrete comparison, and
// transitive composition with every edge already touching either
// endpoint under the same relation (spec §4.G step 2 "transitive
// closure").
func (s *TypecheckerState) constrainNodes(l, r NodeID, rel Relation, block int, cause Cause) error {
	if rel.Refl() && l == r {
		return nil
	}
	edge := ConstrainEdge{Left: l, Right: r, Relation: rel, ShallowestBlock: block, Cause: cause}
	if _, inserted := s.constrain.Insert(edge); !inserted {
		return nil
	}

	lv, lok := s.graph.Value(l)
	rv, rok := s.graph.Value(r)
	if lok && rok {
		if err := rel.Constrain(s, NewTypeContext(), lv, NewTypeContext(), rv, block, cause); err != nil {
			return err
		}
	}

	// A metavariable's lower bounds are edges into its Usage node and its
	// upper bounds are edges out of its Value node (Graph.CheckValue), so
	// composing through a metavariable pairs those two nodes.
	into, outOf := l, r
	if mv, ok := s.metaByNode.Get(l); ok && l == mv.ValueNode {
		into = mv.UsageNode
	}
	if mv, ok := s.metaByNode.Get(r); ok && r == mv.UsageNode {
		outOf = mv.ValueNode
	}
	for _, e := range s.constrain.To(into) {
		if e.Relation.Key() != rel.Key() {
			continue
		}
		if err := s.constrainNodes(e.Left, r, rel, maxInt(block, e.ShallowestBlock), ComposedCause{Left: e.Cause, Right: cause}); err != nil {
			return err
		}
	}
	for _, e := range s.constrain.From(outOf) {
		if e.Relation.Key() != rel.Key() {
			continue
		}
		if err := s.constrainNodes(l, e.Right, rel, maxInt(block, e.ShallowestBlock), ComposedCause{Left: cause, Right: e.Cause}); err != nil {
			return err
		}
	}

	if err := s.induceLeftCalls(l, r, rel, block, cause); err != nil {
		return err
	}
	if err := s.induceRightCalls(l, r, rel, block, cause); err != nil {
		return err
	}
	return nil
}

// induceLeftCalls: a new l<=r edge under rel composes with any existing
// (l arg)<=other left-call edge rooted at l, refreshing the induced
// application now that l has a new upper bound r (spec §4.G "left-call
// composition").
func (s *TypecheckerState) induceLeftCalls(l, r NodeID, rel Relation, block int, cause Cause) error {
	if rv, ok := s.graph.Value(r); ok {
		for _, e := range s.leftCall.From(l) {
			applied := s.Apply(rv, mustValue(s, e.Arg))
			appliedNode := s.graph.CheckValue(applied, false)
			if err := s.constrainNodes(appliedNode, e.Right, e.Relation, maxInt(block, e.ShallowestBlock), ComposedCause{Left: cause, Right: e.Cause}); err != nil {
				return err
			}
		}
	}
	return nil
}

// induceRightCalls mirrors induceLeftCalls for right-call edges rooted
// at r: a new l<=r edge refreshes other<=(r arg) once r has a new lower
// bound l.
func (s *TypecheckerState) induceRightCalls(l, r NodeID, rel Relation, block int, cause Cause) error {
	if lv, ok := s.graph.Value(l); ok {
		for _, e := range s.rightCall.To(r) {
			applied := s.Apply(lv, mustValue(s, e.Arg))
			appliedNode := s.graph.CheckValue(applied, true)
			if err := s.constrainNodes(e.Left, appliedNode, e.Relation, maxInt(block, e.ShallowestBlock), ComposedCause{Left: e.Cause, Right: cause}); err != nil {
				return err
			}
		}
	}
	return nil
}

func mustValue(s *TypecheckerState, n NodeID) Flex {
	if v, ok := s.graph.Value(n); ok {
		return v
	}
	return StuckFree{Var: &UniqueToken{Debug: SpannedName{Name: "unresolved-node"}}}
}

// FlowLeftCall registers "(lval arg) <= rval" (spec §4.G step 1, "left
// call edge"): used when the elaborator needs to apply a
// not-yet-fully-known function value (e.g. one side of a pi comparison
// still pinned on a metavariable).
func (s *TypecheckerState) FlowLeftCall(lctx TypeContext, lval Flex, arg Flex, rctx TypeContext, rval Flex, rel Relation, block int, cause Cause) error {
	lNode := s.graph.CheckValue(lval, false)
	argNode := s.graph.CheckValue(arg, false)
	rNode := s.graph.CheckValue(rval, true)
	edge := LeftCallEdge{Left: lNode, Arg: argNode, Right: rNode, Relation: rel, ShallowestBlock: block, Cause: cause}
	if _, inserted := s.leftCall.Insert(edge); !inserted {
		return nil
	}
	if lv, ok := s.graph.Value(lNode); ok {
		applied := s.Apply(lv, arg)
		return s.constrainNodes(s.graph.CheckValue(applied, false), rNode, rel, block, cause)
	}
	return nil
}

// FlowRightCall registers "lval <= (rval arg)" (spec §4.G step 1,
// "right call edge").
func (s *TypecheckerState) FlowRightCall(lctx TypeContext, lval Flex, rctx TypeContext, rval Flex, arg Flex, rel Relation, block int, cause Cause) error {
	lNode := s.graph.CheckValue(lval, false)
	rNode := s.graph.CheckValue(rval, true)
	argNode := s.graph.CheckValue(arg, false)
	edge := RightCallEdge{Left: lNode, Right: rNode, Arg: argNode, Relation: rel, ShallowestBlock: block, Cause: cause}
	if _, inserted := s.rightCall.Insert(edge); !inserted {
		return nil
	}
	if rv, ok := s.graph.Value(rNode); ok {
		applied := s.Apply(rv, arg)
		return s.constrainNodes(lNode, s.graph.CheckValue(applied, true), rel, block, cause)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
