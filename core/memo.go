package core

import "fmt"

// memoKey identifies an Infer/Check call by the structural shape of its
// term plus the shape of the context it ran in. Using structural
// content rather than pointer identity is a deliberate simplification
// (mirrors the nodeKey trick in core/graph.go): it misses memoisation
// opportunities a true identity-keyed cache would catch for literally
// shared subterms, but it is sound, since two structurally identical
// (term, context) pairs always elaborate to the same result.
type memoKey string

func makeMemoKey(term any, ctx TypeContext) memoKey {
	return memoKey(fmt.Sprintf("%#v@ctx%#v", term, ctx))
}

// inferResult is what Infer produces and what the infer memo caches.
type inferResult struct {
	Term   Typed
	Type   Flex
	Usages Usages
}

func (s *TypecheckerState) lookupInferMemo(term any, ctx TypeContext) (inferResult, bool) {
	return s.inferMemo.Get(makeMemoKey(term, ctx))
}

func (s *TypecheckerState) storeInferMemo(term any, ctx TypeContext, r inferResult) {
	s.inferMemo.Set(makeMemoKey(term, ctx), r)
}

// makeEvalMemoKey mirrors makeMemoKey for Eval's (term, RuntimeContext)
// identity (spec §4.C, §9: memoising evaluate by (term, context) is
// called out as correctness-critical for tractability, the same way
// Infer is memoised by (term, TypeContext) above).
func makeEvalMemoKey(term Typed, ctx RuntimeContext) memoKey {
	return memoKey(fmt.Sprintf("%#v@runtime%#v", term, ctx))
}

func (s *TypecheckerState) lookupEvalMemo(term Typed, ctx RuntimeContext) (Flex, bool) {
	return s.evalMemo.Get(makeEvalMemoKey(term, ctx))
}

func (s *TypecheckerState) storeEvalMemo(term Typed, ctx RuntimeContext, v Flex) {
	s.evalMemo.Set(makeEvalMemoKey(term, ctx), v)
}
