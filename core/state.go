package core

import "fmt"

// TypecheckerState is the root object a host program drives: it owns
// the node table, the three edge stores, the metavariable/unique
// counters, the host integration registries, and the memo caches that
// make repeated Infer/Check/Eval calls over the same (term, context)
// cheap (spec §4.H "the whole system is one shadowable unit").
//
// Every mutable piece is a Journal (or a Graph/EdgeStore built on one),
// so Speculate can shadow the entire state with one call per field and
// commit or revert it atomically.
type TypecheckerState struct {
	parent *TypecheckerState

	graph     *Graph
	constrain *EdgeStore[ConstrainEdge]
	leftCall  *EdgeStore[LeftCallEdge]
	rightCall *EdgeStore[RightCallEdge]

	metaNext   uint64
	uniqueNext uint64
	blockLevel int

	hostSrels       *Journal[string, hostSrelEntry]
	effectHandlers  *Journal[string, EffectHandler]
	hostIntrinsics  *Journal[string, Flex] // memoised compiled host functions, by source text
	inferMemo       *Journal[memoKey, inferResult]
	checkMemo       *Journal[memoKey, error]
	evalMemo        *Journal[memoKey, Flex]
	metaByNode      *Journal[NodeID, *Metavariable] // reverse lookup for quoteNode, see core/eval.go

	trace *Tracer
}

type hostSrelEntry struct {
	Variance []Variance
	Relation Relation
}

// EffectHandler is what register_effect_handler installs: given an
// effect's payload value it performs the effect and returns the
// resume value (spec §4.C "program evaluation", §8 effect scenario).
type EffectHandler func(payload Flex) (Flex, error)

// NewTypecheckerState returns a fresh root state with empty graph,
// edge stores, and registries.
func NewTypecheckerState() *TypecheckerState {
	return &TypecheckerState{
		graph:          NewGraph(),
		constrain:      NewEdgeStore[ConstrainEdge](),
		leftCall:       NewEdgeStore[LeftCallEdge](),
		rightCall:      NewEdgeStore[RightCallEdge](),
		hostSrels:      NewJournal[string, hostSrelEntry](),
		effectHandlers: NewJournal[string, EffectHandler](),
		hostIntrinsics: NewJournal[string, Flex](),
		inferMemo:      NewJournal[memoKey, inferResult](),
		checkMemo:      NewJournal[memoKey, error](),
		evalMemo:       NewJournal[memoKey, Flex](),
		metaByNode:     NewJournal[NodeID, *Metavariable](),
		trace:          newTracer(),
	}
}

// FreshMetavariable allocates a new metavariable at the state's current
// block level (spec §4.G step 0). label is used only for traces.
func (s *TypecheckerState) FreshMetavariable(label string, trait bool) *Metavariable {
	s.metaNext++
	id := s.metaNext
	value, usage := s.graph.AllocMetaNodes(fmt.Sprintf("%s#%d", label, id))
	mv := &Metavariable{ID: id, ValueNode: value, UsageNode: usage, Trait: trait, BlockLevel: s.blockLevel}
	s.metaByNode.Set(value, mv)
	s.metaByNode.Set(usage, mv)
	return mv
}

// FreshUnique allocates a new opaque witness token (used by
// FunctionRelation, the pi comparison rule and the tuple/record
// descriptor relations as the argument both sides are applied to).
func (s *TypecheckerState) FreshUnique(label string) Flex {
	s.uniqueNext++
	return StuckFree{Var: &UniqueToken{ID: s.uniqueNext, Debug: SpannedName{Name: label}}}
}

// RegisterHostSrel installs a host subtype relation for a
// host_user_defined_type family identified by id: variance per type
// argument, plus the relation used to compare same-family instances
// once variance has been applied to each argument (spec §4.F, §6).
func (s *TypecheckerState) RegisterHostSrel(id string, variance []Variance, rel Relation) {
	s.hostSrels.Set(id, hostSrelEntry{Variance: variance, Relation: rel})
}

func (s *TypecheckerState) lookupHostSrel(id string) (hostSrelEntry, bool) {
	return s.hostSrels.Get(id)
}

// RegisterEffectHandler installs the handler invoked when an effectful
// program step names this effect id (spec §4.C, §8).
func (s *TypecheckerState) RegisterEffectHandler(id string, h EffectHandler) {
	s.effectHandlers.Set(id, h)
}

func (s *TypecheckerState) lookupEffectHandler(id string) (EffectHandler, bool) {
	return s.effectHandlers.Get(id)
}

// Shadow opens a speculative child state: every journal-backed field is
// shadowed and blockLevel is incremented, so metavariables allocated
// inside are tagged as belonging to this speculative block (spec §4.G
// step 0, §4.H).
func (s *TypecheckerState) Shadow() *TypecheckerState {
	return &TypecheckerState{
		parent:         s,
		graph:          s.graph.Shadow(),
		constrain:      s.constrain.Shadow(),
		leftCall:       s.leftCall.Shadow(),
		rightCall:      s.rightCall.Shadow(),
		metaNext:       s.metaNext,
		uniqueNext:     s.uniqueNext,
		blockLevel:     s.blockLevel + 1,
		hostSrels:      s.hostSrels.Shadow(),
		effectHandlers: s.effectHandlers.Shadow(),
		hostIntrinsics: s.hostIntrinsics.Shadow(),
		inferMemo:      s.inferMemo.Shadow(),
		checkMemo:      s.checkMemo.Shadow(),
		evalMemo:       s.evalMemo.Shadow(),
		metaByNode:     s.metaByNode.Shadow(),
		trace:          s.trace,
	}
}

// Commit flattens a shadowed state's writes into its parent.
func (s *TypecheckerState) Commit() {
	if s.parent == nil {
		panic("core: Commit of a root TypecheckerState")
	}
	s.graph.Commit()
	s.constrain.Commit()
	s.leftCall.Commit()
	s.rightCall.Commit()
	s.hostSrels.Commit()
	s.effectHandlers.Commit()
	s.hostIntrinsics.Commit()
	s.inferMemo.Commit()
	s.checkMemo.Commit()
	s.evalMemo.Commit()
	s.metaByNode.Commit()
	if s.metaNext > s.parent.metaNext {
		s.parent.metaNext = s.metaNext
	}
	if s.uniqueNext > s.parent.uniqueNext {
		s.parent.uniqueNext = s.uniqueNext
	}
}

// Revert discards a shadowed state's writes.
func (s *TypecheckerState) Revert() {
	if s.parent == nil {
		panic("core: Revert of a root TypecheckerState")
	}
	s.graph.Revert()
	s.constrain.Revert()
	s.leftCall.Revert()
	s.rightCall.Revert()
	s.hostSrels.Revert()
	s.effectHandlers.Revert()
	s.hostIntrinsics.Revert()
	s.inferMemo.Revert()
	s.checkMemo.Revert()
	s.evalMemo.Revert()
	s.metaByNode.Revert()
}

// Speculate runs fn against a shadow of s, committing the shadow's
// effects into s iff fn returns a nil error and reverting them
// otherwise. This is the standard shape for the elaborator's "try A,
// fall back to B" moves (spec §4.E tuple-elim dual path, §9).
func (s *TypecheckerState) Speculate(fn func(sh *TypecheckerState) error) error {
	sh := s.Shadow()
	if err := fn(sh); err != nil {
		sh.Revert()
		return err
	}
	sh.Commit()
	return nil
}
