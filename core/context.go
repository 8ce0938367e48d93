package core

// binding is one (value, name, debug) triple held in a RuntimeContext.
type binding struct {
	value Flex
	name  string
	debug SpannedName
}

// RuntimeContext is an ordered, 1-based-addressed sequence of bindings.
// Append never mutates the receiver: it returns a new context built over
// a fresh backing array, so a speculative branch's extension can never
// leak into, or be corrupted by, its parent (spec §3.3, §4.B structural
// sharing).
type RuntimeContext struct {
	bindings []binding
}

// Len returns the number of bindings.
func (c RuntimeContext) Len() int { return len(c.bindings) }

// Append returns a new context with (value, name, debug) bound at index
// Len()+1.
func (c RuntimeContext) Append(v Flex, name string, debug SpannedName) RuntimeContext {
	next := make([]binding, len(c.bindings)+1)
	copy(next, c.bindings)
	next[len(c.bindings)] = binding{value: v, name: name, debug: debug}
	return RuntimeContext{bindings: next}
}

// Get returns the value and debug info bound at the given 1-based
// index. Callers that hold a Placeholder for this index must compare
// the returned SpannedName against the one stored on the placeholder
// (spec §3.3); a mismatch is a fatal "debug mismatch" bug, not a normal
// error (see core/errors.go).
func (c RuntimeContext) Get(index int) (Flex, SpannedName) {
	b := c.bindings[index-1]
	return b.value, b.debug
}

// Name returns the display name bound at index.
func (c RuntimeContext) Name(index int) string { return c.bindings[index-1].name }

// FormatNames returns all bound names in index order, for diagnostics.
func (c RuntimeContext) FormatNames() []string {
	names := make([]string, len(c.bindings))
	for i, b := range c.bindings {
		names[i] = b.name
	}
	return names
}

// declBinding is the typechecking-context-only half of a binding: its
// declared type plus debug info (the runtime value, if any, lives in
// the parallel RuntimeContext).
type declBinding struct {
	typ   Flex
	name  string
	debug SpannedName
}

// TypeContext is a RuntimeContext plus a parallel sequence of declared
// types and the set of names in scope, used by the elaborator (spec
// §3.3).
type TypeContext struct {
	Runtime RuntimeContext
	decls   []declBinding
	names   map[string]int // name -> 1-based index of its innermost binding
}

// NewTypeContext returns the empty typechecking context.
func NewTypeContext() TypeContext {
	return TypeContext{names: map[string]int{}}
}

// Len returns the number of declared bindings (always equal to
// Runtime.Len()).
func (c TypeContext) Len() int { return len(c.decls) }

// Append extends both the runtime and the declared-type sequence with a
// new binding, shadowing any prior binding of the same name.
func (c TypeContext) Append(v Flex, typ Flex, name string, debug SpannedName) TypeContext {
	names := make(map[string]int, len(c.names)+1)
	for k, v := range c.names {
		names[k] = v
	}
	decls := make([]declBinding, len(c.decls)+1)
	copy(decls, c.decls)
	decls[len(c.decls)] = declBinding{typ: typ, name: name, debug: debug}
	names[name] = len(decls)
	return TypeContext{
		Runtime: c.Runtime.Append(v, name, debug),
		decls:   decls,
		names:   names,
	}
}

// GetType returns the declared type and debug info at a 1-based index.
func (c TypeContext) GetType(index int) (Flex, SpannedName) {
	d := c.decls[index-1]
	return d.typ, d.debug
}

// Lookup resolves a name to its innermost binding's index.
func (c TypeContext) Lookup(name string) (int, bool) {
	i, ok := c.names[name]
	return i, ok
}

// FormatNames lists every declared name in index order.
func (c TypeContext) FormatNames() []string { return c.Runtime.FormatNames() }

// Usages is a per-binding reference-count vector, parallel to a
// TypeContext's declared bindings; index i-1 holds the count for
// context index i. Usage vectors are accumulated additively by the
// elaborator and trimmed when a binder's own usage is dropped from a
// returned vector (spec §4.E, lambda case).
type Usages []int

// NewUsages returns a zeroed usage vector sized to ctxLen.
func NewUsages(ctxLen int) Usages { return make(Usages, ctxLen) }

// Add returns the pointwise sum of a and b, padding the shorter vector
// with zeros.
func (a Usages) Add(b Usages) Usages {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Usages, n)
	copy(out, a)
	for i, v := range b {
		out[i] += v
	}
	return out
}

// DropLast returns a without its final entry (used when a lambda drops
// its own parameter's usage count before returning to its caller).
func (a Usages) DropLast() Usages {
	if len(a) == 0 {
		return a
	}
	return append(Usages(nil), a[:len(a)-1]...)
}

// Inc increments the usage count at a 1-based index, growing the vector
// if necessary.
func (a *Usages) Inc(index int) {
	for len(*a) < index {
		*a = append(*a, 0)
	}
	(*a)[index-1]++
}
