package core

import (
	"flag"
	"fmt"
	"strings"
)

var traceDepth = flag.Int("core.trace.depth", 0, "max depth for constraint-solver/elaborator trace (0 = no trace; -1 = infinite)")

const traceIndentUnit = "  "

var traceBullets = []string{"*", "-", "+", "o"}

// Tracer prints an indented, bulleted tree of solver/elaborator steps
// when core.trace.depth is non-zero. It holds no state beyond the
// current indent/bullet so a single Tracer can be shared by every
// shadow of a TypecheckerState (spec §9 mentions tracing only as a
// debugging aid, never as something the solver's correctness depends
// on).
type Tracer struct {
	indent string
	bullet int
}

func newTracer() *Tracer { return &Tracer{} }

// Enter prints f/vs as a new bulleted line and returns a function that
// must be called when the traced step finishes, to dedent.
func (t *Tracer) Enter(f string, vs ...any) func() {
	if *traceDepth == 0 {
		return func() {}
	}
	depth := strings.Count(t.indent, traceIndentUnit) + 1
	if *traceDepth > 0 && depth > *traceDepth {
		return func() {}
	}
	t.print(f, vs...)
	savedIndent, savedBullet := t.indent, t.bullet
	t.indent += traceIndentUnit
	t.bullet++
	return func() {
		t.indent = savedIndent
		t.bullet = savedBullet
	}
}

func (t *Tracer) print(f string, vs ...any) {
	s := fmt.Sprintf(f, vs...)
	s = strings.TrimSuffix(s, "\n")
	s = strings.ReplaceAll(s, "\n", "\n"+t.indent+"  ")
	bullet := traceBullets[t.bullet%len(traceBullets)]
	fmt.Println(t.indent + bullet + " " + s)
}
