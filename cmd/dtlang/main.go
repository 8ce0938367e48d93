// Command dtlang is a tiny driver over the core package: it does not
// parse surface syntax (out of scope, spec.md §1) but instead loads one
// of the built-in fixture scenarios (standing in for "the core receives
// an already-built inferrable term" from an external parser), infers
// its type, evaluates it, and prints the result. Modeled on
// peac/main.go's flag-parsing/pipeline-wiring shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eaburns/dtlang/core"
	"github.com/eaburns/dtlang/fixture"
)

var scenario = flag.String("scenario", "identity", "fixture scenario to run: identity, implicit")

func main() {
	flag.Parse()
	if err := run(*scenario); err != nil {
		die("%s", err)
	}
}

func run(name string) error {
	s := core.NewTypecheckerState()

	var ctx core.TypeContext
	var term core.Inferrable
	switch name {
	case "identity":
		ctx = core.NewTypeContext()
		term = fixture.IdentityPolymorphism()
	case "implicit":
		ctx, term = fixture.ImplicitInsertionContext(s)
	default:
		return fmt.Errorf("unknown scenario %q (want identity or implicit)", name)
	}

	typed, typ, _, err := s.Infer(ctx, term)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	val := s.Eval(typed, ctx.Runtime)

	fmt.Printf("type:  %s\n", core.PrettyPrint(typ))
	fmt.Printf("value: %s\n", core.PrettyPrint(val))
	return nil
}

func die(f string, vs ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", vs...)
	os.Exit(1)
}
