package core_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/eaburns/dtlang/core"
)

// diffOpts lets tests compare terms and values with cmp.Diff instead of
// hand-rolled type assertions, matching checker/func_test.go's pattern in
// the teacher repo. cmp refuses to traverse an unexported field
// (strictBase/stuckBase/typedBase) without being told which concrete
// types to ignore it on, so every Flex/Typed struct a test compares
// needs listing here; extend as new tests need new shapes.
var diffOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(
		core.HostNumberType{},
		core.HostStringType{},
		core.HostBoolType{},
		core.HostValue{},
		core.TupleValue{},
		core.EnumValue{},
	),
}
