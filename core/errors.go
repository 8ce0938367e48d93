package core

import "fmt"

// ErrorKind classifies failures per spec §7: Structural (a term shape
// the elaborator did not expect), Elaboration (infer/check could not
// produce a type), Solver (a constraint comparison failed), and Lost
// (failure attributable only to a LostCause - a range whose precise
// derivation was discarded when it was unpacked).
type ErrorKind int

// ErrSolver is the zero value, so a ConstraintError built without
// KindOf reports Solver.
const (
	ErrSolver ErrorKind = iota
	ErrStructural
	ErrElaboration
	ErrLost
)

func (k ErrorKind) String() string {
	switch k {
	case ErrStructural:
		return "structural"
	case ErrElaboration:
		return "elaboration"
	case ErrSolver:
		return "solver"
	case ErrLost:
		return "lost"
	default:
		return "unknown"
	}
}

// ConstraintError is the error value every solver/elaborator failure
// path returns. Desc is the one-line human summary; Cause, when
// present, is the derivation tree that produced the failing
// obligation. Left/Right record the two sides under comparison when
// the failure came from a relation's Constrain (nil otherwise).
type ConstraintError struct {
	KindOf ErrorKind
	Desc   string
	Left   Flex
	Right  Flex
	Cause  Cause
}

func (e *ConstraintError) Error() string {
	msg := e.Desc
	if e.Left != nil || e.Right != nil {
		msg = fmt.Sprintf("%s: %s <: %s", msg, PrettyPrint(e.Left), PrettyPrint(e.Right))
	}
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (%s)", msg, e.Cause)
}

// Kind reports which of the four §7 categories this error belongs to,
// defaulting to Solver since most ConstraintError values originate in
// checkConcrete / Relation.Constrain.
func (e *ConstraintError) Kind() ErrorKind {
	if _, ok := e.Cause.(LostCause); ok {
		return ErrLost
	}
	return e.KindOf
}

// structuralError reports a term whose shape the elaborator does not
// recognise in the position it appeared (e.g. a term kind Infer or Check
// has no case for).
func structuralError(span SpannedName, format string, args ...any) error {
	return &ConstraintError{
		KindOf: ErrStructural,
		Desc:   fmt.Sprintf("%s: %s", span.Name, fmt.Sprintf(format, args...)),
		Cause:  PrimitiveCause{Message: fmt.Sprintf(format, args...), Span: span.Span},
	}
}

// elaborationError reports Infer/Check giving up on a term it
// otherwise recognised the shape of (e.g. an unbound variable index, a
// record missing a field the goal demands).
func elaborationError(span SpannedName, format string, args ...any) error {
	return &ConstraintError{
		KindOf: ErrElaboration,
		Desc:   fmt.Sprintf("%s: %s", span.Name, fmt.Sprintf(format, args...)),
		Cause:  PrimitiveCause{Message: fmt.Sprintf(format, args...), Span: span.Span},
	}
}
