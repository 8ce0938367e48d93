package core

// This file is the construction facade for the (out-of-scope) parser
// boundary: spec.md §1 says the core receives an already-built
// inferrable term, and the struct literals in term.go leave their
// debug-info base unexported so only this package can set it. These
// constructors are what a real frontend — or the fixture package
// standing in for one — calls to build well-formed terms without
// reaching into inferrableBase/checkableBase directly.

// Dbg is a convenience SpannedName carrying just a name, for fixtures
// and tests that don't need a real source span.
func Dbg(name string) SpannedName { return SpannedName{Name: name} }

func NewVar(debug SpannedName, index int) Var {
	return Var{inferrableBase: inferrableBase{debug: debug}, Index: index}
}

func NewAnnLambda(debug SpannedName, param SpannedName, paramType Checkable, info ParamInfo, body Inferrable) AnnLambda {
	return AnnLambda{inferrableBase: inferrableBase{debug: debug}, Param: param, ParamType: paramType, Info: info, Body: body}
}

func NewPiForm(debug SpannedName, param SpannedName, paramType Checkable, info ParamInfo, result Checkable) PiForm {
	return PiForm{inferrableBase: inferrableBase{debug: debug}, Param: param, ParamType: paramType, Info: info, Result: result}
}

func NewApp(debug SpannedName, fun Inferrable, arg Checkable) App {
	return App{inferrableBase: inferrableBase{debug: debug}, Fun: fun, Arg: arg}
}

func NewTupleCons(debug SpannedName, elems ...Inferrable) TupleCons {
	return TupleCons{inferrableBase: inferrableBase{debug: debug}, Elems: elems}
}

func NewTupleElim(debug SpannedName, subject Inferrable, names []SpannedName, body Inferrable) TupleElim {
	return TupleElim{inferrableBase: inferrableBase{debug: debug}, Subject: subject, Names: names, Body: body}
}

func NewTupleTypeForm(debug SpannedName, desc Inferrable) TupleTypeForm {
	return TupleTypeForm{inferrableBase: inferrableBase{debug: debug}, Desc: desc}
}

func NewRecordCons(debug SpannedName, fields ...RecordField) RecordCons {
	return RecordCons{inferrableBase: inferrableBase{debug: debug}, Fields: fields}
}

func NewRecordElim(debug SpannedName, subject Inferrable, fields []SpannedName, body Inferrable) RecordElim {
	return RecordElim{inferrableBase: inferrableBase{debug: debug}, Subject: subject, Fields: fields, Body: body}
}

func NewEnumCons(debug SpannedName, variant SpannedName, payload Inferrable) EnumCons {
	return EnumCons{inferrableBase: inferrableBase{debug: debug}, Variant: variant, Payload: payload}
}

func NewEnumCase(debug SpannedName, subject Inferrable, arms ...EnumArm) EnumCase {
	return EnumCase{inferrableBase: inferrableBase{debug: debug}, Subject: subject, Arms: arms}
}

func NewEnumTypeForm(debug SpannedName, desc Inferrable) EnumTypeForm {
	return EnumTypeForm{inferrableBase: inferrableBase{debug: debug}, Desc: desc}
}

func NewHostIntrinsic(debug SpannedName, source Checkable, typeExpr Inferrable) HostIntrinsic {
	return HostIntrinsic{inferrableBase: inferrableBase{debug: debug}, Source: source, TypeExpr: typeExpr}
}

func NewHostFuncTypeForm(debug SpannedName, parms []Checkable, ret Checkable) HostFuncTypeForm {
	return HostFuncTypeForm{inferrableBase: inferrableBase{debug: debug}, Parms: parms, Ret: ret}
}

func NewLevelOp(debug SpannedName, op string, args ...Inferrable) LevelOp {
	return LevelOp{inferrableBase: inferrableBase{debug: debug}, Op: op, Args: args}
}

func NewLet(debug SpannedName, name SpannedName, expr Inferrable, body Inferrable) Let {
	return Let{inferrableBase: inferrableBase{debug: debug}, Name: name, Expr: expr, Body: body}
}

func NewProgramSeq(debug SpannedName, name SpannedName, step Inferrable, cont Inferrable) ProgramSeq {
	return ProgramSeq{inferrableBase: inferrableBase{debug: debug}, Name: name, Step: step, Cont: cont}
}

func NewProgramEnd(debug SpannedName, result Inferrable) ProgramEnd {
	return ProgramEnd{inferrableBase: inferrableBase{debug: debug}, Result: result}
}

func NewProgramTypeForm(debug SpannedName, effectDesc Inferrable, result Checkable) ProgramTypeForm {
	return ProgramTypeForm{inferrableBase: inferrableBase{debug: debug}, EffectDesc: effectDesc, Result: result}
}

func NewAnnotated(debug SpannedName, typ Checkable, expr Checkable) Annotated {
	return Annotated{inferrableBase: inferrableBase{debug: debug}, Type: typ, Expr: expr}
}

func NewAlreadyTyped(debug SpannedName, term Typed, typ Flex) AlreadyTyped {
	return AlreadyTyped{inferrableBase: inferrableBase{debug: debug}, Term: term, Type: typ}
}

func NewCheckInferrable(debug SpannedName, term Inferrable) CheckInferrable {
	return CheckInferrable{checkableBase: checkableBase{debug: debug}, Term: term}
}

func NewCheckTupleCons(debug SpannedName, elems ...Checkable) CheckTupleCons {
	return CheckTupleCons{checkableBase: checkableBase{debug: debug}, Elems: elems}
}

func NewCheckHostTupleCons(debug SpannedName, elems ...Checkable) CheckHostTupleCons {
	return CheckHostTupleCons{checkableBase: checkableBase{debug: debug}, Elems: elems}
}

func NewCheckLambda(debug SpannedName, param SpannedName, body Checkable) CheckLambda {
	return CheckLambda{checkableBase: checkableBase{debug: debug}, Param: param, Body: body}
}
