// Package ir lowers a type-checked Nova program into a basic-block
// intermediate representation: one function per source function, each a
// list of blocks ending in an explicit terminator. Unlike a collapsed
// single-value flattening, `if`/`while`/`for`/`loop` lower to real
// branches between blocks here, so wasmgen can walk block successors
// instead of re-deriving control flow from the typed AST.
package ir

import "fmt"

// Module is one compiled program: its functions in declaration order.
type Module struct {
	Functions []*Function
}

// Function is a lowered function: its parameters, declared return type,
// and the basic blocks making up its body. Blocks[0] is always the
// entry block.
type Function struct {
	Name       string
	Params     []Param
	ReturnType Type
	Blocks     []*BasicBlock
	NumLocals  int // number of Alloca slots the function declares
	NumValues  int // number of ValueIDs the function's instructions produce
}

// Param is one lowered parameter.
type Param struct {
	Name string
	Type Type
}

// BlockID identifies a BasicBlock within a Function's Blocks slice by
// index.
type BlockID int

// ValueID identifies an instruction result (or a GetParam) within a
// Function, in definition order across all of its blocks.
type ValueID int

// BasicBlock is a straight-line run of instructions ending in exactly
// one Terminator.
type BasicBlock struct {
	ID           BlockID
	Instructions []Instruction
	Terminator   Terminator
}

// Instruction is one value-producing operation.
type Instruction struct {
	Result ValueID
	Kind   InstructionKind
}

// InstructionKind is the operation an Instruction performs. Only the
// fields that Op uses are meaningful; the rest stay zero.
type InstructionKind struct {
	Op Op

	// Const* operand, set when Op is one of the OpConst* kinds.
	ConstInt    int64
	ConstFloat  float64
	ConstBool   bool
	ConstString string

	// Operand value ids, set for binary/unary/memory ops.
	A, B ValueID

	// Alloca's declared type.
	AllocaType Type

	// Call's target and argument list.
	CallTarget string
	CallArgs   []ValueID

	// GetParam's parameter index.
	ParamIndex int

	// LocalSlot identifies the slot an Alloca declares or a Load/Store targets.
	LocalSlot int
}

// Op names one instruction operation.
type Op int

const (
	OpConstInt Op = iota
	OpConstFloat
	OpConstBool
	OpConstString

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem

	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	OpAnd
	OpOr
	OpNot
	OpBitNot

	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	OpNeg

	OpAlloca
	OpLoad
	OpStore

	OpCall
	OpGetParam
)

var opNames = [...]string{
	OpConstInt: "const.int", OpConstFloat: "const.float", OpConstBool: "const.bool", OpConstString: "const.str",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpRem: "rem",
	OpEq: "eq", OpNe: "ne", OpLt: "lt", OpLe: "le", OpGt: "gt", OpGe: "ge",
	OpAnd: "and", OpOr: "or", OpNot: "not", OpBitNot: "bitnot",
	OpBitAnd: "bitand", OpBitOr: "bitor", OpBitXor: "bitxor", OpShl: "shl", OpShr: "shr",
	OpNeg:      "neg",
	OpAlloca:   "alloca",
	OpLoad:     "load",
	OpStore:    "store",
	OpCall:     "call",
	OpGetParam: "get_param",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// Terminator ends a BasicBlock: either it returns from the function or
// it transfers control to one or two successor blocks. The extra fields
// below exist purely so wasmgen can recover the structured shape
// (if/else vs. loop) lowering already knows, rather than re-deriving it
// by analyzing the block graph: wasm requires nested block/loop/if
// constructs, not arbitrary jumps, and lowering is the only producer of
// this IR, so it is free to tag the shape it built.
type Terminator struct {
	Kind     TerminatorKind
	Value    ValueID // set for TermReturn when the function returns a value
	HasValue bool

	Target BlockID // set for TermBranch

	EntersLoop bool    // set on the Branch that transfers control into a loop's header
	LoopExit   BlockID // set alongside EntersLoop: the block reached once the loop exits

	Cond       ValueID // set for TermCondBranch
	ThenBlock  BlockID // set for TermCondBranch
	ElseBlock  BlockID // set for TermCondBranch
	IsLoopTest bool    // set when a CondBranch is a while/for loop's condition test rather than an if/else branch
	Merge      BlockID // set for an if/else CondBranch: the block both arms converge on
}

// TerminatorKind selects which Terminator fields are meaningful.
type TerminatorKind int

const (
	TermReturn TerminatorKind = iota
	TermBranch
	TermCondBranch
	TermUnreachable
)

// Type is IR's low-level value representation -- coarser than
// semantic.TypeInfo, since wasmgen only needs to distinguish the wire
// representations WASM's MVP numeric types give it.
type Type int

const (
	TypeI32 Type = iota
	TypeI64
	TypeF32
	TypeF64
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeVoid:
		return "void"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}
