package wasmgen

import (
	"bytes"
	"fmt"

	"github.com/novalang/novac/internal/ir"
)

// functionBody encodes one function's locals declaration and
// instruction stream.
//
// wasm instructions operate on an implicit value stack, but ir's
// instructions are a flat list addressed by ValueID, consumed in
// whatever order later instructions need them -- not necessarily the
// order they were produced. Rather than reconstruct a stack schedule,
// every instruction result gets its own dedicated local: produce a
// value, immediately local.set it, and local.get it back whenever a
// later instruction references it as an operand. This is the same
// trick a bootstrap compiler's first non-optimizing backend reaches
// for before any register allocation or stack scheduling pass exists.
func (g *generator) functionBody(fn *ir.Function) ([]byte, error) {
	regType, allocaType, err := computeRegTypes(fn, g)
	if err != nil {
		return nil, err
	}

	paramCount := len(fn.Params)
	fe := &funcEmitter{
		g:          g,
		fn:         fn,
		regType:    regType,
		allocaType: allocaType,
	}
	fe.allocaLocal = make([]int, fn.NumLocals)
	for i := range fe.allocaLocal {
		fe.allocaLocal[i] = paramCount + i
	}
	fe.valueLocal = make([]int, fn.NumValues)
	for i := range fe.valueLocal {
		fe.valueLocal[i] = paramCount + fn.NumLocals + i
	}

	fe.emitUntil(0, ir.BlockID(-1))
	fe.out.WriteByte(0x0B) // end function body

	var body bytes.Buffer
	writeLocalDecls(&body, allocaType, regType)
	body.Write(fe.out.Bytes())
	return body.Bytes(), nil
}

// writeLocalDecls emits the locals declaration vector: one run per
// distinct value type, since wasm groups consecutive same-typed locals
// under a single (count, type) pair rather than declaring each locally
// one at a time.
func writeLocalDecls(out *bytes.Buffer, allocaType, regType []ir.Type) {
	var runs []struct {
		count uint64
		typ   byte
	}
	push := func(t ir.Type) {
		vt, err := valType(t)
		if err != nil {
			vt = 0x7F // unused/void-typed slots still need a concrete wasm type
		}
		if len(runs) > 0 && runs[len(runs)-1].typ == vt {
			runs[len(runs)-1].count++
			return
		}
		runs = append(runs, struct {
			count uint64
			typ   byte
		}{1, vt})
	}
	for _, t := range allocaType {
		push(t)
	}
	for _, t := range regType {
		push(t)
	}
	writeULEB128(out, uint64(len(runs)))
	for _, r := range runs {
		writeULEB128(out, r.count)
		out.WriteByte(r.typ)
	}
}

// computeRegTypes assigns a wasm value type to every instruction
// result and every alloca slot in a single forward pass. ValueIDs are
// produced in strictly increasing order across a function's blocks, so
// an instruction's operands are always already typed by the time it is
// reached.
//
// Integer arithmetic/comparison/logical results are typed uniformly as
// i32: Nova's checker distinguishes i8..i128 widths, but propagating
// that fidelity into IR would require a full per-instruction type
// pass duplicating the checker's own work. f64 is used for float
// constants and anything computed from them. This keeps the generated
// module valid and internally consistent at the cost of exact width
// fidelity, a scope this WASM MVP backend doesn't need.
func computeRegTypes(fn *ir.Function, g *generator) ([]ir.Type, []ir.Type, error) {
	regType := make([]ir.Type, fn.NumValues)
	allocaType := make([]ir.Type, fn.NumLocals)

	for _, bb := range fn.Blocks {
		for _, inst := range bb.Instructions {
			k := inst.Kind
			switch k.Op {
			case ir.OpConstInt, ir.OpConstBool, ir.OpConstString:
				regType[inst.Result] = ir.TypeI32
			case ir.OpConstFloat:
				regType[inst.Result] = ir.TypeF64
			case ir.OpAlloca:
				allocaType[k.LocalSlot] = k.AllocaType
				regType[inst.Result] = ir.TypeI32
			case ir.OpGetParam:
				if k.ParamIndex < 0 || k.ParamIndex >= len(fn.Params) {
					return nil, nil, fmt.Errorf("get_param %d out of range", k.ParamIndex)
				}
				regType[inst.Result] = fn.Params[k.ParamIndex].Type
			case ir.OpLoad:
				regType[inst.Result] = allocaType[k.LocalSlot]
			case ir.OpStore:
				regType[inst.Result] = ir.TypeI32
			case ir.OpCall:
				ret, ok := g.funcReturn[k.CallTarget]
				if !ok {
					return nil, nil, fmt.Errorf("call to undeclared function %q", k.CallTarget)
				}
				regType[inst.Result] = ret
			case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe, ir.OpAnd, ir.OpOr, ir.OpNot:
				regType[inst.Result] = ir.TypeI32 // comparisons and logical ops always yield a boolean
			default: // arithmetic, bitwise, neg, bitnot: propagate from the first operand
				regType[inst.Result] = regType[k.A]
			}
		}
	}
	return regType, allocaType, nil
}

// funcEmitter walks one function's basic-block graph and emits
// structured wasm control flow (block/loop/if) for it. labels tracks
// the IR block each currently-open wasm construct resolves to, so a
// branch or break deep inside nested control flow can still compute
// the right relative depth for br/br_if.
type funcEmitter struct {
	g          *generator
	fn         *ir.Function
	out        bytes.Buffer
	regType    []ir.Type
	allocaType []ir.Type
	allocaLocal []int
	valueLocal  []int
	labels      []ir.BlockID
}

func (fe *funcEmitter) pushLabel(target ir.BlockID) { fe.labels = append(fe.labels, target) }
func (fe *funcEmitter) popLabel()                   { fe.labels = fe.labels[:len(fe.labels)-1] }

// depthTo returns the relative branch depth to the innermost open
// construct whose continuation point is target, or false if none is
// currently open (the target is only reachable by linear fallthrough).
func (fe *funcEmitter) depthTo(target ir.BlockID) (int, bool) {
	for i := len(fe.labels) - 1; i >= 0; i-- {
		if fe.labels[i] == target {
			return len(fe.labels) - 1 - i, true
		}
	}
	return 0, false
}

// emitUntil walks blocks starting at id, following branches and
// emitting structured control flow for if/else and loops, stopping
// once control reaches `until` (normal fallthrough) or a block whose
// terminator is handled by emitting an explicit br/return/unreachable.
func (fe *funcEmitter) emitUntil(id, until ir.BlockID) {
	for {
		if id == until {
			return
		}
		bb := fe.fn.Blocks[id]
		fe.emitInstructions(bb.Instructions)
		t := bb.Terminator

		switch t.Kind {
		case ir.TermReturn:
			fe.emitReturn(t)
			return

		case ir.TermUnreachable:
			fe.out.WriteByte(0x00) // unreachable
			return

		case ir.TermBranch:
			if t.EntersLoop {
				fe.emitLoop(t.Target, t.LoopExit)
				id = t.LoopExit
				continue
			}
			if depth, ok := fe.depthTo(t.Target); ok {
				fe.emitBr(depth)
				return
			}
			id = t.Target
			continue

		case ir.TermCondBranch:
			merge := t.Merge
			fe.emitIf(t.Cond, t.ThenBlock, t.ElseBlock, merge)
			id = merge
			continue

		default:
			return
		}
	}
}

// emitLoop wraps a while/for/loop body in wasm's standard
// block+loop pair: the outer block is the break target, the inner loop
// is the continue target. header is the loop's condition block (for
// while/for) or its body block (for an unconditional loop).
func (fe *funcEmitter) emitLoop(header, exit ir.BlockID) {
	fe.out.WriteByte(0x02) // block
	fe.out.WriteByte(0x40) // void blocktype
	fe.pushLabel(exit)

	fe.out.WriteByte(0x03) // loop
	fe.out.WriteByte(0x40)
	fe.pushLabel(header)

	bb := fe.fn.Blocks[header]
	if bb.Terminator.Kind == ir.TermCondBranch && bb.Terminator.IsLoopTest {
		t := bb.Terminator
		fe.emitInstructions(bb.Instructions)
		fe.emitLoadValue(t.Cond)
		fe.out.WriteByte(0x45) // i32.eqz: invert "keep going" into "exit now"
		depth, _ := fe.depthTo(exit)
		fe.out.WriteByte(0x0D) // br_if
		writeULEB128(&fe.out, uint64(depth))
		// The body may contain its own nested control flow before
		// reaching back to header; emitUntil walks it generically and
		// the trailing br below closes the iteration.
		fe.emitUntil(t.ThenBlock, header)
		fe.out.WriteByte(0x0C) // br back to loop top
		writeULEB128(&fe.out, 0)
	} else {
		// An unconditional loop has no separate condition block: its
		// back-edge lives wherever the body's lowering last left off,
		// possibly past nested control flow reserved after header. Let
		// the generic walker find it via depthTo(header) rather than
		// assuming it sits on header's own stored terminator.
		fe.emitUntil(header, ir.BlockID(-1))
	}

	fe.popLabel()
	fe.out.WriteByte(0x0B) // end loop
	fe.popLabel()
	fe.out.WriteByte(0x0B) // end block
}

func (fe *funcEmitter) emitIf(cond ir.ValueID, thenBlock, elseBlock, merge ir.BlockID) {
	fe.emitLoadValue(cond)
	fe.out.WriteByte(0x04) // if
	fe.out.WriteByte(0x40)
	fe.pushLabel(merge)
	fe.emitUntil(thenBlock, merge)
	fe.out.WriteByte(0x05) // else
	fe.emitUntil(elseBlock, merge)
	fe.popLabel()
	fe.out.WriteByte(0x0B) // end if
}

func (fe *funcEmitter) emitBr(depth int) {
	fe.out.WriteByte(0x0C)
	writeULEB128(&fe.out, uint64(depth))
}

func (fe *funcEmitter) emitReturn(t ir.Terminator) {
	if t.HasValue {
		fe.emitLoadValue(t.Value)
	}
	fe.out.WriteByte(0x0F) // return
}

func (fe *funcEmitter) emitLoadValue(v ir.ValueID) {
	fe.out.WriteByte(0x20) // local.get
	writeULEB128(&fe.out, uint64(fe.valueLocal[v]))
}

func (fe *funcEmitter) emitStoreResult(v ir.ValueID) {
	fe.out.WriteByte(0x21) // local.set
	writeULEB128(&fe.out, uint64(fe.valueLocal[v]))
}

func (fe *funcEmitter) emitInstructions(insts []ir.Instruction) {
	for _, inst := range insts {
		fe.emitInstruction(inst)
	}
}

func (fe *funcEmitter) emitInstruction(inst ir.Instruction) {
	k := inst.Kind
	switch k.Op {
	case ir.OpConstInt:
		t := fe.regType[inst.Result]
		if t == ir.TypeI64 {
			fe.out.WriteByte(0x42)
			writeSLEB128(&fe.out, k.ConstInt)
		} else {
			fe.out.WriteByte(0x41)
			writeSLEB128(&fe.out, k.ConstInt)
		}
		fe.emitStoreResult(inst.Result)

	case ir.OpConstBool:
		fe.out.WriteByte(0x41)
		if k.ConstBool {
			writeSLEB128(&fe.out, 1)
		} else {
			writeSLEB128(&fe.out, 0)
		}
		fe.emitStoreResult(inst.Result)

	case ir.OpConstString:
		// No linear-memory/data-section support: strings lower to a
		// placeholder null offset.
		fe.out.WriteByte(0x41)
		writeSLEB128(&fe.out, 0)
		fe.emitStoreResult(inst.Result)

	case ir.OpConstFloat:
		t := fe.regType[inst.Result]
		if t == ir.TypeF32 {
			fe.out.WriteByte(0x43)
			writeF32(&fe.out, k.ConstFloat)
		} else {
			fe.out.WriteByte(0x44)
			writeF64(&fe.out, k.ConstFloat)
		}
		fe.emitStoreResult(inst.Result)

	case ir.OpGetParam:
		fe.out.WriteByte(0x20) // local.get <paramIndex>: params are wasm locals 0..n-1
		writeULEB128(&fe.out, uint64(k.ParamIndex))
		fe.emitStoreResult(inst.Result)

	case ir.OpAlloca:
		// No initializer needed: wasm zero-initializes every declared local.

	case ir.OpLoad:
		fe.out.WriteByte(0x20)
		writeULEB128(&fe.out, uint64(fe.allocaLocal[k.LocalSlot]))
		fe.emitStoreResult(inst.Result)

	case ir.OpStore:
		fe.emitLoadValue(k.A)
		fe.out.WriteByte(0x21)
		writeULEB128(&fe.out, uint64(fe.allocaLocal[k.LocalSlot]))

	case ir.OpCall:
		idx, ok := fe.g.funcIndex[k.CallTarget]
		if !ok {
			idx = 0 // unresolved target: emit a well-formed but meaningless call rather than a malformed module
		}
		for _, a := range k.CallArgs {
			fe.emitLoadValue(a)
		}
		fe.out.WriteByte(0x10) // call
		writeULEB128(&fe.out, uint64(idx))
		if fe.g.funcReturn[k.CallTarget] != ir.TypeVoid {
			fe.emitStoreResult(inst.Result)
		}

	case ir.OpNeg:
		fe.emitUnaryNeg(inst)

	case ir.OpNot:
		fe.emitLoadValue(k.A)
		fe.out.WriteByte(0x45) // i32.eqz: correct for a genuine 0/1 boolean
		fe.emitStoreResult(inst.Result)

	case ir.OpBitNot:
		fe.emitBitNot(inst)

	default:
		fe.emitBinary(inst)
	}
}

func (fe *funcEmitter) emitUnaryNeg(inst ir.Instruction) {
	k := inst.Kind
	t := fe.regType[k.A]
	switch t {
	case ir.TypeF32:
		fe.emitLoadValue(k.A)
		fe.out.WriteByte(0x8C) // f32.neg
	case ir.TypeF64:
		fe.emitLoadValue(k.A)
		fe.out.WriteByte(0x9A) // f64.neg
	case ir.TypeI64:
		fe.out.WriteByte(0x42) // i64.const 0
		writeSLEB128(&fe.out, 0)
		fe.emitLoadValue(k.A)
		fe.out.WriteByte(0x7D) // i64.sub
	default:
		fe.out.WriteByte(0x41) // i32.const 0
		writeSLEB128(&fe.out, 0)
		fe.emitLoadValue(k.A)
		fe.out.WriteByte(0x6B) // i32.sub
	}
	fe.emitStoreResult(inst.Result)
}

func (fe *funcEmitter) emitBitNot(inst ir.Instruction) {
	k := inst.Kind
	fe.emitLoadValue(k.A)
	if fe.regType[k.A] == ir.TypeI64 {
		fe.out.WriteByte(0x42) // i64.const -1
		writeSLEB128(&fe.out, -1)
		fe.out.WriteByte(0x85) // i64.xor
	} else {
		fe.out.WriteByte(0x41) // i32.const -1
		writeSLEB128(&fe.out, -1)
		fe.out.WriteByte(0x73) // i32.xor
	}
	fe.emitStoreResult(inst.Result)
}

func (fe *funcEmitter) emitBinary(inst ir.Instruction) {
	k := inst.Kind
	opType := fe.regType[k.A]
	fe.emitLoadValue(k.A)
	fe.emitLoadValue(k.B)
	fe.out.WriteByte(binOpcode(k.Op, opType))
	fe.emitStoreResult(inst.Result)
}

// binOpcode selects the wasm opcode for a binary IR op at a given
// operand type. Logical And/Or are kept distinct instruction kinds
// from bitwise BitAnd/BitOr at the IR level; both still lower to the
// same i32.and/i32.or opcodes here because wasm has no separate boolean
// type -- not a conflation, just wasm's actual type system.
func binOpcode(op ir.Op, t ir.Type) byte {
	switch t {
	case ir.TypeF32:
		switch op {
		case ir.OpAdd:
			return 0x92
		case ir.OpSub:
			return 0x93
		case ir.OpMul:
			return 0x94
		case ir.OpDiv:
			return 0x95
		case ir.OpEq:
			return 0x5B
		case ir.OpNe:
			return 0x5C
		case ir.OpLt:
			return 0x5D
		case ir.OpGt:
			return 0x5E
		case ir.OpLe:
			return 0x5F
		case ir.OpGe:
			return 0x60
		}
	case ir.TypeF64:
		switch op {
		case ir.OpAdd:
			return 0xA0
		case ir.OpSub:
			return 0xA1
		case ir.OpMul:
			return 0xA2
		case ir.OpDiv:
			return 0xA3
		case ir.OpEq:
			return 0x61
		case ir.OpNe:
			return 0x62
		case ir.OpLt:
			return 0x63
		case ir.OpGt:
			return 0x64
		case ir.OpLe:
			return 0x65
		case ir.OpGe:
			return 0x66
		}
	case ir.TypeI64:
		switch op {
		case ir.OpAdd:
			return 0x7C
		case ir.OpSub:
			return 0x7D
		case ir.OpMul:
			return 0x7E
		case ir.OpDiv:
			return 0x7F
		case ir.OpRem:
			return 0x81
		case ir.OpAnd, ir.OpBitAnd:
			return 0x83
		case ir.OpOr, ir.OpBitOr:
			return 0x84
		case ir.OpBitXor:
			return 0x85
		case ir.OpShl:
			return 0x86
		case ir.OpShr:
			return 0x87
		case ir.OpEq:
			return 0x51
		case ir.OpNe:
			return 0x52
		case ir.OpLt:
			return 0x53
		case ir.OpGt:
			return 0x55
		case ir.OpLe:
			return 0x57
		case ir.OpGe:
			return 0x59
		}
	default: // i32
		switch op {
		case ir.OpAdd:
			return 0x6A
		case ir.OpSub:
			return 0x6B
		case ir.OpMul:
			return 0x6C
		case ir.OpDiv:
			return 0x6D
		case ir.OpRem:
			return 0x6F
		case ir.OpAnd, ir.OpBitAnd:
			return 0x71
		case ir.OpOr, ir.OpBitOr:
			return 0x72
		case ir.OpBitXor:
			return 0x73
		case ir.OpShl:
			return 0x74
		case ir.OpShr:
			return 0x75
		case ir.OpEq:
			return 0x46
		case ir.OpNe:
			return 0x47
		case ir.OpLt:
			return 0x48
		case ir.OpGt:
			return 0x4A
		case ir.OpLe:
			return 0x4C
		case ir.OpGe:
			return 0x4E
		}
	}
	return 0x01 // nop: unreachable for any op this backend actually emits
}
