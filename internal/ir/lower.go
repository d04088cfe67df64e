package ir

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/semantic"
)

// Lower converts a type-checked program into its IR Module.
func Lower(prog *semantic.TypedProgram) *Module {
	mod := &Module{}
	for _, f := range prog.Functions {
		mod.Functions = append(mod.Functions, lowerFunction(f))
	}
	return mod
}

type loopCtx struct {
	breakTarget    BlockID
	continueTarget BlockID
	resultSlot     int
	hasResult      bool
}

// lowerer holds the per-function state while building basic blocks.
type lowerer struct {
	fn        *Function
	cur       *BasicBlock
	nextValue ValueID
	scopes    []map[string]int // variable name -> local (alloca) slot
	loops     []loopCtx
}

func lowerFunction(f *semantic.TypedFunction) *Function {
	fn := &Function{Name: f.Name, ReturnType: irTypeOf(f.ReturnType)}
	l := &lowerer{fn: fn}
	l.pushScope()
	defer l.popScope()

	l.startBlock()
	for i, p := range f.Params {
		pv := l.emit(InstructionKind{Op: OpGetParam, ParamIndex: i})
		slot := l.newLocal()
		l.emit(InstructionKind{Op: OpAlloca, LocalSlot: slot, AllocaType: irTypeOf(p.Type)})
		l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: pv})
		l.declare(p.Name, slot)
		fn.Params = append(fn.Params, Param{Name: p.Name, Type: irTypeOf(p.Type)})
	}

	last, hasValue := l.lowerBlockStmts(f.Body)
	if hasValue && !Equal(f.ReturnType, semantic.Unit) {
		l.finish(Terminator{Kind: TermReturn, Value: last, HasValue: true})
	} else {
		l.finish(Terminator{Kind: TermReturn})
	}

	fn.NumLocals = l.fn.NumLocals
	fn.NumValues = int(l.nextValue)
	return fn
}

// Equal reports whether two semantic.TypeInfo values name the same type;
// delegated to so lower.go doesn't need its own copy of the comparison.
func Equal(a, b semantic.TypeInfo) bool { return semantic.Equal(a, b) }

func irTypeOf(t semantic.TypeInfo) Type {
	switch v := t.(type) {
	case semantic.Primitive:
		switch v.Name {
		case "f32":
			return TypeF32
		case "f64":
			return TypeF64
		case "i64", "u64", "i128", "u128":
			return TypeI64
		case "()", "!":
			return TypeVoid
		default:
			return TypeI32
		}
	case semantic.Ref:
		return TypeI32 // pointers are represented as i32 offsets into linear memory
	default:
		return TypeI32
	}
}

// --- block/value bookkeeping ---

// reserveBlock allocates a block's id without making it current, so a
// branch can reference a successor before that successor's body has
// been lowered.
func (l *lowerer) reserveBlock() *BasicBlock {
	b := &BasicBlock{ID: BlockID(len(l.fn.Blocks))}
	l.fn.Blocks = append(l.fn.Blocks, b)
	return b
}

func (l *lowerer) enterBlock(b *BasicBlock) { l.cur = b }

// startBlock reserves a block and immediately makes it current.
func (l *lowerer) startBlock() BlockID {
	b := l.reserveBlock()
	l.enterBlock(b)
	return b.ID
}

func (l *lowerer) finish(term Terminator) {
	l.cur.Terminator = term
}

func (l *lowerer) emit(kind InstructionKind) ValueID {
	id := l.nextValue
	l.nextValue++
	l.cur.Instructions = append(l.cur.Instructions, Instruction{Result: id, Kind: kind})
	return id
}

func (l *lowerer) newLocal() int {
	slot := l.fn.NumLocals
	l.fn.NumLocals++
	return slot
}

func (l *lowerer) pushScope() { l.scopes = append(l.scopes, make(map[string]int)) }
func (l *lowerer) popScope()  { l.scopes = l.scopes[:len(l.scopes)-1] }

func (l *lowerer) declare(name string, slot int) {
	if name == "" || name == "_" {
		return
	}
	l.scopes[len(l.scopes)-1][name] = slot
}

func (l *lowerer) lookup(name string) (int, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if slot, ok := l.scopes[i][name]; ok {
			return slot, true
		}
	}
	return 0, false
}

// --- statements ---

// lowerBlockStmts lowers a block's statements into the CURRENT block,
// without pushing a scope -- used for the function body, which shares
// its scope with the parameters lowerFunction already declared.
func (l *lowerer) lowerBlockStmts(b *semantic.TypedBlock) (ValueID, bool) {
	var last ValueID
	hasValue := false
	for _, s := range b.Stmts {
		v, ok := l.lowerStmt(s)
		if ok {
			last, hasValue = v, true
		} else {
			hasValue = false
		}
	}
	return last, hasValue
}

func (l *lowerer) lowerStmt(s *semantic.TypedStmt) (ValueID, bool) {
	switch {
	case s.Let != nil:
		slot := l.newLocal()
		ty := irTypeOf(s.Let.Type)
		l.emit(InstructionKind{Op: OpAlloca, LocalSlot: slot, AllocaType: ty})
		if s.Let.Value != nil {
			v := l.lowerExpr(s.Let.Value)
			l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: v})
		}
		l.declare(s.Let.Name, slot)
		return 0, false
	case s.Expr != nil:
		v := l.lowerExpr(s.Expr)
		if Equal(s.Expr.Type, semantic.Unit) || Equal(s.Expr.Type, semantic.Never) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// --- expressions ---

func (l *lowerer) lowerExpr(te *semantic.TypedExpr) ValueID {
	switch ex := te.Node.(type) {
	case *ast.LiteralExpr:
		return l.lowerLiteral(ex.Value)

	case *ast.PathExpr:
		name := lastSegment(ex.Path)
		if slot, ok := l.lookup(name); ok {
			return l.emit(InstructionKind{Op: OpLoad, LocalSlot: slot})
		}
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})

	case *ast.BinaryExpr:
		return l.lowerBinary(ex)

	case *ast.UnaryExpr:
		v := l.lowerExprRaw(ex.Operand)
		switch ex.Op {
		case ast.Not:
			return l.emit(InstructionKind{Op: OpNot, A: v})
		case ast.BitNot:
			return l.emit(InstructionKind{Op: OpBitNot, A: v})
		default:
			return l.emit(InstructionKind{Op: OpNeg, A: v})
		}

	case *ast.CallExpr:
		return l.lowerCall(ex)

	case *ast.IfExpr:
		return l.lowerIf(ex, te.Type)

	case *ast.WhileExpr:
		l.lowerWhile(ex)
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})

	case *ast.ForExpr:
		l.lowerFor(ex)
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})

	case *ast.LoopExpr:
		return l.lowerLoop(ex, te.Type)

	case *ast.BlockExpr:
		v, ok := l.lowerBlockScopedRaw(ex.Block)
		if !ok {
			return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
		}
		return v

	case *ast.ReturnExpr:
		if ex.Value != nil {
			v := l.lowerExprRaw(ex.Value)
			l.finish(Terminator{Kind: TermReturn, Value: v, HasValue: true})
		} else {
			l.finish(Terminator{Kind: TermReturn})
		}
		l.enterBlock(l.reserveBlock()) // unreachable tail, keeps later emits well-formed
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})

	case *ast.BreakExpr:
		l.lowerBreak(ex)
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})

	case *ast.ContinueExpr:
		if len(l.loops) > 0 {
			top := l.loops[len(l.loops)-1]
			l.finish(Terminator{Kind: TermBranch, Target: top.continueTarget})
			l.enterBlock(l.reserveBlock())
		}
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})

	default:
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
	}
}

// lowerExprRaw lowers an expression reached outside the TypedExpr wrapper
// (sub-expressions the checker already visited, e.g. operands of a
// binary op); its result type isn't needed by the caller, so it's
// wrapped as Unknown.
func (l *lowerer) lowerExprRaw(e ast.Expr) ValueID {
	return l.lowerExpr(&semantic.TypedExpr{Node: e, Type: semantic.Unknown{}})
}

func (l *lowerer) lowerBlockScopedRaw(b *ast.Block) (ValueID, bool) {
	l.pushScope()
	defer l.popScope()
	var last ValueID
	hasValue := false
	for _, s := range b.Stmts {
		v, ok := l.lowerRawStmt(s)
		if ok {
			last, hasValue = v, true
		} else {
			hasValue = false
		}
	}
	return last, hasValue
}

func (l *lowerer) lowerRawStmt(s ast.Stmt) (ValueID, bool) {
	switch st := s.(type) {
	case *ast.LetStmt:
		slot := l.newLocal()
		l.emit(InstructionKind{Op: OpAlloca, LocalSlot: slot, AllocaType: TypeI32})
		if st.Value != nil {
			v := l.lowerExprRaw(st.Value)
			l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: v})
		}
		l.declare(patternNameOf(st.Pattern), slot)
		return 0, false
	case *ast.ExprStmt:
		v := l.lowerExprRaw(st.Expr)
		if st.HasSemi {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func (l *lowerer) lowerLiteral(lit ast.Literal) ValueID {
	switch v := lit.(type) {
	case ast.IntLiteral:
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: v.Value})
	case ast.FloatLiteral:
		return l.emit(InstructionKind{Op: OpConstFloat, ConstFloat: v.Value})
	case ast.BoolLiteral:
		return l.emit(InstructionKind{Op: OpConstBool, ConstBool: v.Value})
	case ast.StringLiteral:
		return l.emit(InstructionKind{Op: OpConstString, ConstString: v.Value})
	case ast.CharLiteral:
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: int64(v.Value)})
	default:
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
	}
}

func (l *lowerer) lowerBinary(ex *ast.BinaryExpr) ValueID {
	if ex.Op == ast.Assign {
		v := l.lowerExprRaw(ex.Right)
		if path, ok := ex.Left.(*ast.PathExpr); ok {
			if slot, ok := l.lookup(lastSegment(path.Path)); ok {
				l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: v})
			}
		}
		return v
	}

	if underlying, ok := compoundAssignOp(ex.Op); ok {
		right := l.lowerExprRaw(ex.Right)
		if path, ok := ex.Left.(*ast.PathExpr); ok {
			if slot, ok := l.lookup(lastSegment(path.Path)); ok {
				cur := l.emit(InstructionKind{Op: OpLoad, LocalSlot: slot})
				result := l.emit(InstructionKind{Op: underlying, A: cur, B: right})
				l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: result})
				return result
			}
		}
		return right
	}

	left := l.lowerExprRaw(ex.Left)
	right := l.lowerExprRaw(ex.Right)
	return l.emit(InstructionKind{Op: binOpKind(ex.Op), A: left, B: right})
}

// compoundAssignOp maps a compound-assignment BinOp (e.g. +=) to the plain
// arithmetic/bitwise Op it desugars to (load, apply, store).
func compoundAssignOp(op ast.BinOp) (Op, bool) {
	switch op {
	case ast.AddAssign:
		return OpAdd, true
	case ast.SubAssign:
		return OpSub, true
	case ast.MulAssign:
		return OpMul, true
	case ast.DivAssign:
		return OpDiv, true
	case ast.RemAssign:
		return OpRem, true
	case ast.BitAndAssign:
		return OpBitAnd, true
	case ast.BitOrAssign:
		return OpBitOr, true
	case ast.BitXorAssign:
		return OpBitXor, true
	case ast.ShlAssign:
		return OpShl, true
	case ast.ShrAssign:
		return OpShr, true
	default:
		return 0, false
	}
}

func binOpKind(op ast.BinOp) Op {
	switch op {
	case ast.Add:
		return OpAdd
	case ast.Sub:
		return OpSub
	case ast.Mul:
		return OpMul
	case ast.Div:
		return OpDiv
	case ast.Rem:
		return OpRem
	case ast.CmpEq:
		return OpEq
	case ast.CmpNe:
		return OpNe
	case ast.CmpLt:
		return OpLt
	case ast.CmpLe:
		return OpLe
	case ast.CmpGt:
		return OpGt
	case ast.CmpGe:
		return OpGe
	case ast.LogAnd:
		return OpAnd
	case ast.LogOr:
		return OpOr
	case ast.BitAnd:
		return OpBitAnd
	case ast.BitOr:
		return OpBitOr
	case ast.BitXor:
		return OpBitXor
	case ast.Shl:
		return OpShl
	case ast.Shr:
		return OpShr
	default:
		return OpAdd
	}
}

func (l *lowerer) lowerCall(ex *ast.CallExpr) ValueID {
	name := "unknown"
	if path, ok := ex.Callee.(*ast.PathExpr); ok {
		name = lastSegment(path.Path)
	}
	args := make([]ValueID, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = l.lowerExprRaw(a)
	}
	return l.emit(InstructionKind{Op: OpCall, CallTarget: name, CallArgs: args})
}

// lowerIf lowers a real branch: the condition picks between two blocks,
// both of which store their value into a shared slot before jumping to
// a merge block that loads it back out. then/else/merge blocks are
// reserved up front so the entry block's terminator can name them
// before their bodies are lowered.
func (l *lowerer) lowerIf(ex *ast.IfExpr, resultTy semantic.TypeInfo) ValueID {
	cond := l.lowerExprRaw(ex.Cond)

	// An if reached through lowerExprRaw carries Unknown; it produces a
	// value whenever it has an else branch.
	_, untyped := resultTy.(semantic.Unknown)
	unit := Equal(resultTy, semantic.Unit) && !(untyped && ex.Else != nil)
	var slot int
	if !unit {
		slot = l.newLocal()
		l.emit(InstructionKind{Op: OpAlloca, LocalSlot: slot, AllocaType: TypeI32})
	}

	thenBlock := l.reserveBlock()
	elseBlock := l.reserveBlock()
	mergeBlock := l.reserveBlock()

	l.finish(Terminator{Kind: TermCondBranch, Cond: cond, ThenBlock: thenBlock.ID, ElseBlock: elseBlock.ID, Merge: mergeBlock.ID})

	l.enterBlock(thenBlock)
	thenVal, thenHas := l.lowerBlockScopedRaw(ex.Then)
	if !unit && thenHas {
		l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: thenVal})
	}
	l.finish(Terminator{Kind: TermBranch, Target: mergeBlock.ID})

	l.enterBlock(elseBlock)
	if ex.Else != nil {
		elseVal := l.lowerExprRaw(ex.Else)
		if !unit {
			l.emit(InstructionKind{Op: OpStore, LocalSlot: slot, A: elseVal})
		}
	}
	l.finish(Terminator{Kind: TermBranch, Target: mergeBlock.ID})

	l.enterBlock(mergeBlock)
	if unit {
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
	}
	return l.emit(InstructionKind{Op: OpLoad, LocalSlot: slot})
}

func (l *lowerer) lowerWhile(ex *ast.WhileExpr) {
	condBlock := l.reserveBlock()
	bodyBlock := l.reserveBlock()
	afterBlock := l.reserveBlock()

	l.finish(Terminator{Kind: TermBranch, Target: condBlock.ID, EntersLoop: true, LoopExit: afterBlock.ID})

	l.enterBlock(condBlock)
	cond := l.lowerExprRaw(ex.Cond)
	l.finish(Terminator{Kind: TermCondBranch, Cond: cond, ThenBlock: bodyBlock.ID, ElseBlock: afterBlock.ID, IsLoopTest: true})

	l.loops = append(l.loops, loopCtx{breakTarget: afterBlock.ID, continueTarget: condBlock.ID})
	l.enterBlock(bodyBlock)
	l.lowerBlockScopedRaw(ex.Body)
	l.finish(Terminator{Kind: TermBranch, Target: condBlock.ID})
	l.loops = l.loops[:len(l.loops)-1]

	l.enterBlock(afterBlock)
}

func (l *lowerer) lowerFor(ex *ast.ForExpr) {
	r, ok := ex.Iter.(*ast.RangeExpr)
	if !ok {
		l.lowerBlockScopedRaw(ex.Body)
		return
	}

	idxSlot := l.newLocal()
	l.emit(InstructionKind{Op: OpAlloca, LocalSlot: idxSlot, AllocaType: TypeI32})
	start := l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
	if r.Start != nil {
		start = l.lowerExprRaw(r.Start)
	}
	l.emit(InstructionKind{Op: OpStore, LocalSlot: idxSlot, A: start})

	condBlock := l.reserveBlock()
	bodyBlock := l.reserveBlock()
	afterBlock := l.reserveBlock()

	l.finish(Terminator{Kind: TermBranch, Target: condBlock.ID, EntersLoop: true, LoopExit: afterBlock.ID})

	l.enterBlock(condBlock)
	idxVal := l.emit(InstructionKind{Op: OpLoad, LocalSlot: idxSlot})
	end := l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
	if r.End != nil {
		end = l.lowerExprRaw(r.End)
	}
	cmpOp := OpLt
	if r.Inclusive {
		cmpOp = OpLe
	}
	cond := l.emit(InstructionKind{Op: cmpOp, A: idxVal, B: end})
	l.finish(Terminator{Kind: TermCondBranch, Cond: cond, ThenBlock: bodyBlock.ID, ElseBlock: afterBlock.ID, IsLoopTest: true})

	l.pushScope()
	l.declare(patternNameOf(ex.Pattern), idxSlot)
	l.loops = append(l.loops, loopCtx{breakTarget: afterBlock.ID, continueTarget: condBlock.ID})
	l.enterBlock(bodyBlock)
	l.lowerBlockScopedRaw(ex.Body)
	cur := l.emit(InstructionKind{Op: OpLoad, LocalSlot: idxSlot})
	one := l.emit(InstructionKind{Op: OpConstInt, ConstInt: 1})
	next := l.emit(InstructionKind{Op: OpAdd, A: cur, B: one})
	l.emit(InstructionKind{Op: OpStore, LocalSlot: idxSlot, A: next})
	l.finish(Terminator{Kind: TermBranch, Target: condBlock.ID})
	l.loops = l.loops[:len(l.loops)-1]
	l.popScope()

	l.enterBlock(afterBlock)
}

func (l *lowerer) lowerLoop(ex *ast.LoopExpr, resultTy semantic.TypeInfo) ValueID {
	unit := Equal(resultTy, semantic.Unit) || Equal(resultTy, semantic.Never) || Equal(resultTy, semantic.Unknown{})
	var slot int
	if !unit {
		slot = l.newLocal()
		l.emit(InstructionKind{Op: OpAlloca, LocalSlot: slot, AllocaType: TypeI32})
	}

	bodyBlock := l.reserveBlock()
	afterBlock := l.reserveBlock()

	l.finish(Terminator{Kind: TermBranch, Target: bodyBlock.ID, EntersLoop: true, LoopExit: afterBlock.ID})

	l.loops = append(l.loops, loopCtx{breakTarget: afterBlock.ID, continueTarget: bodyBlock.ID, resultSlot: slot, hasResult: !unit})
	l.enterBlock(bodyBlock)
	l.lowerBlockScopedRaw(ex.Body)
	l.finish(Terminator{Kind: TermBranch, Target: bodyBlock.ID})
	l.loops = l.loops[:len(l.loops)-1]

	l.enterBlock(afterBlock)
	if unit {
		return l.emit(InstructionKind{Op: OpConstInt, ConstInt: 0})
	}
	return l.emit(InstructionKind{Op: OpLoad, LocalSlot: slot})
}

func (l *lowerer) lowerBreak(ex *ast.BreakExpr) {
	if len(l.loops) == 0 {
		return
	}
	top := l.loops[len(l.loops)-1]
	if ex.Value != nil && top.hasResult {
		v := l.lowerExprRaw(ex.Value)
		l.emit(InstructionKind{Op: OpStore, LocalSlot: top.resultSlot, A: v})
	}
	l.finish(Terminator{Kind: TermBranch, Target: top.breakTarget})
	l.enterBlock(l.reserveBlock()) // dead code after break still has a home
}

func lastSegment(p ast.Path) string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Ident.Name
}

func patternNameOf(p ast.Pattern) string {
	switch pt := p.(type) {
	case *ast.IdentPattern:
		return pt.Name.Name
	case *ast.RefPattern:
		return patternNameOf(pt.Inner)
	default:
		return "_"
	}
}
