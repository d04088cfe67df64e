package ir

import (
	"fmt"
	"strings"
)

// Print renders a Module as indented text: one function per block,
// blocks and their instructions in definition order. It exists for the
// `novac ir` CLI subcommand and for go-snaps IR snapshot tests.
func Print(m *Module) string {
	var b strings.Builder
	for i, f := range m.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		printFunction(&b, f)
	}
	return b.String()
}

func printFunction(b *strings.Builder, f *Function) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(b, "fn %s(%s) -> %s {\n", f.Name, strings.Join(params, ", "), f.ReturnType)
	for _, block := range f.Blocks {
		printBlock(b, block)
	}
	b.WriteString("}\n")
}

func printBlock(b *strings.Builder, bb *BasicBlock) {
	fmt.Fprintf(b, "  bb%d:\n", bb.ID)
	for _, inst := range bb.Instructions {
		fmt.Fprintf(b, "    %%%d = %s\n", inst.Result, instructionString(inst.Kind))
	}
	fmt.Fprintf(b, "    %s\n", terminatorString(bb.Terminator))
}

func instructionString(k InstructionKind) string {
	switch k.Op {
	case OpConstInt:
		return fmt.Sprintf("const.int %d", k.ConstInt)
	case OpConstFloat:
		return fmt.Sprintf("const.float %g", k.ConstFloat)
	case OpConstBool:
		return fmt.Sprintf("const.bool %t", k.ConstBool)
	case OpConstString:
		return fmt.Sprintf("const.str %q", k.ConstString)
	case OpAlloca:
		return fmt.Sprintf("alloca local%d: %s", k.LocalSlot, k.AllocaType)
	case OpLoad:
		return fmt.Sprintf("load local%d", k.LocalSlot)
	case OpStore:
		return fmt.Sprintf("store local%d, %%%d", k.LocalSlot, k.A)
	case OpCall:
		args := make([]string, len(k.CallArgs))
		for i, a := range k.CallArgs {
			args[i] = fmt.Sprintf("%%%d", a)
		}
		return fmt.Sprintf("call %s(%s)", k.CallTarget, strings.Join(args, ", "))
	case OpGetParam:
		return fmt.Sprintf("get_param %d", k.ParamIndex)
	case OpNeg, OpNot, OpBitNot:
		return fmt.Sprintf("%s %%%d", k.Op, k.A)
	default:
		return fmt.Sprintf("%s %%%d, %%%d", k.Op, k.A, k.B)
	}
}

func terminatorString(t Terminator) string {
	switch t.Kind {
	case TermReturn:
		if t.HasValue {
			return fmt.Sprintf("return %%%d", t.Value)
		}
		return "return"
	case TermBranch:
		return fmt.Sprintf("branch bb%d", t.Target)
	case TermCondBranch:
		return fmt.Sprintf("cond_branch %%%d, bb%d, bb%d", t.Cond, t.ThenBlock, t.ElseBlock)
	case TermUnreachable:
		return "unreachable"
	default:
		return "?"
	}
}
