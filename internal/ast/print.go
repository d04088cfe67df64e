package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a Program as an indented S-expression tree. It exists for
// the `parse` CLI subcommand and for go-snaps AST snapshot tests: a
// stable, diffable text form rather than Go's %#v dump.
func Print(p *Program) string {
	var b strings.Builder
	b.WriteString("(program")
	for _, item := range p.Items {
		b.WriteString("\n")
		writeItem(&b, item, 1)
	}
	b.WriteString(")")
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writeItem(b *strings.Builder, item Item, depth int) {
	indent(b, depth)
	switch it := item.(type) {
	case *Function:
		writeFunction(b, it, depth)
	case *StructDef:
		fmt.Fprintf(b, "(struct %s", it.Name.Name)
		for _, f := range it.Fields {
			fmt.Fprintf(b, " (%s %s)", f.Name.Name, typeString(f.Type))
		}
		b.WriteString(")")
	case *EnumDef:
		fmt.Fprintf(b, "(enum %s", it.Name.Name)
		for _, v := range it.Variants {
			fmt.Fprintf(b, " (%s)", v.Name.Name)
		}
		b.WriteString(")")
	case *ImplBlock:
		fmt.Fprintf(b, "(impl %s", typeString(it.SelfType))
		if it.Trait != nil {
			fmt.Fprintf(b, " for-trait %s", typeString(it.Trait))
		}
		for _, m := range it.Items {
			if fi, ok := m.(ImplFunctionItem); ok {
				b.WriteString("\n")
				writeFunction(b, fi.Function, depth+1)
			}
		}
		b.WriteString(")")
	case *TraitDef:
		fmt.Fprintf(b, "(trait %s)", it.Name.Name)
	case *UseStmt:
		fmt.Fprintf(b, "(use %s)", pathString(it.Path))
	case *TypeAlias:
		fmt.Fprintf(b, "(type-alias %s %s)", it.Name.Name, typeString(it.Type))
	default:
		fmt.Fprintf(b, "(unknown-item)")
	}
}

func writeFunction(b *strings.Builder, f *Function, depth int) {
	fmt.Fprintf(b, "(fn %s (", f.Name.Name)
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%s:%s", patternString(p.Pattern), typeString(p.Type))
	}
	b.WriteString(")")
	if f.ReturnType != nil {
		fmt.Fprintf(b, " -> %s", typeString(f.ReturnType))
	}
	if f.Body != nil {
		b.WriteString("\n")
		writeBlock(b, f.Body, depth+1)
	}
	b.WriteString(")")
}

func writeBlock(b *strings.Builder, block *Block, depth int) {
	indent(b, depth)
	b.WriteString("(block")
	for _, s := range block.Stmts {
		b.WriteString("\n")
		writeStmt(b, s, depth+1)
	}
	b.WriteString(")")
}

func writeStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch st := s.(type) {
	case *LetStmt:
		fmt.Fprintf(b, "(let %s", patternString(st.Pattern))
		if st.Type != nil {
			fmt.Fprintf(b, " :%s", typeString(st.Type))
		}
		if st.Value != nil {
			b.WriteString(" ")
			b.WriteString(exprString(st.Value))
		}
		b.WriteString(")")
	case *ExprStmt:
		b.WriteString(exprString(st.Expr))
		if st.HasSemi {
			b.WriteString(";")
		}
	case *ItemStmt:
		writeItem(b, st.Item, depth)
	}
}

func exprString(e Expr) string {
	if e == nil {
		return "()"
	}
	switch ex := e.(type) {
	case *LiteralExpr:
		return literalString(ex.Value)
	case *PathExpr:
		return pathString(ex.Path)
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", ex.Op, exprString(ex.Left), exprString(ex.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", ex.Op, exprString(ex.Operand))
	case *CallExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("(call %s %s)", exprString(ex.Callee), strings.Join(args, " "))
	case *FieldExpr:
		return fmt.Sprintf("(field %s %s)", exprString(ex.Receiver), ex.Field.Name)
	case *IndexExpr:
		return fmt.Sprintf("(index %s %s)", exprString(ex.Receiver), exprString(ex.Index))
	case *StructLitExpr:
		fields := make([]string, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = fmt.Sprintf("(%s %s)", f.Name.Name, exprString(f.Value))
		}
		return fmt.Sprintf("(struct-lit %s %s)", pathString(ex.Path), strings.Join(fields, " "))
	case *ArrayExpr:
		elems := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = exprString(el)
		}
		return fmt.Sprintf("(array %s)", strings.Join(elems, " "))
	case *TupleExpr:
		elems := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = exprString(el)
		}
		return fmt.Sprintf("(tuple %s)", strings.Join(elems, " "))
	case *IfExpr:
		s := fmt.Sprintf("(if %s\n", exprString(ex.Cond))
		var body strings.Builder
		writeBlock(&body, ex.Then, 0)
		s += body.String()
		if ex.Else != nil {
			s += " " + exprString(ex.Else)
		}
		return s + ")"
	case *MatchExpr:
		arms := make([]string, len(ex.Arms))
		for i, a := range ex.Arms {
			arms[i] = fmt.Sprintf("(%s => %s)", patternString(a.Pattern), exprString(a.Body))
		}
		return fmt.Sprintf("(match %s %s)", exprString(ex.Scrutinee), strings.Join(arms, " "))
	case *WhileExpr:
		var body strings.Builder
		writeBlock(&body, ex.Body, 0)
		return fmt.Sprintf("(while %s %s)", exprString(ex.Cond), body.String())
	case *ForExpr:
		var body strings.Builder
		writeBlock(&body, ex.Body, 0)
		return fmt.Sprintf("(for %s in %s %s)", patternString(ex.Pattern), exprString(ex.Iter), body.String())
	case *LoopExpr:
		var body strings.Builder
		writeBlock(&body, ex.Body, 0)
		return fmt.Sprintf("(loop %s)", body.String())
	case *BlockExpr:
		var body strings.Builder
		writeBlock(&body, ex.Block, 0)
		return body.String()
	case *ClosureExpr:
		return fmt.Sprintf("(closure %s)", exprString(ex.Body))
	case *ReturnExpr:
		if ex.Value == nil {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", exprString(ex.Value))
	case *BreakExpr:
		if ex.Value == nil {
			return "(break)"
		}
		return fmt.Sprintf("(break %s)", exprString(ex.Value))
	case *ContinueExpr:
		return "(continue)"
	case *RangeExpr:
		op := ".."
		if ex.Inclusive {
			op = "..="
		}
		start, end := "", ""
		if ex.Start != nil {
			start = exprString(ex.Start)
		}
		if ex.End != nil {
			end = exprString(ex.End)
		}
		return fmt.Sprintf("(range %s%s%s)", start, op, end)
	case *RefExpr:
		if ex.Mutable {
			return fmt.Sprintf("(ref-mut %s)", exprString(ex.Operand))
		}
		return fmt.Sprintf("(ref %s)", exprString(ex.Operand))
	case *DerefExpr:
		return fmt.Sprintf("(deref %s)", exprString(ex.Operand))
	case *AwaitExpr:
		return fmt.Sprintf("(await %s)", exprString(ex.Operand))
	case *TryExpr:
		return fmt.Sprintf("(try %s)", exprString(ex.Operand))
	default:
		return "(unknown-expr)"
	}
}

func literalString(l Literal) string {
	switch v := l.(type) {
	case IntLiteral:
		return strconv.FormatInt(v.Value, 10)
	case FloatLiteral:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case StringLiteral:
		return strconv.Quote(v.Value)
	case BoolLiteral:
		return strconv.FormatBool(v.Value)
	case CharLiteral:
		return "'" + string(v.Value) + "'"
	default:
		return "?"
	}
}

func patternString(p Pattern) string {
	switch pt := p.(type) {
	case *WildcardPattern:
		return "_"
	case *IdentPattern:
		if pt.Mutable {
			return "mut " + pt.Name.Name
		}
		return pt.Name.Name
	case *LiteralPattern:
		return literalString(pt.Value)
	case *TuplePattern:
		elems := make([]string, len(pt.Elements))
		for i, e := range pt.Elements {
			elems[i] = patternString(e)
		}
		return "(" + strings.Join(elems, " ") + ")"
	case *StructPattern:
		return pathString(pt.Path) + "{..}"
	case *TupleStructPattern:
		elems := make([]string, len(pt.Elements))
		for i, e := range pt.Elements {
			elems[i] = patternString(e)
		}
		return fmt.Sprintf("%s(%s)", pathString(pt.Path), strings.Join(elems, " "))
	case *OrPattern:
		alts := make([]string, len(pt.Alternatives))
		for i, a := range pt.Alternatives {
			alts[i] = patternString(a)
		}
		return strings.Join(alts, " | ")
	case *RefPattern:
		return "&" + patternString(pt.Inner)
	case *RangePattern:
		op := ".."
		if pt.Inclusive {
			op = "..="
		}
		start, end := "", ""
		if pt.Start != nil {
			start = patternString(pt.Start)
		}
		if pt.End != nil {
			end = patternString(pt.End)
		}
		return start + op + end
	default:
		return "?"
	}
}

func typeString(t Type) string {
	if t == nil {
		return "_"
	}
	switch ty := t.(type) {
	case *PathType:
		return pathString(ty.Path)
	case *TupleType:
		elems := make([]string, len(ty.Elements))
		for i, e := range ty.Elements {
			elems[i] = typeString(e)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ArrayType:
		return fmt.Sprintf("[%s; %s]", typeString(ty.Element), exprString(ty.Len))
	case *SliceType:
		return fmt.Sprintf("[%s]", typeString(ty.Element))
	case *RefType:
		if ty.Mutable {
			return "&mut " + typeString(ty.Inner)
		}
		return "&" + typeString(ty.Inner)
	case *FnType:
		params := make([]string, len(ty.Params))
		for i, p := range ty.Params {
			params[i] = typeString(p)
		}
		s := fmt.Sprintf("fn(%s)", strings.Join(params, ", "))
		if ty.ReturnType != nil {
			s += " -> " + typeString(ty.ReturnType)
		}
		return s
	case *NeverType:
		return "!"
	case *InferType:
		return "_"
	default:
		return "?"
	}
}

func pathString(p Path) string {
	parts := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		s := seg.Ident.Name
		if len(seg.Generics) > 0 {
			gs := make([]string, len(seg.Generics))
			for j, g := range seg.Generics {
				gs[j] = typeString(g)
			}
			s += "::<" + strings.Join(gs, ", ") + ">"
		}
		parts[i] = s
	}
	return strings.Join(parts, "::")
}
