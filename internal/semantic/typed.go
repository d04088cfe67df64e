package semantic

import "github.com/novalang/novac/internal/ast"

// TypedProgram is the result of a successful Check: every function's body
// annotated with the type the checker assigned to each expression.
type TypedProgram struct {
	Functions []*TypedFunction
}

type TypedFunction struct {
	Name       string
	Params     []TypedParam
	ReturnType TypeInfo
	Body       *TypedBlock
}

type TypedParam struct {
	Name string
	Type TypeInfo
}

type TypedBlock struct {
	Stmts []*TypedStmt
	Type  TypeInfo
}

type TypedStmt struct {
	Let  *TypedLet
	Expr *TypedExpr // set for expression statements
}

type TypedLet struct {
	Name  string
	Type  TypeInfo
	Value *TypedExpr // nil when there is no initializer
}

// TypedExpr pairs a source expression with the type the checker assigned
// it. Node is retained so later passes (internal/ir) can re-walk the
// original AST shape without the checker needing to mirror every
// ast.Expr variant as its own typed node.
type TypedExpr struct {
	Node ast.Expr
	Type TypeInfo
}
