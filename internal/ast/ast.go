// Package ast defines the tagged-sum node types shared between the parser
// and the code generator. Per the re-architecture guidance, this collapses
// what the original compiler expressed as two generations of node
// hierarchies into a single sum type per consumers pattern-match on: Node
// is the ASTNode sum, Expr is the Expr sum. Neither is extended with
// interface methods or dynamic dispatch; every consumer switches on Kind.
package ast

import "github.com/codeassociates/llvmlang/internal/token"

// NodeKind is the closed sum of ASTNode variants.
type NodeKind int

const (
	Function NodeKind = iota
	Extern
	StructDef
	ImportDef
	ImportCall
	Block
	LetStmt
	AssignStmt
	Return
	If
	Else
	Loop
	ForLoop
	Break
	FunctionCall
	Variable
	ArrayIndex
	Attr
	Method
	Literal
	TypeToken     // pseudo-operand: a Datatype carried through the shunting-yard as a cast's right operand
	OperatorToken // pseudo-operand: an operator popped off the operator stack, sitting in the postfix sequence
	ExprNode      // wraps a compound *Expr so it can sit in another Expr's Left/Right, e.g. the "(a+b)" in "(a+b)*c"
)

// LiteralKind distinguishes the two literal token shapes the parser can
// push onto the shunting-yard operand stack.
type LiteralKind int

const (
	NumberLit LiteralKind = iota
	BoolLit
)

// Param is a (name, type) pair used for function/extern arguments and
// struct fields.
type Param struct {
	Name string
	Type *Datatype
}

// Node is the ASTNode sum. Only the fields relevant to Kind are populated;
// see the field comments for which Kind(s) read which field.
type Node struct {
	Kind NodeKind

	Line, Column int

	// Function, Extern
	Name       string
	Args       []Param
	ReturnType *Datatype // nil means no return value
	Body       *Node     // Block

	// StructDef
	Fields []Param

	// ImportDef
	Path []string

	// ImportCall
	Ident *Node // FunctionCall

	// Block
	Statements []*Node

	// LetStmt
	LetType *Datatype
	Value   *Expr
	Mutable bool

	// AssignStmt
	Target *Node // Variable, ArrayIndex, or Attr

	// Return
	ReturnValue *Expr // optional

	// If / Else
	Cond   *Expr
	Then   *Node // Block
	Orelse *Node // next Conditional node (If or Else), or nil

	// Loop
	LoopCond *Expr // optional; nil means infinite loop
	LoopBody *Node

	// ForLoop
	IterVar   string
	IterInc   string
	Iterator  *Expr
	ForBody   *Node

	// FunctionCall
	CallArgs []*Expr

	// Variable
	VarName string

	// ArrayIndex
	ArrayExpr *Node
	IndexExpr *Expr

	// Attr
	AttrName string
	Parent   *Node

	// Method
	MethodCall *Node // FunctionCall

	// Literal
	LitValue string
	LitKind  LiteralKind

	// TypeToken
	TypeValue *Datatype

	// OperatorToken
	OpValue *token.Operator

	// ExprNode
	SubExpr *Expr
}

// ExprKind is the closed sum of Expr variants.
type ExprKind int

const (
	Simple ExprKind = iota
	ArrayLit
	StructLit
	StringLit
	NoExpr
)

// StructFieldInit is one (name, value) pair of a struct literal, in
// source order (before declaration-order reordering).
type StructFieldInit struct {
	Name  string
	Value *Expr
}

// Expr is the Expr sum produced by the shunting-yard subroutine.
type Expr struct {
	Kind ExprKind

	// Simple: Right/Op are both nil, or both set. When Op is Cast, Right
	// is a TypeToken Node, not a value-producing Node.
	Left  *Node
	Right *Node
	Op    *token.Operator

	// ArrayLit
	Elements []*Expr

	// StructLit
	StructFields []StructFieldInit

	// StringLit
	StringValue string
}
