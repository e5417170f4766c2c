package codegen

import (
	"github.com/codeassociates/llvmlang/internal/ast"
)

// lowerBlock lowers each statement of a Block node in declaration order.
func (g *Generator) lowerBlock(block *ast.Node) error {
	for _, stmt := range block.Statements {
		if err := g.lowerStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) lowerStatement(n *ast.Node) error {
	switch n.Kind {
	case ast.LetStmt:
		return g.lowerLet(n)
	case ast.AssignStmt:
		return g.lowerAssign(n)
	case ast.Return:
		return g.lowerReturn(n)
	case ast.If:
		return g.lowerIf(n)
	case ast.Loop:
		return g.lowerLoop(n)
	case ast.ForLoop:
		return g.lowerForLoop(n)
	case ast.Break:
		return g.lowerBreak()
	case ast.FunctionCall, ast.ImportCall, ast.Method:
		_, err := g.lowerCallStatement(n)
		return err
	default:
		return newError("unexpected statement node kind %d", n.Kind)
	}
}

// lowerLet resolves the declared type, lowers the initializer under it,
// allocates a named stack slot, stores, and enters the variable table.
// An array type written without a length ("T[]") takes its length from the
// array literal that initializes it.
func (g *Generator) lowerLet(n *ast.Node) error {
	letType := n.LetType
	if letType.Kind == ast.Array && letType.Len == 0 && n.Value.Kind == ast.ArrayLit {
		sized := *letType
		sized.Len = uint32(len(n.Value.Elements))
		letType = &sized
	}
	llType, err := g.llvmType(letType)
	if err != nil {
		return err
	}
	val, err := g.lowerExpr(n.Value, letType)
	if err != nil {
		return err
	}
	ptr := g.block.NewAlloca(llType)
	ptr.SetName(n.Name)
	g.block.NewStore(val, ptr)
	g.vars.Define(n.Name, ptr, letType, n.Mutable)
	return nil
}

// lowerAssign resolves the target's address and stores the lowered RHS.
// Mutability is checked for every target shape: a plain name, an indexed
// array element, or a struct field all trace back to a root variable, and
// that root's mutability flag must be set (generalizing the plain-name-only
// check to array/field targets, per the supplemented mutability rule).
func (g *Generator) lowerAssign(n *ast.Node) error {
	target := n.Target
	addr, typ, mutable, err := g.resolveAddr(target)
	if err != nil {
		return err
	}
	if !mutable {
		return newError("cannot modify immutable value")
	}
	val, err := g.lowerExpr(n.Value, typ)
	if err != nil {
		return err
	}
	g.block.NewStore(val, addr)
	return nil
}

func (g *Generator) lowerReturn(n *ast.Node) error {
	if g.curReturnType() == nil || g.curReturnType().Kind == ast.None {
		g.block.NewRet(nil)
		return nil
	}
	if n.ReturnValue == nil {
		return newError("function %q: expected a return value", g.fn.Name())
	}
	val, err := g.lowerExpr(n.ReturnValue, g.curReturnType())
	if err != nil {
		return err
	}
	g.block.NewRet(val)
	return nil
}

func (g *Generator) curReturnType() *ast.Datatype {
	return g.functions[g.fn.Name()].ret
}

func (g *Generator) lowerBreak() error {
	if len(g.loopConts) == 0 {
		return newError("break outside of a loop")
	}
	g.ensureBranchTo(g.loopConts[len(g.loopConts)-1])
	return nil
}

// lowerCallStatement lowers a call used as a statement; the result, if any,
// is discarded.
func (g *Generator) lowerCallStatement(n *ast.Node) (any, error) {
	switch n.Kind {
	case ast.FunctionCall:
		_, err := g.lowerFunctionCall(n, false)
		return nil, err
	case ast.ImportCall:
		_, err := g.lowerImportCall(n, false)
		return nil, err
	case ast.Method:
		return nil, newError("method calls are not supported")
	default:
		return nil, newError("unexpected call-statement node kind %d", n.Kind)
	}
}
