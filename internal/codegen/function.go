package codegen

import (
	"github.com/codeassociates/llvmlang/internal/ast"
)

// lowerFunction lowers one Function node's body. Extern nodes have no body
// and are fully handled by declareFunction.
func (g *Generator) lowerFunction(n *ast.Node) error {
	sig := g.functions[n.Name]
	fn := sig.fn

	entry := fn.NewBlock("entry")
	g.fn = fn
	g.block = entry
	g.vars.Clear()

	for i, param := range sig.params {
		llParam := fn.Params[i]
		ptr := g.block.NewAlloca(llParam.Type())
		ptr.SetName(param.Name + ".addr")
		g.block.NewStore(llParam, ptr)
		g.vars.Define(param.Name, ptr, param.Type, param.Type.Mutable)
	}

	if err := g.lowerBlock(n.Body); err != nil {
		return err
	}

	if g.block.Term == nil {
		// A continuation block that no branch targets (e.g. an if_cont after
		// every branch returned) is unreachable rather than a fallthrough.
		reachable := g.block == entry
		for _, b := range fn.Blocks {
			if b.Term == nil {
				continue
			}
			for _, succ := range b.Term.Succs() {
				if succ == g.block {
					reachable = true
				}
			}
		}
		switch {
		case n.ReturnType == nil || n.ReturnType.Kind == ast.None:
			g.block.NewRet(nil)
		case !reachable:
			g.block.NewUnreachable()
		default:
			return newError("function %q: missing return statement", n.Name)
		}
	}

	g.vars.Clear()
	g.fn = nil
	g.block = nil
	return nil
}
