package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/codeassociates/llvmlang/internal/ast"
)

// ensureBranchTo emits an unconditional branch to target unless the current
// block already has a terminator — the idempotent insertion the control-flow
// lowering relies on throughout, so it is encapsulated once here instead of
// scattered inline checks.
func (g *Generator) ensureBranchTo(target *ir.Block) {
	if g.block.Term != nil {
		return
	}
	g.block.NewBr(target)
}

// moveBlockToEnd repositions b to the end of fn's block list, purely for the
// readability of the emitted IR text (a continuation block created up front
// so its branches can be wired, then moved after the bodies that precede it).
func moveBlockToEnd(fn *ir.Func, b *ir.Block) {
	for i, blk := range fn.Blocks {
		if blk == b {
			fn.Blocks = append(fn.Blocks[:i], fn.Blocks[i+1:]...)
			break
		}
	}
	fn.Blocks = append(fn.Blocks, b)
}

// condType is the expected type under which every branch condition is
// lowered: number literals in a condition are typed as u32, and the
// condition's value is then coerced to i1 with toBool (an i1 result, such
// as a comparison or a bool literal, passes through unchanged).
var condType = &ast.Datatype{Kind: ast.U32}

// lowerIf lowers an If/else-if/else chain rooted at n, building the if, any
// else/else-if, and if_cont blocks, and leaves the builder positioned at
// if_cont.
func (g *Generator) lowerIf(n *ast.Node) error {
	cont := g.fn.NewBlock("if_cont")
	if err := g.lowerConditional(n, cont); err != nil {
		return err
	}
	moveBlockToEnd(g.fn, cont)
	g.block = cont
	return nil
}

func (g *Generator) lowerConditional(n *ast.Node, cont *ir.Block) error {
	switch n.Kind {
	case ast.If:
		condVal, err := g.lowerExpr(n.Cond, condType)
		if err != nil {
			return err
		}
		thenBlock := g.fn.NewBlock("if")
		branchElse := cont
		var elseBlock *ir.Block
		if n.Orelse != nil {
			elseBlock = g.fn.NewBlock("else")
			branchElse = elseBlock
		}
		g.block.NewCondBr(g.toBool(condVal), thenBlock, branchElse)

		g.block = thenBlock
		if err := g.lowerBlock(n.Then); err != nil {
			return err
		}
		g.ensureBranchTo(cont)

		if n.Orelse != nil {
			g.block = elseBlock
			return g.lowerConditional(n.Orelse, cont)
		}
		return nil

	case ast.Else:
		if err := g.lowerBlock(n.Then); err != nil {
			return err
		}
		g.ensureBranchTo(cont)
		return nil

	default:
		return newError("unexpected conditional node kind %d", n.Kind)
	}
}

// lowerLoop lowers "loop { body }" (LoopCond nil, runs until break) or
// "loop expr { body }" (re-evaluates expr before each iteration).
func (g *Generator) lowerLoop(n *ast.Node) error {
	loopBlock := g.fn.NewBlock("loop")
	cont := g.fn.NewBlock("loop_cont")

	if n.LoopCond == nil {
		g.block.NewBr(loopBlock)
	} else {
		cond, err := g.lowerExpr(n.LoopCond, condType)
		if err != nil {
			return err
		}
		g.block.NewCondBr(g.toBool(cond), loopBlock, cont)
	}

	g.loopConts = append(g.loopConts, cont)
	g.block = loopBlock
	if err := g.lowerBlock(n.LoopBody); err != nil {
		return err
	}

	if g.block.Term == nil {
		if n.LoopCond == nil {
			g.block.NewBr(loopBlock)
		} else {
			cond, err := g.lowerExpr(n.LoopCond, condType)
			if err != nil {
				return err
			}
			g.block.NewCondBr(g.toBool(cond), loopBlock, cont)
		}
	}
	g.loopConts = g.loopConts[:len(g.loopConts)-1]
	g.block = cont
	return nil
}

// lowerForLoop lowers "for value, inc in iterator { body }": inc is bound to
// the running index (u32, mutable), value to the element at that index in
// the iterator array, re-loaded each iteration. The loop bound is the
// iterator's actual declared length (see the resolved for-loop open
// question in the design notes), not a hardcoded literal.
func (g *Generator) lowerForLoop(n *ast.Node) error {
	iterNode, ok := exprAsNode(n.Iterator)
	if !ok {
		return newError("for-loop iterator must be a plain variable or indexable expression")
	}
	arrAddr, arrType, _, err := g.resolveAddr(iterNode)
	if err != nil {
		return err
	}
	if arrType.Kind != ast.Array {
		return newError("for-loop iterator must be an array")
	}
	arrLL, err := g.llvmType(arrType)
	if err != nil {
		return err
	}
	elemLL, err := g.llvmType(arrType.Elem)
	if err != nil {
		return err
	}
	length := constant.NewInt(types.I32, int64(arrType.Len))

	idxPtr := g.block.NewAlloca(types.I32)
	idxPtr.SetName(n.IterInc)
	g.block.NewStore(constant.NewInt(types.I32, 0), idxPtr)
	g.vars.Define(n.IterInc, idxPtr, &ast.Datatype{Kind: ast.U32}, true)

	loopBlock := g.fn.NewBlock("for_loop")
	cont := g.fn.NewBlock("loop_cont")

	idx0 := g.block.NewLoad(types.I32, idxPtr)
	g.block.NewCondBr(g.block.NewICmp(enum.IPredSLT, idx0, length), loopBlock, cont)

	g.loopConts = append(g.loopConts, cont)
	g.block = loopBlock

	idxCur := g.block.NewLoad(types.I32, idxPtr)
	elemPtr := g.block.NewGetElementPtr(arrLL, arrAddr, constant.NewInt(types.I32, 0), idxCur)
	elemVal := g.block.NewLoad(elemLL, elemPtr)
	valPtr := g.block.NewAlloca(elemLL)
	valPtr.SetName(n.IterVar)
	g.block.NewStore(elemVal, valPtr)
	g.vars.Define(n.IterVar, valPtr, arrType.Elem, false)

	if err := g.lowerBlock(n.ForBody); err != nil {
		return err
	}

	if g.block.Term == nil {
		cur := g.block.NewLoad(types.I32, idxPtr)
		next := g.block.NewAdd(cur, constant.NewInt(types.I32, 1))
		g.block.NewStore(next, idxPtr)
		g.block.NewCondBr(g.block.NewICmp(enum.IPredSLT, next, length), loopBlock, cont)
	}
	g.loopConts = g.loopConts[:len(g.loopConts)-1]
	g.block = cont
	return nil
}

// exprAsNode unwraps a trivial Simple{Left, nil, nil} expression to its bare
// node, the shape every non-compound operand collapses to.
func exprAsNode(e *ast.Expr) (*ast.Node, bool) {
	if e.Kind == ast.Simple && e.Right == nil && e.Op == nil {
		return e.Left, true
	}
	return nil, false
}
