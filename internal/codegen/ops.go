package codegen

import (
	"strconv"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/token"
)

// toBool implements to_bool(v): i1 passes through, an int compares != 0,
// a float compares ordered != 0.0.
func (g *Generator) toBool(v value.Value) value.Value {
	switch t := v.Type().(type) {
	case *types.IntType:
		if t.BitSize == 1 {
			return v
		}
		return g.block.NewICmp(enum.IPredNE, v, constant.NewInt(t, 0))
	case *types.FloatType:
		return g.block.NewFCmp(enum.FPredONE, v, constant.NewFloat(t, 0))
	default:
		return v
	}
}

// emitCast implements the cast rules: identity, int<->float conversion, and
// int widening (sign-extend for a signed source, zero-extend for an
// unsigned one) / narrowing (truncate). Any other pairing is a
// type-mismatch codegen error.
func (g *Generator) emitCast(val value.Value, from, to *ast.Datatype) (value.Value, error) {
	toLL, err := g.llvmType(to)
	if err != nil {
		return nil, err
	}
	if val.Type().Equal(toLL) {
		return val, nil
	}

	switch {
	case from.IsInt() && to.IsFloat():
		if from.IsSigned() {
			return g.block.NewSIToFP(val, toLL), nil
		}
		return g.block.NewUIToFP(val, toLL), nil
	case from.IsFloat() && to.IsInt():
		if to.IsSigned() {
			return g.block.NewFPToSI(val, toLL), nil
		}
		return g.block.NewFPToUI(val, toLL), nil
	case from.IsInt() && to.IsInt() && from.Bits() < to.Bits():
		if from.IsSigned() {
			return g.block.NewSExt(val, toLL), nil
		}
		return g.block.NewZExt(val, toLL), nil
	case from.IsInt() && to.IsInt() && from.Bits() > to.Bits():
		return g.block.NewTrunc(val, toLL), nil
	default:
		return nil, newError("unsupported cast from %s to %s", val.Type(), toLL)
	}
}

// emitBinaryOp applies one of the +,-,*,/,%, comparison, or bitwise
// operators. Int operands use signed arithmetic and signed predicates; float
// operands use the float instruction/predicate family. Mixing the two
// without an explicit cast is a type-mismatch error.
func (g *Generator) emitBinaryOp(op token.Operator, left, right value.Value) (value.Value, error) {
	_, leftFloat := left.Type().(*types.FloatType)
	_, rightFloat := right.Type().(*types.FloatType)
	if leftFloat != rightFloat {
		return nil, newError("mixed int/float operands without an explicit cast")
	}
	isFloat := leftFloat

	switch op {
	case token.Add:
		if isFloat {
			return g.block.NewFAdd(left, right), nil
		}
		return g.block.NewAdd(left, right), nil
	case token.Sub:
		if isFloat {
			return g.block.NewFSub(left, right), nil
		}
		return g.block.NewSub(left, right), nil
	case token.Mul:
		if isFloat {
			return g.block.NewFMul(left, right), nil
		}
		return g.block.NewMul(left, right), nil
	case token.Div:
		if isFloat {
			return g.block.NewFDiv(left, right), nil
		}
		return g.block.NewSDiv(left, right), nil
	case token.Mod:
		if isFloat {
			return g.block.NewFRem(left, right), nil
		}
		return g.block.NewSRem(left, right), nil
	case token.Eq:
		if isFloat {
			return g.block.NewFCmp(enum.FPredOEQ, left, right), nil
		}
		return g.block.NewICmp(enum.IPredEQ, left, right), nil
	case token.Neq:
		if isFloat {
			return g.block.NewFCmp(enum.FPredONE, left, right), nil
		}
		return g.block.NewICmp(enum.IPredNE, left, right), nil
	case token.Gt:
		if isFloat {
			return g.block.NewFCmp(enum.FPredOGT, left, right), nil
		}
		return g.block.NewICmp(enum.IPredSGT, left, right), nil
	case token.Lt:
		if isFloat {
			return g.block.NewFCmp(enum.FPredOLT, left, right), nil
		}
		return g.block.NewICmp(enum.IPredSLT, left, right), nil
	case token.Ge:
		if isFloat {
			return g.block.NewFCmp(enum.FPredOGE, left, right), nil
		}
		return g.block.NewICmp(enum.IPredSGE, left, right), nil
	case token.Le:
		// Fixed per the resolved float-<=-predicate open question: OLE, not
		// the source's UEQ.
		if isFloat {
			return g.block.NewFCmp(enum.FPredOLE, left, right), nil
		}
		return g.block.NewICmp(enum.IPredSLE, left, right), nil
	case token.BitAnd:
		if isFloat {
			return nil, newError("bitwise operator applied to float operands")
		}
		return g.block.NewAnd(left, right), nil
	case token.BitOr:
		if isFloat {
			return nil, newError("bitwise operator applied to float operands")
		}
		return g.block.NewOr(left, right), nil
	case token.BitXor:
		if isFloat {
			return nil, newError("bitwise operator applied to float operands")
		}
		return g.block.NewXor(left, right), nil
	case token.Shl:
		if isFloat {
			return nil, newError("shift operator applied to float operands")
		}
		return g.block.NewShl(left, right), nil
	case token.Shr:
		if isFloat {
			return nil, newError("shift operator applied to float operands")
		}
		return g.block.NewAShr(left, right), nil
	default:
		return nil, newError("unsupported binary operator %s", op)
	}
}

// parseNumberLiteral parses a lexed number literal's text according to the
// expected type: float-typed expected parses as a double and narrows to the
// target width; int-typed (or absent, defaulting to i32) expected parses as
// unsigned 64-bit and truncates/zero-extends to the target width's bit
// pattern.
func (g *Generator) parseNumberLiteral(text string, expected *ast.Datatype) (value.Value, error) {
	if expected != nil && expected.IsFloat() {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newError("invalid numeric literal %q: %v", text, err)
		}
		llType, err := g.llvmType(expected)
		if err != nil {
			return nil, err
		}
		return constant.NewFloat(llType.(*types.FloatType), f), nil
	}

	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return nil, newError("invalid numeric literal %q: %v", text, err)
	}

	dt := expected
	if dt == nil || !dt.IsInt() {
		dt = &ast.Datatype{Kind: ast.I32}
	}
	llType, err := g.llvmType(dt)
	if err != nil {
		return nil, err
	}
	bits := dt.Bits()
	masked := u
	if bits < 64 {
		masked = u & ((uint64(1) << bits) - 1)
	}
	return constant.NewInt(llType.(*types.IntType), int64(masked)), nil
}

func parseBoolLiteral(text string) value.Value {
	if text == "1" {
		return constant.NewInt(types.I1, 1)
	}
	return constant.NewInt(types.I1, 0)
}
