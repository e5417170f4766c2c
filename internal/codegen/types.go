package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/codeassociates/llvmlang/internal/ast"
)

// stringType is the runtime representation of a source-level string: a
// two-word {length, data} struct, per spec. Built once and reused so every
// string-typed value shares the same LLVM type identity.
var stringType = types.NewStruct(types.I64, types.NewPointer(types.I8))

// llvmType resolves a source Datatype to its backend type. Custom struct
// names are resolved through g.structTypes, populated when the StructDef was
// declared (module construction always visits struct definitions before any
// function body that could reference them, per declaration order).
func (g *Generator) llvmType(dt *ast.Datatype) (types.Type, error) {
	if dt == nil {
		return types.Void, nil
	}
	switch dt.Kind {
	case ast.U8, ast.I8:
		return types.I8, nil
	case ast.U16, ast.I16:
		return types.I16, nil
	case ast.U32, ast.I32:
		return types.I32, nil
	case ast.U64, ast.I64:
		return types.I64, nil
	case ast.F32:
		return types.Float, nil
	case ast.F64:
		return types.Double, nil
	case ast.Bool:
		return types.I1, nil
	case ast.String:
		return stringType, nil
	case ast.Array:
		elem, err := g.llvmType(dt.Elem)
		if err != nil {
			return nil, err
		}
		return types.NewArray(uint64(dt.Len), elem), nil
	case ast.Custom:
		st, ok := g.structTypes[dt.Name]
		if !ok {
			return nil, newError("unknown struct %q", dt.Name)
		}
		return st, nil
	case ast.None:
		return types.Void, nil
	default:
		return nil, newError("unsupported datatype kind %d", dt.Kind)
	}
}
