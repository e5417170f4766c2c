// Package codegen lowers a parsed AST to LLVM-IR using github.com/llir/llvm,
// the pure-Go IR construction library. A Generator owns the module, the
// per-function variable table, and the module-global struct definition
// table; it is single-use (one Generate call per source file), matching the
// compiler's single-threaded, synchronous execution model.
package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/symbols"
)

// funcSig records a declared function's AST-level signature alongside its
// IR handle, so argument and return-value lowering can consult the source
// datatypes rather than reverse-engineering them from IR types.
type funcSig struct {
	fn     *ir.Func
	params []ast.Param
	ret    *ast.Datatype
}

// Generator walks the top-level AST nodes and emits a single LLVM module.
type Generator struct {
	module *ir.Module

	structs     *symbols.StructDefs
	structTypes map[string]*types.StructType

	functions map[string]*funcSig

	vars *symbols.Variables

	fn    *ir.Func
	block *ir.Block

	// loopConts is the stack of enclosing loop continuation blocks, topmost
	// last; Break always branches to the last entry.
	loopConts []*ir.Block
}

func NewGenerator() *Generator {
	m := ir.NewModule()
	m.SourceFilename = "main"
	return &Generator{
		module:      m,
		structs:     symbols.NewStructDefs(),
		structTypes: make(map[string]*types.StructType),
		functions:   make(map[string]*funcSig),
		vars:        symbols.NewVariables(),
	}
}

// Generate lowers every top-level node into g's module in two passes: the
// first declares every function, extern, and struct signature in
// declaration order, the second lowers each function body. Struct
// definitions must precede any signature or field that uses the struct.
func Generate(nodes []*ast.Node) (*ir.Module, error) {
	g := NewGenerator()
	for _, n := range nodes {
		if err := g.declareTopLevel(n); err != nil {
			return nil, err
		}
	}
	for _, n := range nodes {
		if n.Kind == ast.Function {
			if err := g.lowerFunction(n); err != nil {
				return nil, err
			}
		}
	}
	return g.module, nil
}

// declareTopLevel registers the signature of every top-level node before any
// function body is lowered, so forward calls between functions resolve.
func (g *Generator) declareTopLevel(n *ast.Node) error {
	switch n.Kind {
	case ast.Function:
		return g.declareFunction(n.Name, n.Args, n.ReturnType)
	case ast.Extern:
		return g.declareFunction(n.Name, n.Args, n.ReturnType)
	case ast.StructDef:
		return g.declareStruct(n)
	case ast.ImportDef:
		// Imports are recorded for diagnostics only in this scope; nothing
		// to emit.
		return nil
	default:
		return newError("unexpected top-level node kind %d", n.Kind)
	}
}

func (g *Generator) declareFunction(name string, args []ast.Param, retType *ast.Datatype) error {
	if _, exists := g.functions[name]; exists {
		return nil
	}
	retLL, err := g.llvmType(retType)
	if err != nil {
		return err
	}
	fn := g.module.NewFunc(name, retLL)
	params := make([]ast.Param, len(args))
	for i, a := range args {
		pt, err := g.llvmType(a.Type)
		if err != nil {
			return err
		}
		p := ir.NewParam(a.Name, pt)
		fn.Params = append(fn.Params, p)
		params[i] = a
	}
	g.functions[name] = &funcSig{fn: fn, params: params, ret: retType}
	return nil
}

// declareStruct registers the struct's fields in the module-global
// StructDefs table and declares its named LLVM struct type with field types
// in declaration order.
func (g *Generator) declareStruct(n *ast.Node) error {
	fields := make([]symbols.Field, len(n.Fields))
	fieldTypes := make([]types.Type, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = symbols.Field{Name: f.Name, Type: f.Type}
		ft, err := g.llvmType(f.Type)
		if err != nil {
			return err
		}
		fieldTypes[i] = ft
	}
	g.structs.Define(n.Name, fields)
	st := types.NewStruct(fieldTypes...)
	st.TypeName = n.Name
	g.module.NewTypeDef(n.Name, st)
	g.structTypes[n.Name] = st
	return nil
}
