// Package symbols holds the two symbol tables codegen needs while lowering
// a program: a per-function variable table and a module-global struct
// definition table. Both are owned values passed down the call stack
// during lowering of a function, rather than a module-level mutable cell
// — codegen.Generator holds one *Variables per function currently being
// lowered and clears it at function end, and one *StructDefs for the
// whole module.
package symbols

import (
	"github.com/llir/llvm/ir/value"

	"github.com/codeassociates/llvmlang/internal/ast"
)

// Variable is one entry in a function's variable table: a stack slot
// pointer, its declared type, and whether AssignStmt may target it.
type Variable struct {
	Ptr     value.Value
	Type    *ast.Datatype
	Mutable bool
}

// Variables is the per-function name -> Variable map. Declaring a name
// that already exists shadows the previous entry (last `let` wins). The
// grammar has no nested lexical blocks that would require a stack of
// scopes — if/loop bodies share the enclosing function's table.
type Variables struct {
	vars map[string]*Variable
}

func NewVariables() *Variables {
	return &Variables{vars: make(map[string]*Variable)}
}

func (v *Variables) Define(name string, ptr value.Value, typ *ast.Datatype, mutable bool) {
	v.vars[name] = &Variable{Ptr: ptr, Type: typ, Mutable: mutable}
}

func (v *Variables) Lookup(name string) (*Variable, bool) {
	vr, ok := v.vars[name]
	return vr, ok
}

// Clear drops every entry, run at the end of lowering each function.
func (v *Variables) Clear() {
	v.vars = make(map[string]*Variable)
}

// Field is one (name, type) entry of a struct definition, in declaration
// order; the slice index doubles as the LLVM struct field index.
type Field struct {
	Name string
	Type *ast.Datatype
}

// StructDef is a single module-global struct declaration.
type StructDef struct {
	Name   string
	Fields []Field
}

// StructDefs is the module-global name -> StructDef map, written once at
// declaration time and read-only thereafter.
type StructDefs struct {
	defs map[string]*StructDef
}

func NewStructDefs() *StructDefs {
	return &StructDefs{defs: make(map[string]*StructDef)}
}

func (s *StructDefs) Define(name string, fields []Field) {
	s.defs[name] = &StructDef{Name: name, Fields: fields}
}

func (s *StructDefs) Lookup(name string) (*StructDef, bool) {
	d, ok := s.defs[name]
	return d, ok
}

// FieldIndex returns the declaration-order index of a field within a
// struct, used by codegen to compute GEP indices into the struct's
// underlying LLVM type.
func (s *StructDefs) FieldIndex(structName, fieldName string) (uint32, bool) {
	d, ok := s.defs[structName]
	if !ok {
		return 0, false
	}
	for i, f := range d.Fields {
		if f.Name == fieldName {
			return uint32(i), true
		}
	}
	return 0, false
}
