package symbols

import (
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/codeassociates/llvmlang/internal/ast"
)

func TestVariablesDefineAndLookup(t *testing.T) {
	vars := NewVariables()
	ptr := constant.NewInt(types.I32, 0)
	typ := &ast.Datatype{Kind: ast.I32}
	vars.Define("x", ptr, typ, true)

	got, ok := vars.Lookup("x")
	if !ok {
		t.Fatalf("expected x to be found")
	}
	if got.Ptr != ptr || got.Type != typ || !got.Mutable {
		t.Fatalf("unexpected variable entry: %+v", got)
	}

	if _, ok := vars.Lookup("y"); ok {
		t.Fatalf("expected y to be absent")
	}
}

func TestVariablesDefineShadowsPreviousEntry(t *testing.T) {
	vars := NewVariables()
	typ := &ast.Datatype{Kind: ast.I32}
	vars.Define("x", constant.NewInt(types.I32, 1), typ, false)
	vars.Define("x", constant.NewInt(types.I32, 2), typ, true)

	got, ok := vars.Lookup("x")
	if !ok || !got.Mutable {
		t.Fatalf("expected the second definition to win: %+v", got)
	}
}

func TestVariablesClearDropsAllEntries(t *testing.T) {
	vars := NewVariables()
	vars.Define("x", constant.NewInt(types.I32, 0), &ast.Datatype{Kind: ast.I32}, false)
	vars.Clear()

	if _, ok := vars.Lookup("x"); ok {
		t.Fatalf("expected Clear to remove all entries")
	}
}

func TestStructDefsFieldIndexFollowsDeclarationOrder(t *testing.T) {
	defs := NewStructDefs()
	defs.Define("Point", []Field{
		{Name: "x", Type: &ast.Datatype{Kind: ast.I32}},
		{Name: "y", Type: &ast.Datatype{Kind: ast.I32}},
	})

	xi, ok := defs.FieldIndex("Point", "x")
	if !ok || xi != 0 {
		t.Fatalf("expected x at index 0, got %d, ok=%v", xi, ok)
	}
	yi, ok := defs.FieldIndex("Point", "y")
	if !ok || yi != 1 {
		t.Fatalf("expected y at index 1, got %d, ok=%v", yi, ok)
	}
	if _, ok := defs.FieldIndex("Point", "z"); ok {
		t.Fatalf("expected an unknown field to report not-found")
	}
}

func TestStructDefsLookupUnknownStruct(t *testing.T) {
	defs := NewStructDefs()
	if _, ok := defs.Lookup("Missing"); ok {
		t.Fatalf("expected an undefined struct to be absent")
	}
	if _, ok := defs.FieldIndex("Missing", "x"); ok {
		t.Fatalf("expected FieldIndex on an undefined struct to report not-found")
	}
}
