package parser

import (
	"testing"

	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/lexer"
)

func parseProgram(t *testing.T, src string) []*ast.Node {
	t.Helper()
	nodes, err := Parse(lexer.Tokenize(src))
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	return nodes
}

func TestParseFunctionWithBinaryExpr(t *testing.T) {
	nodes := parseProgram(t, "func add(a i32, b i32) i32 {\n  return a + b\n}\n")
	if len(nodes) != 1 || nodes[0].Kind != ast.Function {
		t.Fatalf("expected a single Function node, got %+v", nodes)
	}
	fn := nodes[0]
	if fn.Name != "add" || len(fn.Args) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 || fn.Body.Statements[0].Kind != ast.Return {
		t.Fatalf("expected a single return statement, got %+v", fn.Body.Statements)
	}
	ret := fn.Body.Statements[0].ReturnValue
	if ret.Kind != ast.Simple || ret.Op == nil {
		t.Fatalf("expected a binary Simple expr, got %+v", ret)
	}
}

func TestParseArrayLiteralEntersShuntingYardAsWholeValue(t *testing.T) {
	nodes := parseProgram(t, "func f() i32 {\n  let i32[3] xs = [1, 2, 3]\n  return 0\n}\n")
	let := nodes[0].Body.Statements[0]
	if let.Kind != ast.LetStmt {
		t.Fatalf("expected LetStmt, got %+v", let)
	}
	if let.Value.Kind != ast.ArrayLit || len(let.Value.Elements) != 3 {
		t.Fatalf("expected a 3-element ArrayLit, got %+v", let.Value)
	}
}

func TestParseStructLiteralEntersShuntingYardAsWholeValue(t *testing.T) {
	nodes := parseProgram(t, "struct Point { x i32, y i32 }\n\nfunc f() i32 {\n  let Point p = { x 1, y 2 }\n  return 0\n}\n")
	let := nodes[1].Body.Statements[0]
	if let.Value.Kind != ast.StructLit || len(let.Value.StructFields) != 2 {
		t.Fatalf("expected a 2-field StructLit, got %+v", let.Value)
	}
	if let.Value.StructFields[0].Name != "x" || let.Value.StructFields[1].Name != "y" {
		t.Fatalf("unexpected field order: %+v", let.Value.StructFields)
	}
}

func TestParseIfElseIfElseChainUsesOrelse(t *testing.T) {
	src := "func f(n i32) i32 {\n" +
		"  if n == 0 {\n    return 0\n  } else if n == 1 {\n    return 1\n  } else {\n    return 2\n  }\n" +
		"}\n"
	nodes := parseProgram(t, src)
	ifNode := nodes[0].Body.Statements[0]
	if ifNode.Kind != ast.If {
		t.Fatalf("expected If, got %+v", ifNode)
	}
	elseIf := ifNode.Orelse
	if elseIf == nil || elseIf.Kind != ast.If {
		t.Fatalf("expected else-if chained as nested If, got %+v", elseIf)
	}
	finalElse := elseIf.Orelse
	if finalElse == nil || finalElse.Kind != ast.Else {
		t.Fatalf("expected trailing Else, got %+v", finalElse)
	}
}

func TestParseForLoopBindsValueAndIncrement(t *testing.T) {
	nodes := parseProgram(t, "func f(xs i32[3]) i32 {\n  for v, i in xs {\n    break\n  }\n  return 0\n}\n")
	loop := nodes[0].Body.Statements[0]
	if loop.Kind != ast.ForLoop {
		t.Fatalf("expected ForLoop, got %+v", loop)
	}
	if loop.IterVar != "v" || loop.IterInc != "i" {
		t.Fatalf("unexpected for-loop bindings: %+v", loop)
	}
}

func TestParseCastExpression(t *testing.T) {
	nodes := parseProgram(t, "func f(x f64) i32 {\n  return x -> i32\n}\n")
	ret := nodes[0].Body.Statements[0].ReturnValue
	if ret.Kind != ast.Simple || ret.Right == nil || ret.Right.Kind != ast.TypeToken {
		t.Fatalf("expected a cast expr with a TypeToken right operand, got %+v", ret)
	}
}

func TestParseIndexedAssignment(t *testing.T) {
	nodes := parseProgram(t, "func f(xs i32[3]!) i32 {\n  xs[0] = 5\n  return 0\n}\n")
	assign := nodes[0].Body.Statements[0]
	if assign.Kind != ast.AssignStmt || assign.Target.Kind != ast.ArrayIndex {
		t.Fatalf("expected an indexed AssignStmt, got %+v", assign)
	}
}
