package codegen

import (
	"strings"
	"testing"

	"github.com/codeassociates/llvmlang/internal/lexer"
	"github.com/codeassociates/llvmlang/internal/parser"
)

func generateSrc(t *testing.T, src string) string {
	t.Helper()
	nodes, err := parser.Parse(lexer.Tokenize(src))
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	m, err := Generate(nodes)
	if err != nil {
		t.Fatalf("codegen error: %v\nsource:\n%s", err, src)
	}
	return m.String()
}

func generateSrcExpectError(t *testing.T, src string) error {
	t.Helper()
	nodes, err := parser.Parse(lexer.Tokenize(src))
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	_, err = Generate(nodes)
	if err == nil {
		t.Fatalf("expected a codegen error, got none\nsource:\n%s", src)
	}
	return err
}

func TestGenerateAddFunction(t *testing.T) {
	ir := generateSrc(t, "func add(a i32, b i32) i32 {\n  return a + b\n}\n")
	if !strings.Contains(ir, "define i32 @add(") {
		t.Fatalf("expected a defined add function, got:\n%s", ir)
	}
	if !strings.Contains(ir, "add i32") {
		t.Fatalf("expected an integer add instruction, got:\n%s", ir)
	}
}

func TestGenerateIfElseChainBranches(t *testing.T) {
	src := "func classify(n i32) i32 {\n" +
		"  if n == 0 {\n    return 0\n  } else if n == 1 {\n    return 1\n  } else {\n    return 2\n  }\n" +
		"}\n"
	ir := generateSrc(t, src)
	if !strings.Contains(ir, "if_cont") {
		t.Fatalf("expected an if_cont continuation block, got:\n%s", ir)
	}
	if strings.Count(ir, "br i1") != 2 {
		t.Fatalf("expected two conditional branches (if, else-if), got:\n%s", ir)
	}
}

func TestGenerateForLoopUsesDeclaredArrayLength(t *testing.T) {
	src := "func sum(xs i32[3]) i32 {\n" +
		"  let i32! total = 0\n" +
		"  for v, i in xs {\n    total = total + v\n  }\n" +
		"  return total\n" +
		"}\n"
	ir := generateSrc(t, src)
	if !strings.Contains(ir, "icmp slt i32") {
		t.Fatalf("expected a signed less-than bound comparison, got:\n%s", ir)
	}
	if !strings.Contains(ir, ", 3") {
		t.Fatalf("expected the loop bound to reference the array's declared length (3), got:\n%s", ir)
	}
}

func TestGenerateArrayIndexOutOfBoundsClampsViaSelect(t *testing.T) {
	src := "func get(xs i32[3], i i32) i32 {\n  return xs[i]\n}\n"
	ir := generateSrc(t, src)
	if !strings.Contains(ir, "select i1") {
		t.Fatalf("expected array indexing to clamp via a select instruction, got:\n%s", ir)
	}
	if !strings.Contains(ir, "icmp ult") {
		t.Fatalf("expected an unsigned bounds check, got:\n%s", ir)
	}
}

func TestGenerateArrayLiteralLengthMismatchErrors(t *testing.T) {
	err := generateSrcExpectError(t, "func f() i32 {\n  let i32[3] xs = [1, 2]\n  return 0\n}\n")
	if !strings.Contains(err.Error(), "declared length") {
		t.Fatalf("expected a declared-length mismatch error, got: %v", err)
	}
}

func TestGenerateImmutableAssignmentErrors(t *testing.T) {
	err := generateSrcExpectError(t, "func f() i32 {\n  let i32 x = 1\n  x = 2\n  return x\n}\n")
	if !strings.Contains(err.Error(), "immutable") {
		t.Fatalf("expected an immutable-assignment error, got: %v", err)
	}
}

func TestGenerateMutableArrayIndexAssignmentSucceeds(t *testing.T) {
	ir := generateSrc(t, "func f(xs i32[3]!) i32 {\n  xs[0] = 5\n  return xs[0]\n}\n")
	if !strings.Contains(ir, "store") {
		t.Fatalf("expected a store to the array element, got:\n%s", ir)
	}
}

func TestGenerateImmutableArrayIndexAssignmentErrors(t *testing.T) {
	err := generateSrcExpectError(t, "func f(xs i32[3]) i32 {\n  xs[0] = 5\n  return 0\n}\n")
	if !strings.Contains(err.Error(), "immutable") {
		t.Fatalf("expected an immutable-assignment error for a non-mutable array target, got: %v", err)
	}
}

func TestGenerateFloatLessEqualUsesOrderedPredicate(t *testing.T) {
	ir := generateSrc(t, "func cmp(a f64, b f64) bool {\n  return a <= b\n}\n")
	if !strings.Contains(ir, "fcmp ole") {
		t.Fatalf("expected an ordered-less-equal float comparison, got:\n%s", ir)
	}
}

func TestGenerateSignedCastSignExtends(t *testing.T) {
	ir := generateSrc(t, "func widen(a i8) i32 {\n  return a -> i32\n}\n")
	if !strings.Contains(ir, "sext") {
		t.Fatalf("expected a sign-extend for a signed i8->i32 cast, got:\n%s", ir)
	}
}

func TestGenerateUnsignedCastZeroExtends(t *testing.T) {
	ir := generateSrc(t, "func widen(a u8) u32 {\n  return a -> u32\n}\n")
	if !strings.Contains(ir, "zext") {
		t.Fatalf("expected a zero-extend for an unsigned u8->u32 cast, got:\n%s", ir)
	}
}

func TestGenerateCastNarrows(t *testing.T) {
	ir := generateSrc(t, "func narrow(a i32) i8 {\n  return a -> i8\n}\n")
	if !strings.Contains(ir, "trunc") {
		t.Fatalf("expected a truncate for an i32->i8 cast, got:\n%s", ir)
	}
}

func TestGenerateStructFieldAccess(t *testing.T) {
	src := "struct Point { x i32, y i32 }\n\n" +
		"func getX(p Point) i32 {\n  return p.x\n}\n"
	ir := generateSrc(t, src)
	if !strings.Contains(ir, "%Point") {
		t.Fatalf("expected a named Point struct type, got:\n%s", ir)
	}
	if !strings.Contains(ir, "getelementptr") {
		t.Fatalf("expected a getelementptr for the field access, got:\n%s", ir)
	}
}

func TestGenerateStringLenIntrinsic(t *testing.T) {
	src := "func len(s string) i64 {\n  return s.len\n}\n"
	ir := generateSrc(t, src)
	if !strings.Contains(ir, "getelementptr") {
		t.Fatalf("expected the .len intrinsic to GEP into the string struct, got:\n%s", ir)
	}
}

func TestGenerateMethodCallIsUnsupported(t *testing.T) {
	src := "struct Box { v i32 }\n\n" +
		"func use(b Box) i32 {\n  return b.unwrap()\n}\n"
	err := generateSrcExpectError(t, src)
	if !strings.Contains(err.Error(), "method calls are not supported") {
		t.Fatalf("expected a method-calls-unsupported error, got: %v", err)
	}
}

func TestGenerateMissingReturnErrors(t *testing.T) {
	err := generateSrcExpectError(t, "func f() i32 {\n  let i32 x = 1\n}\n")
	if !strings.Contains(err.Error(), "missing return") {
		t.Fatalf("expected a missing-return error, got: %v", err)
	}
}

func TestGenerateQualifiedCallResolvesToExternByBareName(t *testing.T) {
	src := "import runtime::io\n\n" +
		"extern print(x i32) i32\n\n" +
		"func f() i32 {\n  runtime::io::print(1)\n  return 0\n}\n"
	ir := generateSrc(t, src)
	if !strings.Contains(ir, "call i32 @print(") {
		t.Fatalf("expected the qualified call to resolve to the bare extern @print, got:\n%s", ir)
	}
}
