package lexer

import (
	"testing"

	"github.com/codeassociates/llvmlang/internal/token"
)

func TestTokenizeFunctionSignature(t *testing.T) {
	toks := Tokenize("func add(a i32, b i32) i32 {\n  return a + b\n}\n")

	want := []token.Kind{
		token.Keyword, token.IdentifierFunc, token.Delimiter, token.Identifier, token.Datatype,
		token.Delimiter, token.Identifier, token.Datatype, token.Delimiter,
		token.Datatype, token.Delimiter, token.Newline,
		token.Keyword, token.Identifier, token.Operator, token.Identifier,
		token.Newline, token.Delimiter, token.Newline, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got kind %s, want %s (%+v)", i, toks[i].Kind, k, toks[i])
		}
	}
}

func TestTokenizeBoolLiteralsNormalizeToZeroOne(t *testing.T) {
	toks := Tokenize("true false")
	if toks[0].Kind != token.Bool || toks[0].Value != "1" {
		t.Fatalf("true: got %+v", toks[0])
	}
	if toks[1].Kind != token.Bool || toks[1].Value != "0" {
		t.Fatalf("false: got %+v", toks[1])
	}
}

func TestTokenizeCastAndPathOperators(t *testing.T) {
	toks := Tokenize("a -> i32\nmod::f()")
	var ops []token.Operator
	for _, tk := range toks {
		if tk.Kind == token.Operator {
			ops = append(ops, tk.Op)
		}
	}
	if len(ops) != 2 || ops[0] != token.Cast || ops[1] != token.Path {
		t.Fatalf("got operators %v", ops)
	}
}

func TestTokenizeMutabilityMarker(t *testing.T) {
	toks := Tokenize("let i32! x = 1")
	found := false
	for _, tk := range toks {
		if tk.Kind == token.Operator && tk.Op == token.Mut {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Mut operator token, got %+v", toks)
	}
}
