package parser

import "github.com/codeassociates/llvmlang/internal/token"

// cursor is a random-access view over a lexer's token output with
// one-token lookahead/lookbehind and typed-consume helpers. It never
// consumes Newline tokens implicitly; the parser is responsible for
// skipping them at statement boundaries only. The token sequence is
// expected to end in Eof.
type cursor struct {
	tokens []token.Token
	pos    int
}

func newCursor(tokens []token.Token) *cursor {
	return &cursor{tokens: tokens}
}

// current returns the token at the cursor, or nil past the end (which
// should not happen given a well-formed token stream terminated by Eof).
func (c *cursor) current() *token.Token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	return &c.tokens[c.pos]
}

// peek returns the token one position ahead of the cursor, or nil past
// the end.
func (c *cursor) peek() *token.Token {
	if c.pos+1 >= len(c.tokens) {
		return nil
	}
	return &c.tokens[c.pos+1]
}

// next advances the cursor and returns the new current token.
func (c *cursor) next() token.Token {
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return *c.current()
}

// prev steps the cursor back and returns the new current token.
func (c *cursor) prev() token.Token {
	if c.pos > 0 {
		c.pos--
	}
	return *c.current()
}

func (c *cursor) nextWithKind(k token.Kind) (token.Token, error) {
	tok := c.next()
	if tok.Kind != k {
		return tok, newError(tok.Line, tok.Column, "expected %s, got %s", k, tok.Kind)
	}
	return tok, nil
}

func (c *cursor) nextIfKind(k token.Kind) *token.Token {
	if c.current() != nil && c.current().Kind == k {
		tok := c.current()
		c.next()
		return tok
	}
	return nil
}

func (c *cursor) peekWithKind(k token.Kind) (token.Token, error) {
	tok := c.peek()
	if tok == nil || tok.Kind != k {
		got := token.EOF
		line, col := 0, 0
		if tok != nil {
			got = tok.Kind
			line, col = tok.Line, tok.Column
		}
		return token.Token{}, newError(line, col, "expected %s, got %s", k, got)
	}
	return *tok, nil
}

func (c *cursor) currentWithKind(k token.Kind) (token.Token, error) {
	tok := c.current()
	if tok == nil || tok.Kind != k {
		got := token.EOF
		line, col := 0, 0
		if tok != nil {
			got = tok.Kind
			line, col = tok.Line, tok.Column
		}
		return token.Token{}, newError(line, col, "expected %s, got %s", k, got)
	}
	return *tok, nil
}

// skipNewlines advances past any run of Newline tokens. Called only at
// statement boundaries, per spec.
func (c *cursor) skipNewlines() {
	for c.current() != nil && c.current().Kind == token.Newline {
		c.next()
	}
}
