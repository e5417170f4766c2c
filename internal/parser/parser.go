// Package parser implements the hand-written recursive-descent parser:
// top-level declarations, statements, and blocks, delegating expression
// parsing to the shunting-yard subroutine in expr.go.
package parser

import (
	"strconv"

	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/token"
)

// Parser consumes a finished token sequence (produced by a lexer) and
// builds the top-level AST. The first error encountered aborts the parse.
type Parser struct {
	c *cursor
}

// Parse runs parse_source over tokens and returns the ordered top-level
// declarations, or the first parse error encountered.
func Parse(tokens []token.Token) ([]*ast.Node, error) {
	p := &Parser{c: newCursor(tokens)}
	return p.parseSource()
}

func (p *Parser) parseSource() ([]*ast.Node, error) {
	var nodes []*ast.Node
	p.c.skipNewlines()
	for {
		cur := p.c.current()
		if cur == nil || cur.Kind == token.EOF {
			break
		}
		node, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		p.c.skipNewlines()
	}
	return nodes, nil
}

func (p *Parser) parseTopLevel() (*ast.Node, error) {
	tok := p.c.current()
	if tok == nil || tok.Kind != token.Keyword {
		return nil, newError(tokLine(tok), tokCol(tok), "unexpected token at top level, expected func, struct, extern, or import")
	}
	switch tok.Kw {
	case token.Func:
		return p.parseFunction()
	case token.Struct:
		return p.parseStructDef()
	case token.Extern:
		return p.parseExtern()
	case token.Import:
		return p.parseImportDef()
	default:
		return nil, newError(tok.Line, tok.Column, "unexpected keyword %s at top level", tok.Kw)
	}
}

// ---- small expect helpers layered over the cursor ----

func (p *Parser) expectKeyword(kw token.Keyword) (token.Token, error) {
	tok := p.c.current()
	if tok == nil || tok.Kind != token.Keyword || tok.Kw != kw {
		return token.Token{}, newError(tokLine(tok), tokCol(tok), "expected keyword %s", kw)
	}
	t := *tok
	p.c.next()
	return t, nil
}

func (p *Parser) expectOperator(op token.Operator) (token.Token, error) {
	tok := p.c.current()
	if tok == nil || tok.Kind != token.Operator || tok.Op != op {
		return token.Token{}, newError(tokLine(tok), tokCol(tok), "expected operator %s", op)
	}
	t := *tok
	p.c.next()
	return t, nil
}

func (p *Parser) expectDelimiter(d token.Delimiter) (token.Token, error) {
	tok := p.c.current()
	if tok == nil || tok.Kind != token.Delimiter || tok.Delim != d {
		return token.Token{}, newError(tokLine(tok), tokCol(tok), "expected %s", d)
	}
	t := *tok
	p.c.next()
	return t, nil
}

// expectName accepts a declaration-site name, which the lexer may have
// tagged IdentifierFunc if it happens to be followed by '(' (e.g. a
// function's own name in "func NAME (").
func (p *Parser) expectName() (token.Token, error) {
	tok := p.c.current()
	if tok == nil || (tok.Kind != token.Identifier && tok.Kind != token.IdentifierFunc) {
		return token.Token{}, newError(tokLine(tok), tokCol(tok), "expected identifier")
	}
	t := *tok
	p.c.next()
	return t, nil
}

func tokLine(t *token.Token) int {
	if t == nil {
		return 0
	}
	return t.Line
}

func tokCol(t *token.Token) int {
	if t == nil {
		return 0
	}
	return t.Column
}

// ---- types ----

// parseType parses "basetype ('[' NUMBER? ']')* ('!')?".
func (p *Parser) parseType() (*ast.Datatype, error) {
	tok := p.c.current()
	if tok == nil {
		return nil, newError(0, 0, "expected type, got EOF")
	}

	var dt *ast.Datatype
	switch tok.Kind {
	case token.Datatype:
		dt = ast.FromBaseType(tok.Base)
		p.c.next()
	case token.Identifier:
		dt = &ast.Datatype{Kind: ast.Custom, Name: tok.Value}
		p.c.next()
	default:
		return nil, newError(tok.Line, tok.Column, "expected type, got %s", tok.Kind)
	}

	for {
		cur := p.c.current()
		if cur == nil || cur.Kind != token.Delimiter || cur.Delim != token.LBracket {
			break
		}
		p.c.next()
		var length uint32
		if n := p.c.current(); n != nil && n.Kind == token.Number {
			v, err := strconv.ParseUint(n.Value, 10, 32)
			if err != nil {
				return nil, newError(n.Line, n.Column, "invalid array length %q", n.Value)
			}
			length = uint32(v)
			p.c.next()
		}
		if _, err := p.expectDelimiter(token.RBracket); err != nil {
			return nil, err
		}
		dt = &ast.Datatype{Kind: ast.Array, Elem: dt, Len: length}
	}

	if cur := p.c.current(); cur != nil && cur.Kind == token.Operator && cur.Op == token.Mut {
		p.c.next()
		dt.Mutable = true
	}
	return dt, nil
}

// ---- top-level declarations ----

// parseFunction parses "func NAME ( ARGS ) RET? { BLOCK }".
func (p *Parser) parseFunction() (*ast.Node, error) {
	fnTok, err := p.expectKeyword(token.Func)
	if err != nil {
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var retType *ast.Datatype
	if cur := p.c.current(); cur != nil && (cur.Kind == token.Datatype || cur.Kind == token.Identifier) {
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Function, Name: name.Value, Args: args, ReturnType: retType, Body: body, Line: fnTok.Line, Column: fnTok.Column}, nil
}

// parseExtern parses "extern NAME ( ARGS ) RET?".
func (p *Parser) parseExtern() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.Extern)
	if err != nil {
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var retType *ast.Datatype
	if cur := p.c.current(); cur != nil && (cur.Kind == token.Datatype || cur.Kind == token.Identifier) {
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Node{Kind: ast.Extern, Name: name.Value, Args: args, ReturnType: retType, Line: tok.Line, Column: tok.Column}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expectDelimiter(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	seen := map[string]bool{}
	for {
		cur := p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.RParen {
			break
		}
		nameTok, err := p.expectName()
		if err != nil {
			return nil, err
		}
		if seen[nameTok.Value] {
			return nil, newError(nameTok.Line, nameTok.Column, "duplicate parameter name %q", nameTok.Value)
		}
		seen[nameTok.Value] = true
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Value, Type: typ})
		cur = p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.Comma {
			p.c.next()
			continue
		}
		break
	}
	if _, err := p.expectDelimiter(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseStructDef parses "struct NAME { field Datatype, ... }", tolerating
// a trailing comma before the closing brace.
func (p *Parser) parseStructDef() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.Struct)
	if err != nil {
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectDelimiter(token.LBrace); err != nil {
		return nil, err
	}
	var fields []ast.Param
	for {
		p.c.skipNewlines()
		cur := p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.RBrace {
			break
		}
		fieldName, err := p.expectName()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Param{Name: fieldName.Value, Type: typ})
		p.c.skipNewlines()
		cur = p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.Comma {
			p.c.next()
			p.c.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expectDelimiter(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.StructDef, Name: name.Value, Fields: fields, Line: tok.Line, Column: tok.Column}, nil
}

// parseImportDef parses "import IDENT ('::' IDENT)*".
func (p *Parser) parseImportDef() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.Import)
	if err != nil {
		return nil, err
	}
	first, err := p.expectName()
	if err != nil {
		return nil, err
	}
	path := []string{first.Value}
	for {
		cur := p.c.current()
		if cur == nil || cur.Kind != token.Operator || cur.Op != token.Path {
			break
		}
		p.c.next()
		seg, err := p.expectName()
		if err != nil {
			return nil, err
		}
		path = append(path, seg.Value)
	}
	return &ast.Node{Kind: ast.ImportDef, Path: path, Line: tok.Line, Column: tok.Column}, nil
}
