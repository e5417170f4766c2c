package parser

import (
	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/token"
)

// parseBlock parses "{ stmt* }".
func (p *Parser) parseBlock() (*ast.Node, error) {
	open, err := p.expectDelimiter(token.LBrace)
	if err != nil {
		return nil, err
	}
	var stmts []*ast.Node
	for {
		p.c.skipNewlines()
		cur := p.c.current()
		if cur == nil || (cur.Kind == token.Delimiter && cur.Delim == token.RBrace) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.c.skipNewlines()
	}
	if _, err := p.expectDelimiter(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Block, Statements: stmts, Line: open.Line, Column: open.Column}, nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	tok := p.c.current()
	if tok == nil {
		return nil, newError(0, 0, "unexpected end of input in block")
	}

	switch tok.Kind {
	case token.Keyword:
		switch tok.Kw {
		case token.Let:
			return p.parseLetStmt()
		case token.If:
			return p.parseIf()
		case token.Loop:
			return p.parseLoop()
		case token.For:
			return p.parseForLoop()
		case token.Break:
			p.c.next()
			return &ast.Node{Kind: ast.Break, Line: tok.Line, Column: tok.Column}, nil
		case token.Return:
			return p.parseReturn()
		default:
			return nil, newError(tok.Line, tok.Column, "unexpected keyword %s in statement", tok.Kw)
		}

	case token.IdentifierFunc:
		p.c.next()
		return p.parseCallArgs(*tok)

	case token.Identifier:
		p.c.next()
		return p.parseIdentStatement(*tok)

	default:
		return nil, newError(tok.Line, tok.Column, "unexpected token %s in statement", tok.Kind)
	}
}

// parseIdentStatement handles everything that can start with a bare
// identifier: a plain/indexed/field assignment, or a call/qualified-call
// used as a statement.
func (p *Parser) parseIdentStatement(nameTok token.Token) (*ast.Node, error) {
	target, err := p.parseComplexVariable(nameTok)
	if err != nil {
		return nil, err
	}

	switch target.Kind {
	case ast.FunctionCall, ast.ImportCall, ast.Method:
		return target, nil
	case ast.Variable, ast.ArrayIndex, ast.Attr:
		if _, err := p.expectOperator(token.Assign); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.AssignStmt, Target: target, Value: value, Line: nameTok.Line, Column: nameTok.Column}, nil
	default:
		return nil, newError(nameTok.Line, nameTok.Column, "invalid statement")
	}
}

// parseLetStmt parses "let type name = expr".
func (p *Parser) parseLetStmt() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.Let)
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Node{
		Kind: ast.LetStmt, Name: name.Value, LetType: typ, Value: value, Mutable: typ.Mutable,
		Line: tok.Line, Column: tok.Column,
	}, nil
}

// parseReturn parses "return expr?".
func (p *Parser) parseReturn() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.Return)
	if err != nil {
		return nil, err
	}
	cur := p.c.current()
	if cur == nil || cur.Kind == token.Newline || cur.Kind == token.EOF ||
		(cur.Kind == token.Delimiter && cur.Delim == token.RBrace) {
		return &ast.Node{Kind: ast.Return, Line: tok.Line, Column: tok.Column}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Return, ReturnValue: value, Line: tok.Line, Column: tok.Column}, nil
}

// parseIf parses "if expr { ... } (else if expr { ... })* (else { ... })?"
// building the Conditional chain via the Orelse field.
func (p *Parser) parseIf() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.If)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(token.LBrace)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Kind: ast.If, Cond: cond, Then: body, Line: tok.Line, Column: tok.Column}

	p.c.skipNewlines()
	cur := p.c.current()
	if cur != nil && cur.Kind == token.Keyword && cur.Kw == token.Else {
		elseTok := *cur
		p.c.next() // consume 'else'
		cur = p.c.current()
		if cur != nil && cur.Kind == token.Keyword && cur.Kw == token.If {
			branch, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.Orelse = branch
		} else {
			elseBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Orelse = &ast.Node{Kind: ast.Else, Then: elseBody, Line: elseTok.Line, Column: elseTok.Column}
		}
	}
	return node, nil
}

// parseLoop parses "loop { ... }" or "loop expr { ... }".
func (p *Parser) parseLoop() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.Loop)
	if err != nil {
		return nil, err
	}
	var cond *ast.Expr
	cur := p.c.current()
	if cur != nil && !(cur.Kind == token.Delimiter && cur.Delim == token.LBrace) {
		cond, err = p.parseExpr(token.LBrace)
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Loop, LoopCond: cond, LoopBody: body, Line: tok.Line, Column: tok.Column}, nil
}

// parseForLoop parses "for value, inc in expr { ... }".
func (p *Parser) parseForLoop() (*ast.Node, error) {
	tok, err := p.expectKeyword(token.For)
	if err != nil {
		return nil, err
	}
	value, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectDelimiter(token.Comma); err != nil {
		return nil, err
	}
	inc, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectIdentValue("in"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr(token.LBrace)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{
		Kind: ast.ForLoop, IterVar: value.Value, IterInc: inc.Value, Iterator: iter, ForBody: body,
		Line: tok.Line, Column: tok.Column,
	}, nil
}

// expectIdentValue consumes a bare identifier token whose literal value
// must equal want; used for the contextual "in" keyword in for-loops,
// which is not one of the reserved keywords.
func (p *Parser) expectIdentValue(want string) error {
	tok := p.c.current()
	if tok == nil || tok.Kind != token.Identifier || tok.Value != want {
		return newError(tokLine(tok), tokCol(tok), "expected %q", want)
	}
	p.c.next()
	return nil
}
