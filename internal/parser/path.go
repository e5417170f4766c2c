package parser

import (
	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/token"
)

// parseComplexVariable parses an identifier optionally followed by any
// mixture of "[expr]" (ArrayIndex), ".field" (Attr), ".method(args)"
// (Method), or a "::"-separated path ending in a call (ImportCall). The
// name token has already been consumed by the caller.
func (p *Parser) parseComplexVariable(nameTok token.Token) (*ast.Node, error) {
	node := &ast.Node{Kind: ast.Variable, VarName: nameTok.Value, Line: nameTok.Line, Column: nameTok.Column}

	for {
		cur := p.c.current()
		if cur == nil {
			return node, nil
		}

		switch {
		case cur.Kind == token.Delimiter && cur.Delim == token.LBracket:
			p.c.next()
			idx, err := p.parseExpr(token.RBracket)
			if err != nil {
				return nil, err
			}
			if _, err := p.expectDelimiter(token.RBracket); err != nil {
				return nil, err
			}
			node = &ast.Node{Kind: ast.ArrayIndex, ArrayExpr: node, IndexExpr: idx, Line: cur.Line, Column: cur.Column}

		case cur.Kind == token.Delimiter && cur.Delim == token.Dot:
			p.c.next()
			field := p.c.current()
			if field == nil {
				return nil, newError(cur.Line, cur.Column, "expected field name after '.'")
			}
			switch field.Kind {
			case token.IdentifierFunc:
				p.c.next()
				call, err := p.parseCallArgs(*field)
				if err != nil {
					return nil, err
				}
				return &ast.Node{Kind: ast.Method, MethodCall: call, Parent: node, Line: field.Line, Column: field.Column}, nil
			case token.Identifier:
				p.c.next()
				node = &ast.Node{Kind: ast.Attr, AttrName: field.Value, Parent: node, Line: field.Line, Column: field.Column}
			default:
				return nil, newError(field.Line, field.Column, "expected field name, got %s", field.Kind)
			}

		case cur.Kind == token.Operator && cur.Op == token.Path:
			return p.parseQualifiedCall(node.VarName, cur.Line, cur.Column)

		default:
			return node, nil
		}
	}
}

// parseQualifiedCall parses the remainder of a "a::b::...::f(args)" chain;
// the first segment's name and the position of the first "::" are passed
// in, the cursor sits on that "::".
func (p *Parser) parseQualifiedCall(first string, line, col int) (*ast.Node, error) {
	path := []string{first}
	for {
		cur := p.c.current()
		if cur == nil || cur.Kind != token.Operator || cur.Op != token.Path {
			break
		}
		p.c.next()
		seg := p.c.current()
		if seg == nil {
			return nil, newError(line, col, "expected path segment after '::'")
		}
		if seg.Kind == token.IdentifierFunc {
			p.c.next()
			call, err := p.parseCallArgs(*seg)
			if err != nil {
				return nil, err
			}
			return &ast.Node{Kind: ast.ImportCall, Path: path, Ident: call, Line: line, Column: col}, nil
		}
		if seg.Kind != token.Identifier {
			return nil, newError(seg.Line, seg.Column, "expected identifier in path, got %s", seg.Kind)
		}
		path = append(path, seg.Value)
		p.c.next()
	}
	return nil, newError(line, col, "qualified path must end in a call")
}

// parseCallArgs parses "(arg, ...)" with nameTok (an IdentifierFunc token)
// already consumed; the cursor sits on the '('.
func (p *Parser) parseCallArgs(nameTok token.Token) (*ast.Node, error) {
	if _, err := p.expectDelimiter(token.LParen); err != nil {
		return nil, err
	}
	var args []*ast.Expr
	for {
		cur := p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.RParen {
			break
		}
		e, err := p.parseExpr(token.RParen, token.Comma)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
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
	return &ast.Node{Kind: ast.FunctionCall, Name: nameTok.Value, CallArgs: args, Line: nameTok.Line, Column: nameTok.Column}, nil
}
