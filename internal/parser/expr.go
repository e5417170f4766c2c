package parser

import (
	"github.com/codeassociates/llvmlang/internal/ast"
	"github.com/codeassociates/llvmlang/internal/token"
)

// opEntry is an entry on the shunting-yard operator stack: either a real
// binary/cast operator, or the LPAREN sentinel (precedence 0).
type opEntry struct {
	lparen bool
	op     token.Operator
	line   int
	column int
}

// parseExpr runs the shunting-yard subroutine over the token stream
// starting at the cursor's current position, stopping at EOF, Newline, or
// any delimiter in stopAt (the caller-supplied delimiter set); a ')' in
// stopAt stops the expression only when it does not close a '(' opened
// inside it. It never consumes the stopping token itself.
func (p *Parser) parseExpr(stopAt ...token.Delimiter) (*ast.Expr, error) {
	// Array and struct literals never enter the shunting-yard: they are
	// recognized by their leading delimiter and parsed wholesale.
	if cur := p.c.current(); cur != nil && cur.Kind == token.Delimiter {
		switch cur.Delim {
		case token.LBracket:
			p.c.next()
			return p.parseArrayLiteral()
		case token.LBrace:
			p.c.next()
			return p.parseStructLiteral()
		}
	}

	var operands []*ast.Node
	var operators []opEntry

	pushOperandFromOp := func(e opEntry) {
		op := e.op
		operands = append(operands, &ast.Node{
			Kind: ast.OperatorToken, OpValue: &op, Line: e.line, Column: e.column,
		})
	}

	for {
		tok := p.c.current()
		if tok == nil || tok.Kind == token.EOF || tok.Kind == token.Newline {
			break
		}
		if tok.Kind == token.Delimiter && tok.Delim != token.RParen && isStopDelim(tok.Delim, stopAt) {
			break
		}

		switch tok.Kind {
		case token.Number:
			operands = append(operands, &ast.Node{Kind: ast.Literal, LitKind: ast.NumberLit, LitValue: tok.Value, Line: tok.Line, Column: tok.Column})
			p.c.next()

		case token.Bool:
			operands = append(operands, &ast.Node{Kind: ast.Literal, LitKind: ast.BoolLit, LitValue: tok.Value, Line: tok.Line, Column: tok.Column})
			p.c.next()

		case token.Datatype:
			if tok.Base == token.StringType {
				operands = append(operands, &ast.Node{
					Kind: ast.ExprNode,
					SubExpr: &ast.Expr{Kind: ast.StringLit, StringValue: tok.Value},
					Line: tok.Line, Column: tok.Column,
				})
				p.c.next()
				break
			}
			return nil, newError(tok.Line, tok.Column, "unexpected type token %s in expression", tok.Value)

		case token.Identifier:
			p.c.next()
			v, err := p.parseComplexVariable(*tok)
			if err != nil {
				return nil, err
			}
			operands = append(operands, v)

		case token.IdentifierFunc:
			p.c.next()
			call, err := p.parseCallArgs(*tok)
			if err != nil {
				return nil, err
			}
			operands = append(operands, call)

		case token.Operator:
			if tok.Op == token.Cast {
				p.c.next()
				dt, err := p.parseType()
				if err != nil {
					return nil, err
				}
				operands = append(operands, &ast.Node{Kind: ast.TypeToken, TypeValue: dt, Line: tok.Line, Column: tok.Column})
				operators = append(operators, opEntry{op: token.Cast, line: tok.Line, column: tok.Column})
				continue
			}
			prec := tok.Op.Precedence()
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top.lparen {
					break
				}
				if top.op.Precedence() < prec {
					break
				}
				operators = operators[:len(operators)-1]
				pushOperandFromOp(top)
			}
			operators = append(operators, opEntry{op: tok.Op, line: tok.Line, column: tok.Column})
			p.c.next()

		case token.Delimiter:
			switch tok.Delim {
			case token.LParen:
				operators = append(operators, opEntry{lparen: true, line: tok.Line, column: tok.Column})
				p.c.next()
			case token.RParen:
				p.c.next()
				closed := false
				for len(operators) > 0 {
					top := operators[len(operators)-1]
					operators = operators[:len(operators)-1]
					if top.lparen {
						closed = true
						break
					}
					pushOperandFromOp(top)
				}
				if !closed {
					if isStopDelim(token.RParen, stopAt) {
						p.c.prev()
						return p.finishExpr(operands, operators)
					}
					return nil, newError(tok.Line, tok.Column, "unexpected )")
				}
			default:
				return nil, newError(tok.Line, tok.Column, "unexpected token %s in expression", tok.Delim)
			}

		default:
			return nil, newError(tok.Line, tok.Column, "unexpected token in expression")
		}
	}

	return p.finishExpr(operands, operators)
}

func (p *Parser) finishExpr(operands []*ast.Node, operators []opEntry) (*ast.Expr, error) {
	for len(operators) > 0 {
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		if top.lparen {
			return nil, newError(top.line, top.column, "unclosed parenthesis")
		}
		op := top.op
		operands = append(operands, &ast.Node{Kind: ast.OperatorToken, OpValue: &op, Line: top.line, Column: top.column})
	}
	return postfixToTree(operands)
}

func isStopDelim(d token.Delimiter, stopAt []token.Delimiter) bool {
	for _, s := range stopAt {
		if s == d {
			return true
		}
	}
	return false
}

// postfixToTree converts the final postfix operand sequence into an Expr
// tree by repeatedly popping operands off the tail to fill each operator's
// operands, innermost first.
func postfixToTree(operands []*ast.Node) (*ast.Expr, error) {
	if len(operands) == 0 {
		return &ast.Expr{Kind: ast.NoExpr}, nil
	}
	expr, rest, err := decodeExpr(operands)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newError(0, 0, "invalid postfix expression")
	}
	return expr, nil
}

// decodeExpr pops one expression's worth off the tail of operands and
// returns the remaining tail. If the tail element is a value, the
// expression is a Simple with only Left set. If it is an operator token,
// right (or, for CAST, the type operand) and left are decoded recursively.
func decodeExpr(operands []*ast.Node) (*ast.Expr, []*ast.Node, error) {
	if len(operands) == 0 {
		return nil, nil, newError(0, 0, "invalid postfix expression: missing operand")
	}
	last := operands[len(operands)-1]
	rest := operands[:len(operands)-1]

	if last.Kind == ast.ExprNode {
		return last.SubExpr, rest, nil
	}
	if last.Kind != ast.OperatorToken {
		return &ast.Expr{Kind: ast.Simple, Left: last}, rest, nil
	}

	op := *last.OpValue

	if op == token.Cast {
		if len(rest) == 0 {
			return nil, nil, newError(last.Line, last.Column, "invalid cast: missing type operand")
		}
		typeNode := rest[len(rest)-1]
		rest = rest[:len(rest)-1]
		leftExpr, rest2, err := decodeExpr(rest)
		if err != nil {
			return nil, nil, err
		}
		return &ast.Expr{Kind: ast.Simple, Left: wrapExprNode(leftExpr), Right: typeNode, Op: &op}, rest2, nil
	}

	rightExpr, rest2, err := decodeExpr(rest)
	if err != nil {
		return nil, nil, err
	}
	leftExpr, rest3, err := decodeExpr(rest2)
	if err != nil {
		return nil, nil, err
	}
	return &ast.Expr{Kind: ast.Simple, Left: wrapExprNode(leftExpr), Right: wrapExprNode(rightExpr), Op: &op}, rest3, nil
}

// wrapExprNode embeds e as an ASTNode: a trivial Simple{Left, nil, nil}
// collapses to its bare Left node, a compound expression is wrapped so it
// can sit in another Expr's Left/Right field.
func wrapExprNode(e *ast.Expr) *ast.Node {
	if e.Kind == ast.Simple && e.Right == nil && e.Op == nil {
		return e.Left
	}
	return &ast.Node{Kind: ast.ExprNode, SubExpr: e}
}

// parseArrayLiteral parses "[ Expr, ... ]" with the leading '[' already
// consumed by the caller.
func (p *Parser) parseArrayLiteral() (*ast.Expr, error) {
	var elems []*ast.Expr
	for {
		cur := p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.RBracket {
			break
		}
		e, err := p.parseExpr(token.RBracket, token.Comma)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		cur = p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.Comma {
			p.c.next()
			continue
		}
		break
	}
	if _, err := p.expectDelimiter(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.Expr{Kind: ast.ArrayLit, Elements: elems}, nil
}

// parseStructLiteral parses "{ field Expr, ... }" with the leading '{'
// already consumed by the caller.
func (p *Parser) parseStructLiteral() (*ast.Expr, error) {
	var fields []ast.StructFieldInit
	for {
		cur := p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.RBrace {
			break
		}
		nameTok, err := p.c.currentWithKind(token.Identifier)
		if err != nil {
			return nil, err
		}
		p.c.next()
		value, err := p.parseExpr(token.RBrace, token.Comma)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructFieldInit{Name: nameTok.Value, Value: value})
		cur = p.c.current()
		if cur != nil && cur.Kind == token.Delimiter && cur.Delim == token.Comma {
			p.c.next()
			continue
		}
		break
	}
	if _, err := p.expectDelimiter(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.Expr{Kind: ast.StructLit, StructFields: fields}, nil
}
