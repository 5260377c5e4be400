package parser

import (
	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/token"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// parseStmt parses one `Let | Return | Assign | Expr` production, followed
// by an optional ';'.
func (p *Parser) parseStmt() ast.Expr {
	if p.cur == nil {
		return nil
	}
	var stmt ast.Expr
	switch p.cur.Type {
	case token.LET:
		stmt = p.parseLet()
	case token.RETURN:
		retTok := p.cur
		p.lex.Consume(token.RETURN)
		p.advance()
		e := p.parseExpr()
		if e == nil {
			p.errorf(diagnostics.ExpectedExpr, "")
			return nil
		}
		_ = retTok // the return keyword carries no AST node of its own
		stmt = e
	default:
		stmt = p.parseExprOrAssign()
	}
	if stmt != nil && p.cur != nil && p.cur.Type == token.SEMICOLON {
		p.lex.Consume(token.SEMICOLON)
		p.advance()
	}
	return stmt
}

// parseExprOrAssign parses one expression and, when it turns out to be a
// bare Var immediately followed by '=', reinterprets it as a reassignment
// `Ident '=' Expr` instead: parseExpr already stops at a bare Var without
// consuming '=' (ASSIGN isn't in token.BinaryOps), so no extra lookahead
// is needed to tell the two apart.
func (p *Parser) parseExprOrAssign() ast.Expr {
	e := p.parseExpr()
	if e == nil {
		return nil
	}

	target, ok := e.(*ast.Var)
	if !ok || p.cur == nil || p.cur.Type != token.ASSIGN {
		return e
	}
	p.lex.Consume(token.ASSIGN)
	p.advance()

	val := p.parseExpr()
	if val == nil {
		p.errorf(diagnostics.ExpectedExpr, "")
		return nil
	}

	return &ast.Assign{
		Loc:    target.Loc,
		Target: target,
		Value:  val,
	}
}

// parseLet parses `'let' Ident (':' Type)? '=' Expr`.
func (p *Parser) parseLet() ast.Expr {
	letTok := p.cur
	p.lex.Consume(token.LET)
	p.advance()

	nameTok, ok := p.expect(token.IDENTIFIER, diagnostics.ExpectedFnName)
	if !ok {
		return nil
	}

	typ := typesystem.Bottom
	if p.cur != nil && p.cur.Type == token.COLON {
		p.lex.Consume(token.COLON)
		p.advance()
		typTok := p.cur
		if typTok == nil {
			p.errorf(diagnostics.ExpectedType, "")
			return nil
		}
		t, ok := typeFromToken(typTok)
		if !ok {
			p.errorf(diagnostics.ExpectedType, typTok.Lexeme)
			return nil
		}
		typ = t
		p.lex.Consume(typTok.Type)
		p.advance()
	}

	if _, ok := p.expect(token.ASSIGN, diagnostics.ExpectedAssign); !ok {
		return nil
	}

	val := p.parseExpr()
	if val == nil {
		p.errorf(diagnostics.ExpectedExpr, "")
		return nil
	}

	v := &ast.Var{
		Name:  nameTok.Lexeme,
		Loc:   diagnostics.NewLocation(p.path, nameTok.Row, nameTok.Col),
		Type_: typ,
	}
	return &ast.Let{
		Loc:     diagnostics.NewLocation(p.path, letTok.Row, letTok.Col),
		Binding: v,
		Value:   val,
	}
}

// parseExpr is the workhorse: parse one primary then, if a binary
// operator follows, chain it left-associatively.
func (p *Parser) parseExpr() ast.Expr {
	lhs := p.parsePrimary()
	if lhs == nil {
		return nil
	}
	return p.parseBinaryExprWithLHS(lhs)
}

// parseBinaryExprWithLHS greedily consumes operators in token.BinaryOps,
// chaining left-associatively: ((lhs op rhs) op rhs) op rhs ...
func (p *Parser) parseBinaryExprWithLHS(lhs ast.Expr) ast.Expr {
	for p.cur != nil && token.BinaryOps[p.cur.Type] {
		opTok := p.cur
		op, ok := opcodeFor(opTok.Type)
		if !ok {
			p.errorf(diagnostics.ExpectedOpcode, "")
			return lhs
		}
		p.lex.Consume(opTok.Type)
		p.advance()

		rhs := p.parsePrimary()
		if rhs == nil {
			p.errorf(diagnostics.ExpectedExpr, "")
			return lhs
		}

		lhs = &ast.BinaryExpr{
			Loc:          lhs.Location(),
			Lhs:          lhs,
			Op:           op,
			Rhs:          rhs,
			ResolvedType: typesystem.Bottom,
		}
	}
	return lhs
}

func opcodeFor(t token.Type) (ast.Opcode, bool) {
	switch t {
	case token.PLUS:
		return ast.Add, true
	case token.MINUS:
		return ast.Sub, true
	case token.ASTERISK:
		return ast.Mul, true
	case token.SLASH:
		return ast.Div, true
	case token.EQ:
		return ast.Eq, true
	case token.NEQ:
		return ast.Neq, true
	case token.LT:
		return ast.LT, true
	case token.GT:
		return ast.GT, true
	case token.LTE:
		return ast.LTE, true
	case token.GTE:
		return ast.GTE, true
	default:
		return 0, false
	}
}

// parsePrimary parses one of: qbit literal, unary-minus var, digit
// literal, string literal, boolean literal, identifier (var or call),
// parenthesized sub-expression, tensor literal, or conditional.
func (p *Parser) parsePrimary() ast.Expr {
	if p.cur == nil {
		p.errorf(diagnostics.ExpectedExpr, "")
		return nil
	}

	switch p.cur.Type {
	case token.QBIT:
		tok := p.cur
		p.lex.Consume(token.QBIT)
		p.advance()
		return p.parseQbitLiteral(tok)

	case token.MINUS:
		return p.parseUnaryMinus()

	case token.DIGIT:
		tok := p.cur
		p.lex.Consume(token.DIGIT)
		p.advance()
		val, err := tok.Digit()
		_ = err // lexer already validated the slice parses as float64
		return &ast.Literal{
			Loc:   diagnostics.NewLocation(p.path, tok.Row, tok.Col),
			Kind:  ast.DigitLiteral,
			Digit: val,
		}

	case token.LITERAL:
		tok := p.cur
		p.lex.Consume(token.LITERAL)
		p.advance()
		return &ast.Literal{
			Loc:  diagnostics.NewLocation(p.path, tok.Row, tok.Col),
			Kind: ast.StrLiteral,
			Str:  tok.Literal,
		}

	case token.BOOLEAN:
		tok := p.cur
		p.lex.Consume(token.BOOLEAN)
		p.advance()
		return &ast.Literal{
			Loc:     diagnostics.NewLocation(p.path, tok.Row, tok.Col),
			Kind:    ast.BooleanLiteral,
			Boolean: tok.Lexeme == "true",
		}

	case token.IDENTIFIER:
		return p.parseIdentOrCall()

	case token.LPAREN:
		p.lex.Consume(token.LPAREN)
		p.advance()
		inner := p.parseExpr()
		if _, ok := p.expect(token.RPAREN, diagnostics.ExpectedParenth); !ok {
			return inner
		}
		return inner

	case token.IF:
		return p.parseConditional()

	case token.LBRACKET:
		return p.parseTensor()

	default:
		p.errorf(diagnostics.ExpectedExpr, "")
		p.advance()
		return nil
	}
}

// parseUnaryMinus: a leading '-' before a Var sets unary_negative on that
// Var; before anything else (a call, a literal, a parenthesized
// expression) it parses as a binary Sub with an implicit 0 left-hand
// side. parsePrimary already distinguishes a bare Var from a call (an
// identifier followed by '(' becomes a FnCall), so the two cases are told
// apart by a type switch on its result rather than extra lookahead.
func (p *Parser) parseUnaryMinus() ast.Expr {
	minusTok := p.cur
	p.lex.Consume(token.MINUS)
	p.advance()

	loc := diagnostics.NewLocation(p.path, minusTok.Row, minusTok.Col)

	operand := p.parsePrimary()
	if operand == nil {
		p.errorf(diagnostics.ExpectedExpr, "")
		return nil
	}

	if v, ok := operand.(*ast.Var); ok {
		v.UnaryNegative = true
		return p.parseBinaryExprWithLHS(v)
	}

	zero := &ast.Literal{Loc: loc, Kind: ast.DigitLiteral, Digit: 0}
	return &ast.BinaryExpr{Loc: loc, Lhs: zero, Op: ast.Sub, Rhs: operand, ResolvedType: typesystem.Bottom}
}

// parseTensor parses `'[' (Expr (',' Expr)*)? ']'`.
func (p *Parser) parseTensor() ast.Expr {
	lbTok := p.cur
	p.lex.Consume(token.LBRACKET)
	p.advance()

	loc := diagnostics.NewLocation(p.path, lbTok.Row, lbTok.Col)

	var elements []ast.Expr
	for p.cur != nil && p.cur.Type != token.RBRACKET {
		el := p.parseExpr()
		if el == nil {
			break
		}
		elements = append(elements, el)
		if p.cur != nil && p.cur.Type == token.COMMA {
			p.lex.Consume(token.COMMA)
			p.advance()
			if p.cur != nil && p.cur.Type == token.RBRACKET {
				p.errorf(diagnostics.ExpectedExpr, "trailing comma in tensor literal")
				break
			}
		} else if p.cur != nil && p.cur.Type != token.RBRACKET {
			p.errorf(diagnostics.ExpectedComma, "")
			break
		}
	}
	p.expect(token.RBRACKET, diagnostics.ExpectedClosedBracket)

	return &ast.Tensor{Loc: loc, Elements: elements}
}

// parseIdentOrCall parses a bare identifier: either a function call
// `Ident '(' ExprList? ')'` or a lone variable reference.
func (p *Parser) parseIdentOrCall() ast.Expr {
	nameTok := p.cur
	p.lex.Consume(token.IDENTIFIER)
	p.advance()

	loc := diagnostics.NewLocation(p.path, nameTok.Row, nameTok.Col)

	if p.cur != nil && p.cur.Type == token.LPAREN {
		p.lex.Consume(token.LPAREN)
		p.advance()

		var args []ast.Expr
		for p.cur != nil && p.cur.Type != token.RPAREN {
			arg := p.parseExpr()
			if arg == nil {
				break
			}
			args = append(args, arg)
			if p.cur != nil && p.cur.Type == token.COMMA {
				p.lex.Consume(token.COMMA)
				p.advance()
				if p.cur != nil && p.cur.Type == token.RPAREN {
					p.errorf(diagnostics.ExpectedExpr, "trailing comma in call arguments")
					break
				}
			} else if p.cur != nil && p.cur.Type != token.RPAREN {
				p.errorf(diagnostics.ExpectedComma, "")
				break
			}
		}
		if _, ok := p.expect(token.RPAREN, diagnostics.ExpectedParenth); !ok {
			return nil
		}

		return &ast.FnCall{
			Loc: loc,
			Ref: &ast.FunctionRef{
				Name:       nameTok.Lexeme,
				Loc:        loc,
				OutputType: typesystem.Bottom,
			},
			Args: args,
		}
	}

	return &ast.Var{Name: nameTok.Lexeme, Loc: loc}
}

// parseConditional parses `'if' Expr '{' Stmt* '}' ('else' '{' Stmt* '}')?`.
func (p *Parser) parseConditional() ast.Expr {
	ifTok := p.cur
	p.lex.Consume(token.IF)
	p.advance()

	cond := p.parseExpr()
	if cond == nil {
		p.errorf(diagnostics.ExpectedExpr, "")
		return nil
	}

	truth := p.parseBlock()

	var falseBlock []ast.Expr
	if p.cur != nil && p.cur.Type == token.ELSE {
		p.lex.Consume(token.ELSE)
		p.advance()
		falseBlock = p.parseBlock()
	}

	return &ast.Conditional{
		Loc:        diagnostics.NewLocation(p.path, ifTok.Row, ifTok.Col),
		Cond:       cond,
		TruthBlock: truth,
		FalseBlock: falseBlock,
	}
}

func (p *Parser) parseBlock() []ast.Expr {
	if _, ok := p.expect(token.LBRACE, diagnostics.ExpectedFnBody); !ok {
		return nil
	}
	var stmts []ast.Expr
	for p.cur != nil && p.cur.Type != token.RBRACE {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		} else if p.cur != nil {
			p.advance()
		}
	}
	p.expect(token.RBRACE, diagnostics.ExpectedFnBodyEnd)
	return stmts
}
