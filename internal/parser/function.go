package parser

import (
	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/token"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// parseAttributes parses zero or more `#[name, ...]` / `#![name, ...]`
// lists preceding a function.
func (p *Parser) parseAttributes() ast.Attributes {
	var attrs ast.Attributes
	for p.cur != nil && p.cur.Type == token.HASH {
		p.lex.Consume(token.HASH)
		p.advance()
		if p.cur != nil && p.cur.Type == token.BANG {
			p.lex.Consume(token.BANG)
			p.advance()
		}
		if _, ok := p.expect(token.LBRACKET, diagnostics.ExpectedOpenBracket); !ok {
			return attrs
		}
		for p.cur != nil && p.cur.Type != token.RBRACKET {
			nameTok := p.cur
			if nameTok.Type != token.IDENTIFIER {
				p.errorf(diagnostics.ExpectedAttr, "")
				p.advance()
				continue
			}
			loc := diagnostics.NewLocation(p.path, nameTok.Row, nameTok.Col)
			switch nameTok.Lexeme {
			case "deter":
				attrs = append(attrs, ast.Attribute{Kind: ast.Deter, Loc: loc})
			case "nondeter":
				attrs = append(attrs, ast.Attribute{Kind: ast.NonDeter, Loc: loc})
			default:
				p.errorf(diagnostics.UnexpectedAttr, nameTok.Lexeme)
			}
			p.lex.Consume(token.IDENTIFIER)
			p.advance()
			if p.cur != nil && p.cur.Type == token.COMMA {
				p.lex.Consume(token.COMMA)
				p.advance()
			}
		}
		if _, ok := p.expect(token.RBRACKET, diagnostics.ExpectedClosedBracket); !ok {
			return attrs
		}
	}
	return attrs
}

// parseFunction parses `Attributes? 'fn' Ident '(' Params? ')' (':' '!'? Type)? '{' Stmt* '}'`.
func (p *Parser) parseFunction() *ast.Function {
	attrs := p.parseAttributes()

	if p.cur == nil || p.cur.Type != token.FUNCTION {
		p.errorf(diagnostics.ExpectedFn, "")
		return nil
	}
	fnTok := p.cur
	p.lex.Consume(token.FUNCTION)
	p.advance()

	nameTok, ok := p.expect(token.IDENTIFIER, diagnostics.ExpectedFnName)
	if !ok {
		return nil
	}

	fn := &ast.Function{
		Name:       nameTok.Lexeme,
		Loc:        diagnostics.NewLocation(p.path, fnTok.Row, fnTok.Col),
		Attrs:      attrs,
		OutputType: typesystem.Bottom,
	}

	if _, ok := p.expect(token.LPAREN, diagnostics.ExpectedFnArgs); !ok {
		return fn
	}
	for p.cur != nil && p.cur.Type != token.RPAREN {
		pTok, ok := p.expect(token.IDENTIFIER, diagnostics.ExpectedFnArgs)
		if !ok {
			return fn
		}
		if _, ok := p.expect(token.COLON, diagnostics.ExpectedColon); !ok {
			return fn
		}
		typTok := p.cur
		if typTok == nil {
			p.errorf(diagnostics.ExpectedParamType, "")
			return fn
		}
		typ, ok := typeFromToken(typTok)
		if !ok {
			p.errorf(diagnostics.ExpectedParamType, typTok.Lexeme)
			return fn
		}
		p.lex.Consume(typTok.Type)
		p.advance()

		v := &ast.Var{
			Name:  pTok.Lexeme,
			Loc:   diagnostics.NewLocation(p.path, pTok.Row, pTok.Col),
			Type_: typ,
		}
		fn.Params = append(fn.Params, v)
		fn.InputTypes = append(fn.InputTypes, typ)

		if p.cur != nil && p.cur.Type == token.COMMA {
			p.lex.Consume(token.COMMA)
			p.advance()
		}
	}
	if _, ok := p.expect(token.RPAREN, diagnostics.ExpectedFnArgs); !ok {
		return fn
	}

	if p.cur != nil && p.cur.Type == token.COLON {
		p.lex.Consume(token.COLON)
		p.advance()
		if p.cur != nil && p.cur.Type == token.BANG {
			p.lex.Consume(token.BANG)
			p.advance()
		}
		typTok := p.cur
		if typTok == nil {
			p.errorf(diagnostics.ExpectedFnReturnType, "")
			return fn
		}
		typ, ok := typeFromToken(typTok)
		if !ok {
			p.errorf(diagnostics.ExpectedFnReturnType, typTok.Lexeme)
			return fn
		}
		fn.OutputType = typ
		p.lex.Consume(typTok.Type)
		p.advance()
	}

	if _, ok := p.expect(token.LBRACE, diagnostics.ExpectedFnBody); !ok {
		return fn
	}
	for p.cur != nil && p.cur.Type != token.RBRACE {
		stmt := p.parseStmt()
		if stmt != nil {
			fn.Body = append(fn.Body, stmt)
		} else if p.cur != nil {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RBRACE, diagnostics.ExpectedFnBodyEnd); !ok {
		return fn
	}

	return fn
}
