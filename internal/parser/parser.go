// Package parser implements qcc's hand-written recursive-descent parser:
// token stream in, one ast.Module out, plus any diagnostics raised along
// the way. Every production returns either its node or nil with an error
// appended to p.Errors; the top-level loop recovers by skipping a token
// and continuing, per the "report and skip one token" failure model.
package parser

import (
	"strconv"
	"strings"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/lexer"
	"github.com/quale-lang/qcc/internal/token"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// Import is one recorded `import Module::Function;` statement, validated
// against already-parsed modules by the caller (or, for a file-spanning
// import, by internal/loader once the target file has been parsed too).
type Import struct {
	ModuleName   string
	FunctionName string
	Loc          diagnostics.Location
}

// Parser turns one file's token stream into one ast.Module.
type Parser struct {
	lex  *lexer.Lexer
	path string

	cur *token.Token

	Errors        []*diagnostics.Error
	Imports       []Import
	nestedModules []*ast.Module
}

// New creates a Parser over buffer, identified by path for diagnostics.
func New(buffer []byte, path string) *Parser {
	p := &Parser{lex: lexer.New(buffer, path), path: path}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lex.NextToken()
}

func (p *Parser) atEOF() bool { return p.cur == nil }

func (p *Parser) errorf(kind diagnostics.Kind, detail string) *diagnostics.Error {
	var err *diagnostics.Error
	if p.cur != nil {
		err = diagnostics.NewError(kind, *p.cur, detail)
	} else {
		err = diagnostics.NewErrorAt(kind, diagnostics.NewLocation(p.path, 0, 0), detail)
	}
	p.Errors = append(p.Errors, err)
	return err
}

// expect checks the current token's type, consuming it on success via the
// lexer's own Consume (an internal mismatch there would be a compiler bug,
// not reachable once the type check below has passed).
func (p *Parser) expect(t token.Type, kind diagnostics.Kind) (*token.Token, bool) {
	if p.cur == nil || p.cur.Type != t {
		p.errorf(kind, "")
		return nil, false
	}
	tok := p.cur
	p.lex.Consume(t)
	p.advance()
	return tok, true
}

// sanitizeName replaces every non-alphanumeric byte with '_', used to turn
// a source-file stem into a module name.
func sanitizeName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' {
			b.WriteByte(ch)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ModuleNameFromPath derives a module name from a source path: the file
// stem (no directory, no extension), sanitized.
func ModuleNameFromPath(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	return sanitizeName(base)
}

// ParseFile parses the whole token stream into one ast.Module named after
// the source file's sanitized stem. It never returns a nil module: parse
// failures are reported into p.Errors and recovered from by skipping the
// offending token.
func (p *Parser) ParseFile() *ast.Module {
	mod := &ast.Module{
		Name: ModuleNameFromPath(p.path),
		Loc:  diagnostics.NewLocation(p.path, 1, 1),
	}

	for !p.atEOF() {
		switch {
		case p.cur.Type == token.MODULE:
			if nested := p.parseNestedModule(); nested != nil {
				p.nestedModules = append(p.nestedModules, nested)
			}
		case p.cur.Type == token.HASH || p.cur.Type == token.FUNCTION:
			fn := p.parseFunction()
			if fn != nil {
				if err := mod.AddFunction(fn); err != nil {
					p.Errors = append(p.Errors, err)
				}
			}
		case p.cur.Type == token.IMPORT:
			p.parseImport()
		default:
			p.advance()
		}
	}

	return mod
}

// parseNestedModule parses `module Ident { Function* }`.
func (p *Parser) parseNestedModule() *ast.Module {
	modTok := p.cur
	p.lex.Consume(token.MODULE)
	p.advance()

	nameTok, ok := p.expect(token.IDENTIFIER, diagnostics.ExpectedMod)
	if !ok {
		return nil
	}
	nested := &ast.Module{
		Name: nameTok.Lexeme,
		Loc:  diagnostics.NewLocation(p.path, modTok.Row, modTok.Col),
	}

	if _, ok := p.expect(token.LBRACE, diagnostics.ExpectedFnBody); !ok {
		return nested
	}
	for !p.atEOF() && p.cur.Type != token.RBRACE {
		if p.cur.Type == token.HASH || p.cur.Type == token.FUNCTION {
			fn := p.parseFunction()
			if fn != nil {
				if err := nested.AddFunction(fn); err != nil {
					p.Errors = append(p.Errors, err)
				}
			}
			continue
		}
		p.advance()
	}
	if !p.atEOF() {
		p.lex.Consume(token.RBRACE)
		p.advance()
	}
	return nested
}

// parseImport parses `import Module::Function;`.
func (p *Parser) parseImport() {
	importTok := p.cur
	p.lex.Consume(token.IMPORT)
	p.advance()

	modTok, ok := p.expect(token.IDENTIFIER, diagnostics.ExpectedMod)
	if !ok {
		return
	}

	// "::" is two COLON tokens in this lexer's single-char recognition
	// set; require them back to back.
	if _, ok := p.expect(token.COLON, diagnostics.ExpectedColon); !ok {
		return
	}
	if _, ok := p.expect(token.COLON, diagnostics.ExpectedColon); !ok {
		return
	}

	fnTok, ok := p.expect(token.IDENTIFIER, diagnostics.ExpectedFnName)
	if !ok {
		return
	}

	p.Imports = append(p.Imports, Import{
		ModuleName:   modTok.Lexeme,
		FunctionName: fnTok.Lexeme,
		Loc:          diagnostics.NewLocation(p.path, importTok.Row, importTok.Col),
	})

	if p.cur != nil && p.cur.Type == token.SEMICOLON {
		p.lex.Consume(token.SEMICOLON)
		p.advance()
	}
}

// NestedModules returns any `module { ... }` blocks discovered while
// parsing the file, for the caller to append to the Program alongside the
// implicit file module.
func (p *Parser) NestedModules() []*ast.Module { return p.nestedModules }

// --- qbit literal fine-grained validation -----------------------------

// parseQbitLiteral turns a token.QBIT's raw body (already comma-delimited
// text scanned by the lexer, or empty when the lexer never found a '(')
// into a Literal, producing ExpectedParenth / ExpectedComma /
// ExpectedAmpinQbit at the right granularity.
func (p *Parser) parseQbitLiteral(tok *token.Token) ast.Expr {
	loc := diagnostics.NewLocation(p.path, tok.Row, tok.Col)
	if tok.Lexeme == "0q" && tok.Literal == "" {
		p.errorf(diagnostics.ExpectedParenth, "")
		return &ast.Literal{Loc: loc, Kind: ast.QbitLiteral}
	}

	parts := strings.Split(tok.Literal, ",")
	if len(parts) != 2 {
		p.errorf(diagnostics.ExpectedComma, "qbit literal requires exactly two amplitudes")
		return &ast.Literal{Loc: loc, Kind: ast.QbitLiteral}
	}

	amp0, err0 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	amp1, err1 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err0 != nil || err1 != nil {
		p.errorf(diagnostics.ExpectedAmpinQbit, "")
		return &ast.Literal{Loc: loc, Kind: ast.QbitLiteral}
	}

	return &ast.Literal{Loc: loc, Kind: ast.QbitLiteral, Amp0: amp0, Amp1: amp1}
}

// typeFromToken maps a type-position identifier to a typesystem.Type.
// Recognized spellings match typesystem.Type.String().
func typeFromToken(tok *token.Token) (typesystem.Type, bool) {
	switch tok.Lexeme {
	case "bit":
		return typesystem.Bit, true
	case "qbit":
		return typesystem.Qbit, true
	case "rad":
		return typesystem.Rad, true
	case "f64":
		return typesystem.F64, true
	case "bool":
		return typesystem.Bool, true
	default:
		return typesystem.Bottom, false
	}
}
