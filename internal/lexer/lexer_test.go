package lexer

import (
	"strconv"
	"testing"

	"github.com/quale-lang/qcc/internal/token"
)

func scanAll(t *testing.T, src string) []*token.Token {
	t.Helper()
	l := New([]byte(src), "test.ql")
	var toks []*token.Token
	for {
		tok := l.NextToken()
		if tok == nil {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestNextTokenPunctuation(t *testing.T) {
	toks := scanAll(t, "fn f(x: bit): bit { return x; }")
	want := []token.Type{
		token.FUNCTION, token.IDENTIFIER, token.LPAREN, token.IDENTIFIER, token.COLON,
		token.IDENTIFIER, token.RPAREN, token.COLON, token.IDENTIFIER, token.LBRACE,
		token.RETURN, token.IDENTIFIER, token.SEMICOLON, token.RBRACE,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got %s, want %s", i, tok.Type, want[i])
		}
	}
}

func TestTwoCharComparisons(t *testing.T) {
	tests := []struct {
		src  string
		want token.Type
	}{
		{"==", token.EQ},
		{"!=", token.NEQ},
		{"<=", token.LTE},
		{">=", token.GTE},
		{"<", token.LT},
		{">", token.GT},
	}
	for _, tt := range tests {
		toks := scanAll(t, tt.src)
		if len(toks) != 1 || toks[0].Type != tt.want {
			t.Errorf("scanning %q: got %v, want single %s", tt.src, toks, tt.want)
		}
	}
}

func TestQbitLiteral(t *testing.T) {
	toks := scanAll(t, "0q(0.6, 0.8)")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	if toks[0].Type != token.QBIT {
		t.Fatalf("got %s, want QBIT", toks[0].Type)
	}
	if toks[0].Literal != "0.6, 0.8" {
		t.Errorf("literal = %q, want %q", toks[0].Literal, "0.6, 0.8")
	}
}

func TestQbitLiteralMissingParen(t *testing.T) {
	toks := scanAll(t, "0q")
	if len(toks) != 1 || toks[0].Type != token.QBIT || toks[0].Literal != "" {
		t.Fatalf("got %+v, want a bare QBIT with empty literal", toks)
	}
}

func TestDigitLiteral(t *testing.T) {
	toks := scanAll(t, "3.14")
	if len(toks) != 1 || toks[0].Type != token.DIGIT {
		t.Fatalf("got %+v, want single DIGIT", toks)
	}
	val, err := strconv.ParseFloat(toks[0].Literal, 64)
	if err != nil {
		t.Fatalf("ParseFloat(%q) error: %v", toks[0].Literal, err)
	}
	if val != 3.14 {
		t.Errorf("Literal parsed = %v, want 3.14", val)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "let module import true false rotate")
	want := []token.Type{token.LET, token.MODULE, token.IMPORT, token.BOOLEAN, token.BOOLEAN, token.IDENTIFIER}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got %s, want %s", i, tok.Type, want[i])
		}
	}
}

func TestStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	if len(toks) != 1 || toks[0].Type != token.LITERAL {
		t.Fatalf("got %+v, want single LITERAL", toks)
	}
	if toks[0].Literal != "hello world" {
		t.Errorf("Literal = %q, want %q", toks[0].Literal, "hello world")
	}
}

func TestComment(t *testing.T) {
	toks := scanAll(t, "let x = 1 // a trailing comment\n")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4 (comment skipped), got %+v", len(toks), toks)
	}
}

func TestConsumePanicsOnMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Consume to panic on a mismatched token")
		}
	}()
	l := New([]byte("let"), "test.ql")
	l.NextToken()
	l.Consume(token.IDENTIFIER)
}

func TestRowCol(t *testing.T) {
	toks := scanAll(t, "let\nlet")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Row != 1 {
		t.Errorf("first token row = %d, want 1", toks[0].Row)
	}
	if toks[1].Row != 2 {
		t.Errorf("second token row = %d, want 2", toks[1].Row)
	}
}
