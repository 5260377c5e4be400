package diagnostics

// Kind is a closed sum type naming every diagnostic qcc can raise. It is
// intentionally a fixed enumeration (no user-defined kinds) so every stage
// exhaustively matches on it and Display always has a sentence to print.
type Kind int

const (
	// Driver / I/O.
	InvalidArgs Kind = iota
	NoSuchArg
	NoFile
	CmdlineErr

	// Lexer.
	LexerError
	ExpectedAttr

	// Parser (syntactic).
	ExpectedFn
	ExpectedFnName
	ExpectedFnArgs
	ExpectedParamType
	ExpectedType
	ExpectedFnBody
	ExpectedFnReturnType
	ExpectedFnBodyEnd
	ExpectedMod
	ExpectedLet
	ExpectedAssign
	ExpectedSemicolon
	ExpectedExpr
	ExpectedParenth
	ExpectedOpcode
	ExpectedComma
	ExpectedColon
	ExpectedOpenBracket
	ExpectedClosedBracket
	ExpectedQbit
	ExpectedAmpinQbit
	UnexpectedStr
	UnexpectedDigit
	UnexpectedExpr
	UnknownOpcode
	UnknownBinaryExpr

	// Semantic.
	UnexpectedAttr
	UnknownModName
	UnknownImport
	RedefinedFunction
	ExpectedFnForAttr
	UnknownType
	TypeMismatch
	TypeError
	UnexpectedType
	ImportCycle

	// Back-end.
	TranslationError

	// Aggregate.
	ParseError
)

var sentences = map[Kind]string{
	InvalidArgs:           "invalid command-line arguments",
	NoSuchArg:             "no such command-line argument",
	NoFile:                "no input file given",
	CmdlineErr:            "error parsing the command line",
	LexerError:            "unrecognized token",
	ExpectedAttr:          "expected a well-formed attribute list",
	ExpectedFn:            "expected 'fn'",
	ExpectedFnName:        "expected a function name",
	ExpectedFnArgs:        "expected function arguments",
	ExpectedParamType:     "expected a parameter type",
	ExpectedType:          "expected a type",
	ExpectedFnBody:        "expected a function body",
	ExpectedFnReturnType:  "expected a function return type",
	ExpectedFnBodyEnd:     "expected '}' to close the function body",
	ExpectedMod:           "expected a module",
	ExpectedLet:           "expected 'let'",
	ExpectedAssign:        "expected '='",
	ExpectedSemicolon:     "expected ';'",
	ExpectedExpr:          "expected an expression",
	ExpectedParenth:       "expected ')'",
	ExpectedOpcode:        "expected a binary operator",
	ExpectedComma:         "expected ','",
	ExpectedColon:         "expected ':'",
	ExpectedOpenBracket:   "expected '['",
	ExpectedClosedBracket: "expected ']'",
	ExpectedQbit:          "expected a qbit literal of the form 0q(a0, a1)",
	ExpectedAmpinQbit:     "expected a numeric amplitude in the qbit literal",
	UnexpectedStr:         "unexpected string literal",
	UnexpectedDigit:       "unexpected digit",
	UnexpectedExpr:        "unexpected expression",
	UnknownOpcode:         "unknown operator",
	UnknownBinaryExpr:     "unrecognized binary expression",
	UnexpectedAttr:        "unrecognized attribute",
	UnknownModName:        "unknown module name",
	UnknownImport:         "unknown import",
	RedefinedFunction:     "function redefined within the same module",
	ExpectedFnForAttr:     "expected an attribute to be followed by 'fn'",
	UnknownType:           "unable to infer type",
	TypeMismatch:          "type mismatch",
	TypeError:             "one or more type errors occurred",
	UnexpectedType:        "unexpected type",
	ImportCycle:           "cyclic import",
	TranslationError:      "translation to OpenQASM failed",
	ParseError:            "one or more parse errors occurred",
}

// String renders the fixed English sentence for k.
func (k Kind) String() string {
	if s, ok := sentences[k]; ok {
		return s
	}
	return "unknown error"
}
