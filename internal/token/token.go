// Package token defines the token vocabulary the lexer produces and the
// parser consumes. The core never constructs a lexer itself in production
// use (lexing is an out-of-scope collaborator, see spec), but it depends on
// this exact closed set of kinds.
package token

// Kind is the closed sum of token kinds the lexer may produce.
type Kind int

const (
	Number Kind = iota
	Bool
	Identifier
	IdentifierFunc // identifier immediately followed by '('
	Keyword
	Operator
	Delimiter
	Datatype
	Newline
	EOF
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Bool:
		return "Bool"
	case Identifier:
		return "Identifier"
	case IdentifierFunc:
		return "IdentifierFunc"
	case Keyword:
		return "Keyword"
	case Operator:
		return "Operator"
	case Delimiter:
		return "Delimiter"
	case Datatype:
		return "Datatype"
	case Newline:
		return "Newline"
	case EOF:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Keyword is the closed set of reserved words.
type Keyword int

const (
	Let Keyword = iota
	Func
	If
	Else
	Loop
	For
	Return
	Import
	Struct
	Extern
	Break
)

var keywordNames = map[Keyword]string{
	Let: "let", Func: "func", If: "if", Else: "else", Loop: "loop",
	For: "for", Return: "return", Import: "import", Struct: "struct",
	Extern: "extern", Break: "break",
}

var Keywords = map[string]Keyword{
	"let": Let, "func": Func, "if": If, "else": Else, "loop": Loop,
	"for": For, "return": Return, "import": Import, "struct": Struct,
	"extern": Extern, "break": Break,
}

func (k Keyword) String() string { return keywordNames[k] }

// Operator is the closed set of operator spellings, including the two
// pseudo-operators CAST (->) and PATH (::), and the '!' mutability marker
// which the lexer reports as an operator so the parser can treat
// "basetype !" uniformly with the rest of the type grammar.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Mod
	Assign
	Eq
	Neq
	Gt
	Lt
	Ge
	Le
	BitAnd
	BitOr
	BitXor
	Shl
	Shr
	Cast // ->
	Path // ::
	Mut  // !
)

var operatorNames = map[Operator]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Assign: "=",
	Eq: "==", Neq: "!=", Gt: ">", Lt: "<", Ge: ">=", Le: "<=",
	BitAnd: "&", BitOr: "|", BitXor: "^", Shl: "<<", Shr: ">>",
	Cast: "->", Path: "::", Mut: "!",
}

func (o Operator) String() string { return operatorNames[o] }

// Precedence returns the shunting-yard precedence for a binary operator.
// LPAREN uses the sentinel value 0; Mut and Assign are never pushed onto
// the operator stack during expression parsing.
func (o Operator) Precedence() int {
	switch o {
	case BitOr:
		return 1
	case BitXor:
		return 2
	case BitAnd:
		return 3
	case Eq, Neq:
		return 4
	case Lt, Le, Gt, Ge:
		return 5
	case Shl, Shr:
		return 6
	case Add, Sub:
		return 7
	case Mul, Div, Mod:
		return 8
	case Cast:
		return 10
	default:
		return 0
	}
}

// Delimiter is the closed set of bracket/separator tokens.
type Delimiter int

const (
	LParen Delimiter = iota
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	// Dot has no counterpart in the original closed delimiter set, but the
	// grammar's "name.field" / "name.method()" forms require a token for
	// it; see DESIGN.md.
	Dot
)

var delimiterNames = map[Delimiter]string{
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Dot: ".",
}

func (d Delimiter) String() string { return delimiterNames[d] }

// BaseType is the closed set of primitive datatype keywords the lexer
// recognizes. Array and Custom types are assembled by the parser from a
// BaseType token plus surrounding syntax; they have no single token form.
type BaseType int

const (
	U8 BaseType = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	BoolType
	StringType
)

var baseTypeNames = map[BaseType]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	F32: "f32", F64: "f64", BoolType: "bool", StringType: "string",
}

var BaseTypes = map[string]BaseType{
	"u8": U8, "u16": U16, "u32": U32, "u64": U64,
	"i8": I8, "i16": I16, "i32": I32, "i64": I64,
	"f32": F32, "f64": F64, "bool": BoolType, "string": StringType,
}

func (b BaseType) String() string { return baseTypeNames[b] }

// Token is a single lexical unit: a kind plus an optional lexeme value and
// source position. Exactly one of the Keyword/Operator/Delimiter/Base
// fields is meaningful, selected by Kind.
type Token struct {
	Kind   Kind
	Value  string // identifier name, number/bool literal text, custom type name
	Kw     Keyword
	Op     Operator
	Delim  Delimiter
	Base   BaseType
	Line   int
	Column int
}

func (t Token) String() string {
	switch t.Kind {
	case Keyword:
		return t.Kw.String()
	case Operator:
		return t.Op.String()
	case Delimiter:
		return t.Delim.String()
	case Datatype:
		if t.Value != "" {
			return t.Value
		}
		return t.Base.String()
	case EOF:
		return "EOF"
	case Newline:
		return "newline"
	default:
		return t.Value
	}
}
