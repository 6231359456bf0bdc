package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef // typedef
	// KwConst represents the 'const' keyword.
	KwConst // const

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a floating-point literal token.
	FloatLit
	// StringLit represents a double-quoted string literal token.
	StringLit
	// CharLit represents a single-quoted character literal token.
	CharLit

	// Directive represents a whole preprocessor line, continuations
	// included, starting at a '#' that opens the line.
	Directive

	// Plus represents the plus operator token.
	Plus // +
	// PlusPlus represents the increment operator token.
	PlusPlus // ++
	// PlusAssign represents the add-assign operator token.
	PlusAssign // +=
	// Minus represents the minus operator token.
	Minus // -
	// MinusMinus represents the decrement operator token.
	MinusMinus // --
	// MinusAssign represents the subtract-assign operator token.
	MinusAssign // -=
	// Arrow represents the member-through-pointer operator token.
	Arrow // ->
	// Star represents the star operator token.
	Star // *
	// StarAssign represents the multiply-assign operator token.
	StarAssign // *=
	// Slash represents the slash operator token.
	Slash // /
	// SlashAssign represents the divide-assign operator token.
	SlashAssign // /=
	// Percent represents the modulo operator token.
	Percent // %
	// PercentAssign represents the modulo-assign operator token.
	PercentAssign // %=
	// Assign represents the assignment operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the logical-not operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Shl represents the left-shift operator token.
	Shl // <<
	// ShlAssign represents the left-shift-assign operator token.
	ShlAssign // <<=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Shr represents the right-shift operator token.
	Shr // >>
	// ShrAssign represents the right-shift-assign operator token.
	ShrAssign // >>=
	// Amp represents the bitwise-and operator token.
	Amp // &
	// AmpAmp represents the logical-and operator token.
	AmpAmp // &&
	// AmpAssign represents the and-assign operator token.
	AmpAssign // &=
	// Pipe represents the bitwise-or operator token.
	Pipe // |
	// PipePipe represents the logical-or operator token.
	PipePipe // ||
	// PipeAssign represents the or-assign operator token.
	PipeAssign // |=
	// Caret represents the bitwise-xor operator token.
	Caret // ^
	// CaretAssign represents the xor-assign operator token.
	CaretAssign // ^=
	// Tilde represents the bitwise-not operator token.
	Tilde // ~
	// Question represents the ternary question operator token.
	Question // ?
	// Colon represents the colon token.
	Colon // :
	// ColonColon represents the scope-resolution token.
	ColonColon // ::
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the member-access token.
	Dot // .
	// Ellipsis represents the variadic-parameter token.
	Ellipsis // ...
	// Hash represents a '#' that does not open a preprocessor line.
	Hash // #
	// LParen represents the left-parenthesis token.
	LParen // (
	// RParen represents the right-parenthesis token.
	RParen // )
	// LBrace represents the left-brace token.
	LBrace // {
	// RBrace represents the right-brace token.
	RBrace // }
	// LBracket represents the left-bracket token.
	LBracket // [
	// RBracket represents the right-bracket token.
	RBracket // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwNamespace:   "KwNamespace",
	KwStruct:      "KwStruct",
	KwClass:       "KwClass",
	KwEnum:        "KwEnum",
	KwTypedef:     "KwTypedef",
	KwConst:       "KwConst",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	CharLit:       "CharLit",
	Directive:     "Directive",
	Plus:          "Plus",
	PlusPlus:      "PlusPlus",
	PlusAssign:    "PlusAssign",
	Minus:         "Minus",
	MinusMinus:    "MinusMinus",
	MinusAssign:   "MinusAssign",
	Arrow:         "Arrow",
	Star:          "Star",
	StarAssign:    "StarAssign",
	Slash:         "Slash",
	SlashAssign:   "SlashAssign",
	Percent:       "Percent",
	PercentAssign: "PercentAssign",
	Assign:        "Assign",
	EqEq:          "EqEq",
	Bang:          "Bang",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Shl:           "Shl",
	ShlAssign:     "ShlAssign",
	Gt:            "Gt",
	GtEq:          "GtEq",
	Shr:           "Shr",
	ShrAssign:     "ShrAssign",
	Amp:           "Amp",
	AmpAmp:        "AmpAmp",
	AmpAssign:     "AmpAssign",
	Pipe:          "Pipe",
	PipePipe:      "PipePipe",
	PipeAssign:    "PipeAssign",
	Caret:         "Caret",
	CaretAssign:   "CaretAssign",
	Tilde:         "Tilde",
	Question:      "Question",
	Colon:         "Colon",
	ColonColon:    "ColonColon",
	Semicolon:     "Semicolon",
	Comma:         "Comma",
	Dot:           "Dot",
	Ellipsis:      "Ellipsis",
	Hash:          "Hash",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
