package token

import (
	"hdrscan/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, or character literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, PlusPlus, PlusAssign, Minus, MinusMinus, MinusAssign, Arrow,
		Star, StarAssign, Slash, SlashAssign, Percent, PercentAssign,
		Assign, EqEq, Bang, BangEq, Lt, LtEq, Shl, ShlAssign, Gt, GtEq,
		Shr, ShrAssign, Amp, AmpAmp, AmpAssign, Pipe, PipePipe, PipeAssign,
		Caret, CaretAssign, Tilde, Question, Colon, ColonColon, Semicolon,
		Comma, Dot, Ellipsis, Hash, LParen, RParen, LBrace, RBrace,
		LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a declaration-introducer keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwNamespace, KwStruct, KwClass, KwEnum, KwTypedef, KwConst:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }
