package lexer

import (
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// maxTokenLength caps a single token's byte length. Anything longer is
// almost certainly a runaway construct, not a real header.
const maxTokenLength = 1 << 16

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
	bol    bool           // only whitespace seen since the last newline
	failed bool           // a fatal lexical error latched; Next yields EOF
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
		bol:    true,
	}
}

// Next returns the next significant token with its Leading trivia
// attached. After EOF or a fatal lexical error it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.failed {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Text: ""}
	}

	lx.collectLeadingTrivia()

	if lx.failed {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Text: ""}
	}

	if lx.cursor.EOF() {
		// EOF keeps its leading trivia so trailing comments survive
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '#' && lx.bol:
		// '#' opening a line starts a preprocessor directive
		tok = lx.scanDirective()

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// possible Unicode identifier; scanIdentOrKeyword sorts it out
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.bol = false
	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Failed reports whether a fatal lexical error occurred. Once failed,
// the token stream is over; callers should abandon the file.
func (lx *Lexer) Failed() bool {
	return lx.failed
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
