package lexer

import (
	"hdrscan/internal/diag"
	"hdrscan/internal/token"
)

// scanDirective scans a whole preprocessor line starting at a '#' that
// opens the line. A backslash immediately before the newline continues
// the directive onto the next line; the terminating newline itself is
// not consumed and becomes trivia for the next token.
func (lx *Lexer) scanDirective() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			if lx.cursor.Off > uint32(start) && lx.file.Content[lx.cursor.Off-1] == '\\' {
				lx.cursor.Bump()
				continue
			}
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "preprocessor line too long")
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	return token.Token{Kind: token.Directive, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
