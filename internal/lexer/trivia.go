package lexer

import (
	"hdrscan/internal/diag"
	"hdrscan/internal/token"
)

// collectLeadingTrivia gathers the trivia run before a significant token.
//   - ' ' and '\t' coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - //... up to \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment; the first */ closes it, block
//     comments do not nest; unterminated at EOF is a fatal error reported
//     at the opening position
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// spaces/tabs (lone \r is treated as horizontal space)
		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// newlines (coalesce a run)
		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			lx.bol = true
			continue
		}

		// comments
		if b == '/' {
			if lx.scanCommentIntoHold() {
				if lx.failed {
					return
				}
				continue
			}
		}

		// no more trivia
		break
	}
}

// //... and /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/': // "//..." to end of line
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.TriviaLineComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	case '*': // "/* ... */", first */ closes
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' {
				lx.cursor.Bump()
				if lx.cursor.Eat('/') {
					closed = true
					break
				}
				continue
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLexUnterminated(diag.LexUnterminatedBlockComment, sp, "unterminated block comment", 2, "comment opened here")
			return true
		}
		// comments are not whitespace: a '#' after one is not a directive
		lx.bol = false
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.TriviaBlockComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	default:
		// not a comment; rewind so '/' scans as an operator
		lx.cursor.Reset(start)
		return false
	}
}
