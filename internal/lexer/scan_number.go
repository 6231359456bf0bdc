package lexer

import (
	"hdrscan/internal/diag"
	"hdrscan/internal/token"
)

// Supports: 0, 123, 0x..., 0b..., leading-zero octals, 1.0, .5, 1e-3,
// 1.0e+10, and integer/float suffixes (u, l, f in any case and order).
// Suffixes stay in Token.Text; Kind reflects int vs float shape only.
// Malformed forms report to opts.Reporter and latch the lexer.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	kind := token.IntLit

	// leading dot: the ".digits" form
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		goto emitWithMaybeExp
	}

	// leading 0 with a base prefix?
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '0' && lx.cursor.Peek() != '1' {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected binary digit after '0b'")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for lx.cursor.Peek() == '0' || lx.cursor.Peek() == '1' {
				lx.cursor.Bump()
			}
			goto emit
		case 'x', 'X':
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after '0x'")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			goto emit
		default:
			// plain "0", a leading-zero octal, or "0." float
		}
	}

	// decimal integer part
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// fraction
	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '.' && b1 == '.' {
			// "..." is the ellipsis token, not part of the number
		} else {
			lx.cursor.Bump()
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

emitWithMaybeExp:
	// exponent; "10e" with nothing number-ish after is left for the
	// suffix/ident scanners rather than claimed here
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		_, b1, ok := lx.cursor.Peek2()
		hasExp := ok && (isDec(b1) || b1 == '+' || b1 == '-')
		if hasExp {
			kind = token.FloatLit
			lx.cursor.Bump() // e/E
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

emit:
	// integer/float suffixes: 10u, 100UL, 1.5f, 7LL
	for {
		b := lx.cursor.Peek()
		if b == 'u' || b == 'U' || b == 'l' || b == 'L' {
			lx.cursor.Bump()
			continue
		}
		if (b == 'f' || b == 'F') && kind == token.FloatLit {
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
