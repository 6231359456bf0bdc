package parser

import (
	"slices"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// advance consumes the current token and remembers its span so that
// diagnostics at EOF can point just past the last real token.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// at reports whether the current token is of kind k.
func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// atAny reports whether the current token is any of the given kinds.
func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// diagSpan picks the span for a diagnostic at the current position.
// When the lookahead is a zero-width EOF or Invalid token, the point
// just past the last consumed token reads better in caret output.
func (p *Parser) diagSpan() source.Span {
	tok := p.lx.Peek()
	if (tok.Kind == token.EOF || tok.Kind == token.Invalid) && tok.Span.Len() == 0 && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// expect consumes a token of kind k. On a mismatch it reports the
// given diagnostic and leaves the offending token in place.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, diag.SevError, p.diagSpan(), msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// err reports an error diagnostic at the current position.
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

// report forwards a diagnostic to the reporter, honoring the error
// budget: once MaxErrors is reached, further errors are dropped and a
// single closing note is emitted.
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return
		}
		p.opts.CurrentErrors++
		if p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil)
			p.opts.Reporter.Report(diag.SynTooManyErrors, diag.SevError, sp, "too many syntax errors, giving up on this file", nil)
			return
		}
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
}

// resyncUntil skips tokens until one of the stop kinds or EOF is the
// lookahead. The stop token itself is not consumed.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(stop...) {
		p.advance()
	}
}

// resyncDecl recovers to the next declaration boundary: a ';' is
// consumed, a scope-closing '}' is left for the main loop.
func (p *Parser) resyncDecl() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncTop recovers at namespace scope, stopping at anything that can
// open a fresh declaration.
func (p *Parser) resyncTop() {
	p.resyncUntil(
		token.Semicolon, token.RBrace,
		token.KwNamespace, token.KwStruct, token.KwClass,
		token.KwEnum, token.KwTypedef,
		token.Directive, token.LBracket,
	)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// skipDeclRemainder consumes the tail of an unrecognized declaration
// up to its ';', balancing braces so an initializer list cannot close
// the enclosing scope early. The ';' is consumed; a scope-closing '}'
// is left in place.
func (p *Parser) skipDeclRemainder() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// rawBetween slices the original source text between two offsets.
// Raw captures (default values, array sizes, bodies) are taken from
// the file content so the text is preserved exactly as written.
func (p *Parser) rawBetween(start, end uint32) string {
	if start >= end || int(end) > len(p.file.Content) {
		return ""
	}
	return string(p.file.Content[start:end])
}

// attrsSpan covers an attribute run for dangling-attribute reports.
func attrsSpan(attrs []decl.Attr) source.Span {
	sp := attrs[0].Span
	for _, a := range attrs[1:] {
		sp = sp.Cover(a.Span)
	}
	return sp
}
