package parser

import (
	"strings"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/token"
)

// parseTypedef records a `typedef TARGET NAME;` alias. The target is
// everything between the keyword and the final identifier, captured as
// raw text so qualified names and pointers come through verbatim. The
// alias lands on the nearest enclosing namespace regardless of where
// the typedef appears.
func (p *Parser) parseTypedef() {
	kw := p.advance()

	var toks []token.Token
	for !p.atAny(token.EOF, token.Semicolon, token.RBrace) {
		toks = append(toks, p.advance())
	}

	if len(toks) < 2 || toks[len(toks)-1].Kind != token.Ident {
		p.report(diag.SynExpectTypedefAlias, diag.SevError, p.diagSpan(), "expected 'typedef TARGET NAME;'")
		if p.at(token.Semicolon) {
			p.advance()
		}
		return
	}

	nameTok := toks[len(toks)-1]
	sp := kw.Span.Cover(nameTok.Span)
	if end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after typedef"); ok {
		sp = kw.Span.Cover(end.Span)
	}

	p.builder.AddAlias(&decl.Alias{
		Name:   nameTok.Text,
		Target: strings.TrimSpace(p.rawBetween(toks[0].Span.Start, nameTok.Span.Start)),
		Span:   sp,
	})
}
