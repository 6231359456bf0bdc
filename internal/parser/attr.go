package parser

import (
	"strings"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/token"
)

// parseAttrRun parses one or more `[[ ... ]]` blocks in a row. Each
// block contributes one attribute whose text is the raw content between
// the double brackets; the order of blocks is preserved.
func (p *Parser) parseAttrRun() ([]decl.Attr, bool) {
	var attrs []decl.Attr
	for p.at(token.LBracket) {
		open := p.advance()
		if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[[' to open an attribute"); !ok {
			p.resyncDecl()
			return nil, false
		}
		attr, ok := p.finishAttr(open)
		if !ok {
			return nil, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// finishAttr consumes tokens until the closing ']]'. A lone ']' inside
// the block does not close it; string literals were already tokenized,
// so a "]]" inside quotes cannot end the attribute either.
func (p *Parser) finishAttr(open token.Token) (decl.Attr, bool) {
	innerStart := p.lx.Peek().Span.Start
	for {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedAttribute, diag.SevError, open.Span, "attribute is never closed")
			return decl.Attr{}, false
		}
		if p.at(token.RBracket) {
			first := p.advance()
			if p.at(token.RBracket) {
				second := p.advance()
				return decl.Attr{
					Text: strings.TrimSpace(p.rawBetween(innerStart, first.Span.Start)),
					Span: open.Span.Cover(second.Span),
				}, true
			}
			continue
		}
		p.advance()
	}
}
