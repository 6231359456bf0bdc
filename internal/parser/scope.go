package parser

import (
	"strings"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// parseNamespace opens a namespace frame. Anonymous namespaces keep an
// empty name and still contribute a scope.
func (p *Parser) parseNamespace() {
	kw := p.advance()
	name := ""
	open := kw.Span
	if p.at(token.Ident) {
		nameTok := p.advance()
		name = nameTok.Text
		open = kw.Span.Cover(nameTok.Span)
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' after namespace name"); !ok {
		p.resyncTop()
		return
	}
	p.builder.PushNamespace(name, open)
}

// parseStruct opens a struct frame for `struct` and `class` alike.
// Forward declarations are consumed without a record; a base clause is
// skipped up to the body.
func (p *Parser) parseStruct(attrs []decl.Attr) {
	kw := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name after '"+kw.Text+"'")
	if !ok {
		p.resyncDecl()
		return
	}
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if p.at(token.Colon) {
		p.resyncUntil(token.LBrace, token.Semicolon)
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' to open the body of \""+nameTok.Text+"\""); !ok {
		p.resyncDecl()
		return
	}
	p.builder.PushStruct(nameTok.Text, kw.Span.Cover(nameTok.Span), attrs)
}

// parseEnum parses a whole enum declaration, entries included. Scoped
// enums (`enum class`) and an underlying-type clause are accepted; the
// underlying type is not recorded.
func (p *Parser) parseEnum(attrs []decl.Attr) {
	kw := p.advance()
	if p.at(token.KwClass) || p.at(token.KwStruct) {
		p.advance()
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name after 'enum'")
	if !ok {
		p.resyncDecl()
		return
	}
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if p.at(token.Colon) {
		p.resyncUntil(token.LBrace, token.Semicolon)
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' to open the body of \""+nameTok.Text+"\""); !ok {
		p.resyncDecl()
		return
	}
	p.builder.PushEnum(nameTok.Text, kw.Span.Cover(nameTok.Span), attrs)
	p.parseEnumEntries()
}

// parseEnumEntries walks the comma-separated entry list. Entry values
// are captured as raw text and never evaluated, so `1<<3` survives
// exactly as written.
func (p *Parser) parseEnumEntries() {
	for {
		if p.at(token.EOF) {
			return // left open; reported as an unclosed scope at the end
		}
		if p.at(token.RBrace) {
			closeTok := p.advance()
			p.builder.Pop(closeTok.Span)
			if p.at(token.Semicolon) {
				p.advance()
			}
			return
		}
		if p.at(token.Directive) {
			p.parseDirective()
			continue
		}

		nameTok, ok := p.expect(token.Ident, diag.SynEnumExpectEntry, "expected an enum entry name")
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		value := ""
		sp := nameTok.Span
		if p.at(token.Assign) {
			p.advance()
			value = p.captureEnumValue()
			sp = nameTok.Span.Cover(p.lastSpan)
		}
		p.builder.AddEnumEntry(nameTok.Text, value, sp)

		switch p.lx.Peek().Kind {
		case token.Comma:
			p.advance()
		case token.RBrace, token.EOF:
		default:
			p.err(diag.SynEnumExpectEntry, "expected ',' or '}' after enum entry")
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
		}
	}
}

// captureEnumValue captures an entry's value expression as raw text up
// to a top-level ',' or '}'.
func (p *Parser) captureEnumValue() string {
	start := p.lx.Peek().Span
	var end source.Span
	parens, braces := 0, 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if parens == 0 && braces == 0 && (k == token.Comma || k == token.RBrace) {
			break
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LParen:
			parens++
		case token.RParen:
			parens--
		case token.LBrace:
			braces++
		case token.RBrace:
			braces--
		}
		end = tok.Span
	}
	if end.End == 0 {
		return ""
	}
	return strings.TrimSpace(p.rawBetween(start.Start, end.End))
}
