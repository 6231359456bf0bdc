package parser

import (
	"strings"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// parseMember handles one declaration inside a struct body.
func (p *Parser) parseMember() {
	switch p.lx.Peek().Kind {
	case token.RBrace:
		closeTok := p.advance()
		p.builder.Pop(closeTok.Span)
		if p.at(token.Semicolon) {
			p.advance()
		}
	case token.Directive:
		p.parseDirective()
	case token.Semicolon:
		p.advance()
	case token.LBracket:
		attrs, ok := p.parseAttrRun()
		if !ok {
			return
		}
		p.parseAttributedMember(attrs)
	case token.KwStruct, token.KwClass:
		p.parseStruct(nil)
	case token.KwEnum:
		p.parseEnum(nil)
	case token.KwTypedef:
		p.parseTypedef()
	case token.Ident, token.KwConst:
		p.parseFieldOrMethod(nil)
	default:
		tok := p.lx.Peek()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected "+describeToken(tok)+" in struct body")
		p.resyncDecl()
	}
}

func (p *Parser) parseAttributedMember(attrs []decl.Attr) {
	switch p.lx.Peek().Kind {
	case token.KwStruct, token.KwClass:
		p.parseStruct(attrs)
	case token.KwEnum:
		p.parseEnum(attrs)
	case token.Ident, token.KwConst:
		p.parseFieldOrMethod(attrs)
	default:
		p.report(diag.SynDanglingAttribute, diag.SevError, attrsSpan(attrs), "attribute is not followed by a declaration")
	}
}

// declHead collects the type-and-name run of a declaration: identifiers,
// const qualifiers, scope resolution, pointers and references. The token
// that decides the declaration's shape is left unconsumed.
func (p *Parser) declHead() []token.Token {
	var head []token.Token
	for p.atAny(token.Ident, token.KwConst, token.ColonColon, token.Star, token.Amp) {
		head = append(head, p.advance())
	}
	return head
}

// parseFieldOrMethod disambiguates a member declaration by the token
// following its head: '(' is a method, anything else is a field.
func (p *Parser) parseFieldOrMethod(attrs []decl.Attr) {
	head := p.declHead()
	if len(head) == 0 {
		p.err(diag.SynMalformedDecl, "expected member declaration")
		p.resyncDecl()
		return
	}
	switch p.lx.Peek().Kind {
	case token.LParen:
		p.finishMethod(head, attrs)
	case token.LBracket, token.Assign, token.Semicolon, token.RBrace:
		// RBrace: a field missing its ';' before the scope closes still
		// has a complete shape, so keep it and let expect() complain.
		p.finishField(head, attrs)
	default:
		p.err(diag.SynMalformedDecl, "expected '(', '[', '=' or ';' after member name")
		p.resyncDecl()
	}
}

// finishMethod parses everything after the head of a function-shaped
// declaration: parameter list, trailing const, then either ';', '= ...;'
// or a braced body captured as raw text.
func (p *Parser) finishMethod(head []token.Token, attrs []decl.Attr) {
	if len(head) == 0 {
		p.err(diag.SynExpectIdentifier, "expected method name before '('")
		p.resyncDecl()
		return
	}
	nameTok := head[len(head)-1]
	if nameTok.Kind != token.Ident {
		p.report(diag.SynExpectIdentifier, diag.SevError, nameTok.Span, "expected method name before '('")
		p.resyncDecl()
		return
	}

	retType := ""
	if len(head) > 1 {
		retType = strings.TrimSpace(p.rawBetween(head[0].Span.Start, nameTok.Span.Start))
	}

	params, ok := p.parseParams()
	if !ok {
		p.resyncDecl()
		return
	}

	m := &decl.Method{
		ReturnType: retType,
		Name:       nameTok.Text,
		Params:     params,
		Attrs:      attrs,
	}
	if p.at(token.KwConst) {
		p.advance()
		m.IsConst = true
	}

	switch p.lx.Peek().Kind {
	case token.Semicolon:
		end := p.advance()
		m.Span = head[0].Span.Cover(end.Span)
	case token.LBrace:
		body, closed := p.parseBalancedBody()
		m.Body = body
		m.Span = head[0].Span.Cover(p.lastSpan)
		if !closed {
			p.builder.AddMethod(m)
			return
		}
	case token.Assign:
		// pure-virtual and defaulted declarations: `= 0;`, `= default;`
		p.skipDeclRemainder()
		m.Span = head[0].Span.Cover(p.lastSpan)
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' or a body after parameter list")
		p.resyncDecl()
		return
	}
	p.builder.AddMethod(m)
}

// finishField parses everything after the head of a data member:
// optional '[size]', optional '= default', then the closing ';'.
func (p *Parser) finishField(head []token.Token, attrs []decl.Attr) {
	nameTok := head[len(head)-1]
	if nameTok.Kind != token.Ident {
		p.report(diag.SynExpectIdentifier, diag.SevError, nameTok.Span, "expected field name")
		p.resyncDecl()
		return
	}
	if len(head) == 1 {
		p.report(diag.SynMalformedDecl, diag.SevError, nameTok.Span, "field \""+nameTok.Text+"\" is missing a type")
		p.resyncDecl()
		return
	}

	f := &decl.Field{
		Type:  strings.TrimSpace(p.rawBetween(head[0].Span.Start, nameTok.Span.Start)),
		Name:  nameTok.Text,
		Attrs: attrs,
	}

	if p.at(token.LBracket) {
		p.advance()
		f.IsArray = true
		f.ArraySize = p.captureArraySize()
		if _, ok := p.expect(token.RBracket, diag.SynMalformedDecl, "expected ']' to close array size"); !ok {
			p.resyncDecl()
			f.Span = head[0].Span.Cover(p.lastSpan)
			p.builder.AddField(f)
			return
		}
	}

	if p.at(token.Assign) {
		p.advance()
		f.Default = p.captureDefault()
	}

	msg := "expected ';' after field declaration"
	if f.Default != "" {
		msg = "expected ';' after field default value"
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, msg); !ok {
		p.resyncDecl()
	}
	f.Span = head[0].Span.Cover(p.lastSpan)
	p.builder.AddField(f)
}

// parseParams consumes a parenthesized parameter list.
func (p *Parser) parseParams() ([]decl.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectParamList, "expected '(' to open parameter list"); !ok {
		return nil, false
	}
	var params []decl.Param
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		param, ok := p.parseParam()
		if !ok {
			return params, false
		}
		params = append(params, param)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectParamList, "expected ')' to close parameter list"); !ok {
		return params, false
	}
	return params, true
}

// parseParam collects one parameter up to a top-level ',' or ')'. When
// the run ends in an identifier preceded by anything, that identifier
// is the name; otherwise the whole run is an unnamed parameter's type.
func (p *Parser) parseParam() (decl.Param, bool) {
	var toks []token.Token
	depth := 0
	for {
		k := p.lx.Peek().Kind
		if k == token.EOF {
			p.err(diag.SynExpectParamList, "parameter list is never closed")
			return decl.Param{}, false
		}
		if depth == 0 && (k == token.Comma || k == token.RParen) {
			break
		}
		if k == token.LBrace || k == token.Semicolon {
			p.err(diag.SynExpectParamList, "expected ')' to close parameter list")
			return decl.Param{}, false
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		toks = append(toks, tok)
	}
	if len(toks) == 0 {
		p.err(diag.SynExpectParamList, "expected a parameter before ','")
		return decl.Param{}, false
	}

	first, last := toks[0], toks[len(toks)-1]
	param := decl.Param{Span: first.Span.Cover(last.Span)}
	if last.Kind == token.Ident && len(toks) > 1 {
		param.Name = last.Text
		param.Type = strings.TrimSpace(p.rawBetween(first.Span.Start, last.Span.Start))
	} else {
		param.Type = strings.TrimSpace(p.rawBetween(first.Span.Start, last.Span.End))
	}
	return param, true
}

// parseBalancedBody captures a braced body as raw text, outer braces
// included. Comments and string contents were already stripped into
// trivia and literal tokens, so brace counting cannot be fooled by
// them. Returns false when EOF arrives before the body closes.
func (p *Parser) parseBalancedBody() (string, bool) {
	open := p.advance()
	depth := 1
	for !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return p.rawBetween(open.Span.Start, tok.Span.End), true
			}
		}
	}
	p.report(diag.SynUnbalancedScope, diag.SevError, open.Span, "body is never closed")
	return p.rawBetween(open.Span.Start, uint32(len(p.file.Content))), false
}

// captureDefault captures a field default value as raw text up to the
// terminating ';' or the scope's '}', balancing braces so initializer
// lists survive intact.
func (p *Parser) captureDefault() string {
	start := p.lx.Peek().Span
	var end source.Span
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 && (k == token.Semicolon || k == token.RBrace) {
			break
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		end = tok.Span
	}
	if end.End == 0 {
		return ""
	}
	return strings.TrimSpace(p.rawBetween(start.Start, end.End))
}

// captureArraySize captures the raw text between '[' and its matching
// ']'. An empty size (`[]`) comes back as "".
func (p *Parser) captureArraySize() string {
	start := p.lx.Peek().Span
	var end source.Span
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 && k == token.RBracket {
			break
		}
		if k == token.Semicolon || k == token.LBrace || k == token.RBrace {
			break
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LBracket:
			depth++
		case token.RBracket:
			depth--
		}
		end = tok.Span
	}
	if end.End == 0 {
		return ""
	}
	return strings.TrimSpace(p.rawBetween(start.Start, end.End))
}
