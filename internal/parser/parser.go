// Package parser turns the classified token stream of one header into
// a symbol tree. It is a single-pass declaration parser: expressions
// are never evaluated, only captured as raw text, and scope nesting
// lives on the builder's frame stack rather than the Go call stack.
package parser

import (
	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// Options control error reporting for one parse.
type Options struct {
	// MaxErrors caps the number of syntax errors reported for a file.
	// Zero means no cap.
	MaxErrors uint

	// CurrentErrors counts errors reported so far. It is exported so a
	// driver can share one budget across phases.
	CurrentErrors uint

	// Reporter receives every diagnostic. Must not be nil.
	Reporter diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	return o.MaxErrors > 0 && o.CurrentErrors >= o.MaxErrors
}

// Result is the outcome of scanning one file.
type Result struct {
	// Tree is the symbol tree. It is nil when a lexical error latched:
	// a broken token stream is not worth guessing declarations from.
	Tree *decl.Tree

	// Bag is the diagnostic bag when the reporter was a BagReporter,
	// nil otherwise.
	Bag *diag.Bag
}

// Parser drives the lexer and the tree builder.
type Parser struct {
	lx       *lexer.Lexer
	builder  *decl.Builder
	file     *source.File
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span
}

// Scan parses one file's token stream into a symbol tree.
func Scan(fs *source.FileSet, file *source.File, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:      lx,
		builder: decl.NewBuilder(),
		file:    file,
		fs:      fs,
		opts:    opts,
	}

	p.parseAll()

	if !lx.Failed() {
		for _, open := range p.builder.Unclosed() {
			p.report(diag.SynUnbalancedScope, diag.SevError, open, "scope is never closed")
		}
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	tree := p.builder.Finish(p.lx.Peek().Span)
	if lx.Failed() {
		return Result{Bag: bag}
	}
	return Result{Tree: tree, Bag: bag}
}

func (p *Parser) parseAll() {
	for !p.at(token.EOF) {
		if p.builder.InStruct() {
			p.parseMember()
		} else {
			p.parseTopLevel()
		}
	}
}

// parseTopLevel handles one declaration at file or namespace scope.
func (p *Parser) parseTopLevel() {
	switch p.lx.Peek().Kind {
	case token.Directive:
		p.parseDirective()
	case token.KwNamespace:
		p.parseNamespace()
	case token.KwStruct, token.KwClass:
		p.parseStruct(nil)
	case token.KwEnum:
		p.parseEnum(nil)
	case token.KwTypedef:
		p.parseTypedef()
	case token.LBracket:
		attrs, ok := p.parseAttrRun()
		if !ok {
			return
		}
		p.parseAttributedTop(attrs)
	case token.RBrace:
		closeTok := p.advance()
		if !p.builder.Pop(closeTok.Span) {
			p.report(diag.SynUnexpectedToken, diag.SevError, closeTok.Span, "unexpected '}' with no open scope")
		}
	case token.Semicolon:
		p.advance() // stray empty declaration
	case token.Ident, token.KwConst:
		p.parseFreeDecl(nil)
	default:
		tok := p.lx.Peek()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected "+describeToken(tok)+" at declaration scope")
		p.resyncTop()
	}
}

// parseAttributedTop attaches a completed attribute run to the next
// declaration at namespace scope.
func (p *Parser) parseAttributedTop(attrs []decl.Attr) {
	switch p.lx.Peek().Kind {
	case token.KwStruct, token.KwClass:
		p.parseStruct(attrs)
	case token.KwEnum:
		p.parseEnum(attrs)
	case token.Ident, token.KwConst:
		p.parseFreeDecl(attrs)
	default:
		p.report(diag.SynDanglingAttribute, diag.SevError, attrsSpan(attrs), "attribute is not followed by a declaration")
	}
}

// parseFreeDecl handles an identifier-led declaration at namespace
// scope. Function-shaped declarations are recorded; anything else
// (global variables, macro invocations without parentheses) is skipped
// without a diagnostic, like the rest of the expression language.
func (p *Parser) parseFreeDecl(attrs []decl.Attr) {
	head := p.declHead()
	if p.at(token.LParen) {
		p.finishMethod(head, attrs)
		return
	}
	p.skipDeclRemainder()
}

func describeToken(tok token.Token) string {
	if tok.Text != "" {
		return "\"" + tok.Text + "\""
	}
	return tok.Kind.String()
}
