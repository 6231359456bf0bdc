package parser

import (
	"strings"
	"unicode"

	"hdrscan/internal/decl"
)

// parseDirective records one preprocessor line. The lexer already
// merged backslash continuations into a single token.
func (p *Parser) parseDirective() {
	tok := p.advance()
	d := classifyDirective(tok.Text)
	d.Span = tok.Span
	p.builder.AddDirective(d)
}

// classifyDirective splits a raw preprocessor line into its record by
// the first word after '#'. Only includes get further parsing; defines
// and pragmas are kept whole for callers that want to inspect them.
func classifyDirective(text string) decl.Directive {
	d := decl.Directive{Kind: decl.DirOther, Text: text}

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "#"))
	word := rest
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		word = rest[:i]
	}

	switch word {
	case "include":
		d.Kind = decl.DirInclude
		d.IncludePath, d.System = includePath(rest[len(word):])
	case "define":
		d.Kind = decl.DirDefine
	case "pragma":
		d.Kind = decl.DirPragma
	}
	return d
}

// includePath extracts the target of an include line. Quoted paths are
// project-relative; angle-bracket paths are system includes.
func includePath(s string) (path string, system bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' {
		if i := strings.IndexByte(s[1:], '"'); i >= 0 {
			return s[1 : 1+i], false
		}
	}
	if len(s) >= 2 && s[0] == '<' {
		if i := strings.IndexByte(s, '>'); i > 0 {
			return s[1:i], true
		}
	}
	return "", false
}
