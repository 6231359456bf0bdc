package decl

import "hdrscan/internal/source"

// DirectiveKind classifies a preprocessor line by its first word.
type DirectiveKind uint8

const (
	DirOther DirectiveKind = iota
	DirInclude
	DirDefine
	DirPragma
)

var directiveKindNames = [...]string{
	DirOther:   "other",
	DirInclude: "include",
	DirDefine:  "define",
	DirPragma:  "pragma",
}

func (k DirectiveKind) String() string {
	if int(k) < len(directiveKindNames) {
		return directiveKindNames[k]
	}
	return "other"
}

// Directive is one preprocessor line, continuations included. For
// includes, IncludePath is the bare path and System tells <...> from
// "..." form.
type Directive struct {
	Kind        DirectiveKind
	Text        string
	IncludePath string
	System      bool
	Span        source.Span
}
