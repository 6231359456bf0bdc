package decl

import "hdrscan/internal/source"

// Attr is one bracketed attribute annotation. Text is the raw content
// between `[[` and `]]`.
type Attr struct {
	Text string
	Span source.Span
}
