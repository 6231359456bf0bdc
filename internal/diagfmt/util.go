package diagfmt

import (
	"fmt"

	"hdrscan/internal/source"
)

// formatSpan renders a span as "startLine:startCol-endLine:endCol" when
// a FileSet is available, or as raw byte offsets otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// locate maps a span to its file. A zero span marks a file-level
// diagnostic with no source location (a load failure, a timing report);
// those, and spans whose file is not in the set, stay unlocated.
func locate(fs *source.FileSet, span source.Span) (*source.File, bool) {
	if span == (source.Span{}) {
		return nil, false
	}
	return fs.Lookup(span.File)
}

// displayPath renders a file's path for the given mode.
func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
