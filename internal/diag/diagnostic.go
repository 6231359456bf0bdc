package diag

import (
	"hdrscan/internal/source"
)

// Note carries a secondary span with extra context for a diagnostic,
// e.g. "scope opened here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced by a scan phase. It is plain data:
// rendering lives in internal/diagfmt, collection in Bag.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// IsError reports whether the diagnostic is fatal for its phase.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
