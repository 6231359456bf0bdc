package decl

import "hdrscan/internal/source"

// Alias is a typedef record: `typedef TARGET NAME;`. Target is raw
// source text and may be qualified ("e_enum_wrapped::enum_wrapped").
type Alias struct {
	Name   string
	Target string
	Span   source.Span
}
