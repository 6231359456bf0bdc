package decl

import "hdrscan/internal/source"

// Field is a data member. Type, ArraySize and Default are raw source
// text; IsArray distinguishes "char buf[]" (empty size, still an array)
// from a plain field.
type Field struct {
	Type      string
	Name      string
	IsArray   bool
	ArraySize string
	Default   string
	Attrs     []Attr
	Span      source.Span
}

func (*Field) member() {}
