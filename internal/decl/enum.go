package decl

import "hdrscan/internal/source"

// Enum is an enum declaration. Entry values stay raw: "1<<0" is stored
// as those four characters, never evaluated.
type Enum struct {
	Name      string
	Qualified string
	Span      source.Span
	Attrs     []Attr
	Entries   []EnumEntry
}

func (*Enum) node()   {}
func (*Enum) member() {}

// EnumEntry is one enumerator. Ordinal is the source-order index within
// the enum, not an evaluated value; Value is empty when the entry has
// no initializer.
type EnumEntry struct {
	Name    string
	Value   string
	Ordinal int
	Span    source.Span
}
