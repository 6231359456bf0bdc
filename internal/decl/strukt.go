package decl

import "hdrscan/internal/source"

// Struct is a struct or class declaration. Qualified is the
// namespace-qualified name ("scope::hello"), assigned when the node is
// sealed. Members keep source order; nested type declarations appear
// among them.
type Struct struct {
	Name      string
	Qualified string
	Span      source.Span
	Attrs     []Attr
	Members   []Member // *Field | *Method | *Struct | *Enum
}

func (*Struct) node()   {}
func (*Struct) member() {}

// Fields filters Members down to fields, in order.
func (s *Struct) Fields() []*Field {
	var out []*Field
	for _, m := range s.Members {
		if f, ok := m.(*Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Methods filters Members down to methods, in order.
func (s *Struct) Methods() []*Method {
	var out []*Method
	for _, m := range s.Members {
		if fn, ok := m.(*Method); ok {
			out = append(out, fn)
		}
	}
	return out
}
