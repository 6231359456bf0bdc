package decl

import "hdrscan/internal/source"

// Namespace groups declarations. The tree root is a Namespace with an
// empty name; every other namespace carries the declared identifier.
type Namespace struct {
	Name     string
	Span     source.Span
	Children []Node   // *Namespace | *Struct | *Enum | *Method (free function)
	Aliases  []*Alias // typedefs recorded at this scope
}

func (*Namespace) node() {}
