package decl

// Tree is the durable output of one scan. Root is the implicit global
// namespace; Directives lists every preprocessor line in source order,
// regardless of the scope it appeared in.
type Tree struct {
	Root       *Namespace
	Directives []Directive
}

// Includes filters Directives down to include records, in order.
func (t *Tree) Includes() []Directive {
	var out []Directive
	for _, d := range t.Directives {
		if d.Kind == DirInclude {
			out = append(out, d)
		}
	}
	return out
}
