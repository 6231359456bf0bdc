package decl

// Node is anything that can appear as a child of a namespace:
// a nested namespace, a struct, an enum, or a free function.
type Node interface {
	node()
}

// Member is anything that can appear inside a struct body: fields,
// methods, and nested type declarations.
type Member interface {
	member()
}
