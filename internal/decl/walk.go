package decl

// Walk visits n and every node under it, depth-first in source order,
// descending into nested types. fn returning false prunes the children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Namespace:
		for _, child := range v.Children {
			Walk(child, fn)
		}
	case *Struct:
		for _, m := range v.Members {
			if child, ok := m.(Node); ok {
				Walk(child, fn)
			}
		}
	}
}
