package driver

import "hdrscan/internal/decl"

// Stats counts what one header declares. Methods includes free
// functions, Typedefs counts aliases at every scope.
type Stats struct {
	Namespaces int `json:"namespaces"`
	Structs    int `json:"structs"`
	Enums      int `json:"enums"`
	Fields     int `json:"fields"`
	Methods    int `json:"methods"`
	Typedefs   int `json:"typedefs"`
	Includes   int `json:"includes"`
}

// CollectStats tallies a tree. A nil tree (failed scan) counts as
// empty.
func CollectStats(tree *decl.Tree) Stats {
	var s Stats
	if tree == nil {
		return s
	}
	decl.Walk(tree.Root, func(n decl.Node) bool {
		switch v := n.(type) {
		case *decl.Namespace:
			if v != tree.Root {
				s.Namespaces++
			}
			s.Typedefs += len(v.Aliases)
		case *decl.Struct:
			s.Structs++
			s.Fields += len(v.Fields())
		case *decl.Enum:
			s.Enums++
		case *decl.Method:
			s.Methods++
		}
		return true
	})
	s.Includes = len(tree.Includes())
	return s
}
