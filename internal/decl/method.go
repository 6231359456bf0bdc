package decl

import "hdrscan/internal/source"

// Method is a member function, or a free function when it hangs off a
// namespace. Body is the raw brace-matched source including the outer
// braces; empty means the declaration had no inline body.
type Method struct {
	ReturnType string
	Name       string
	Params     []Param
	IsConst    bool
	Body       string
	Attrs      []Attr
	Span       source.Span
}

func (*Method) node()   {}
func (*Method) member() {}

// Param is one parameter. Type is the raw text up to the parameter
// name; Name is empty for unnamed parameters.
type Param struct {
	Type string
	Name string
	Span source.Span
}
