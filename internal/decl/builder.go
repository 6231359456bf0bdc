package decl

import (
	"strings"

	"hdrscan/internal/source"
)

type frameKind uint8

const (
	frameNamespace frameKind = iota
	frameStruct
	frameEnum
)

// frame is one open scope. Exactly one of ns/st/en is set, per kind.
type frame struct {
	kind frameKind
	ns   *Namespace
	st   *Struct
	en   *Enum
	open source.Span
}

// Builder assembles the symbol tree during one scan. The parser pushes
// a frame when an opening construct is recognized and pops on the
// matching close; the builder seals each popped node into its parent in
// source order. The only validation here is structural completeness:
// Unclosed reports frames never popped.
type Builder struct {
	tree  *Tree
	stack []frame
}

// NewBuilder starts a tree rooted at the implicit global namespace.
func NewBuilder() *Builder {
	root := &Namespace{}
	return &Builder{
		tree:  &Tree{Root: root},
		stack: []frame{{kind: frameNamespace, ns: root}},
	}
}

// InStruct reports whether the innermost open frame is a struct body.
func (b *Builder) InStruct() bool {
	return b.top().kind == frameStruct
}

// Depth is the number of open frames, the implicit root included.
func (b *Builder) Depth() int {
	return len(b.stack)
}

func (b *Builder) top() *frame {
	return &b.stack[len(b.stack)-1]
}

func (b *Builder) PushNamespace(name string, open source.Span) {
	b.stack = append(b.stack, frame{
		kind: frameNamespace,
		ns:   &Namespace{Name: name, Span: open},
		open: open,
	})
}

func (b *Builder) PushStruct(name string, open source.Span, attrs []Attr) {
	b.stack = append(b.stack, frame{
		kind: frameStruct,
		st:   &Struct{Name: name, Span: open, Attrs: attrs},
		open: open,
	})
}

func (b *Builder) PushEnum(name string, open source.Span, attrs []Attr) {
	b.stack = append(b.stack, frame{
		kind: frameEnum,
		en:   &Enum{Name: name, Span: open, Attrs: attrs},
		open: open,
	})
}

// AddEnumEntry appends an enumerator to the open enum frame, assigning
// the next source-order ordinal. No-op when the top frame is not an
// enum.
func (b *Builder) AddEnumEntry(name, value string, sp source.Span) {
	top := b.top()
	if top.kind != frameEnum {
		return
	}
	top.en.Entries = append(top.en.Entries, EnumEntry{
		Name:    name,
		Value:   value,
		Ordinal: len(top.en.Entries),
		Span:    sp,
	})
}

// AddField appends a field to the open struct frame. Returns false when
// the top frame is not a struct.
func (b *Builder) AddField(f *Field) bool {
	top := b.top()
	if top.kind != frameStruct {
		return false
	}
	top.st.Members = append(top.st.Members, f)
	return true
}

// AddMethod appends a method to the open struct frame, or hangs a free
// function off the enclosing namespace.
func (b *Builder) AddMethod(m *Method) {
	top := b.top()
	if top.kind == frameStruct {
		top.st.Members = append(top.st.Members, m)
		return
	}
	if top.kind == frameNamespace {
		top.ns.Children = append(top.ns.Children, m)
	}
}

// AddAlias records a typedef at the nearest enclosing namespace scope.
func (b *Builder) AddAlias(a *Alias) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].kind == frameNamespace {
			b.stack[i].ns.Aliases = append(b.stack[i].ns.Aliases, a)
			return
		}
	}
}

// AddDirective records a preprocessor line on the tree.
func (b *Builder) AddDirective(d Directive) {
	b.tree.Directives = append(b.tree.Directives, d)
}

// Pop seals the innermost open frame into its parent, covering the
// node span through close. Returns false when only the root is left
// (a stray closing brace).
func (b *Builder) Pop(close source.Span) bool {
	if len(b.stack) <= 1 {
		return false
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.top()

	switch top.kind {
	case frameNamespace:
		top.ns.Span = top.open.Cover(close)
		b.seal(parent, top.ns)
	case frameStruct:
		top.st.Span = top.open.Cover(close)
		top.st.Qualified = b.qualify(top.st.Name)
		b.seal(parent, top.st)
	case frameEnum:
		top.en.Span = top.open.Cover(close)
		top.en.Qualified = b.qualify(top.en.Name)
		b.seal(parent, top.en)
	}
	return true
}

func (b *Builder) seal(parent *frame, n Node) {
	switch parent.kind {
	case frameNamespace:
		parent.ns.Children = append(parent.ns.Children, n)
	case frameStruct:
		if m, ok := n.(Member); ok {
			parent.st.Members = append(parent.st.Members, m)
		}
	case frameEnum:
		// the parser never opens a scope inside an enum body
	}
}

// qualify joins the names of the remaining (enclosing) frames with the
// node's own name: "scope::hello". Called after the node's frame is
// popped, so the stack holds exactly the enclosing scopes.
func (b *Builder) qualify(name string) string {
	var parts []string
	for i := range b.stack {
		switch fr := &b.stack[i]; fr.kind {
		case frameNamespace:
			if fr.ns.Name != "" {
				parts = append(parts, fr.ns.Name)
			}
		case frameStruct:
			parts = append(parts, fr.st.Name)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, "::")
}

// Unclosed lists the opening spans of frames still open, outermost
// first. Non-empty after the last token means unbalanced scopes.
func (b *Builder) Unclosed() []source.Span {
	var out []source.Span
	for _, fr := range b.stack[1:] {
		out = append(out, fr.open)
	}
	return out
}

// Finish seals any frames left open (reported separately via Unclosed)
// and returns the completed tree. Partial declarations survive so a
// broken header still yields everything scanned before the breakage.
func (b *Builder) Finish(close source.Span) *Tree {
	for len(b.stack) > 1 {
		b.Pop(close)
	}
	return b.tree
}
