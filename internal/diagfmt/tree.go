package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"hdrscan/internal/decl"
	"hdrscan/internal/source"
)

// TreePretty writes a hierarchical view of a symbol tree. The file
// header comes first, then one line per declaration with ├─/└─
// connectors, then the preprocessor records when enabled.
func TreePretty(w io.Writer, tree *decl.Tree, fs *source.FileSet, file *source.File, opts TreeOpts) {
	header := "(tree)"
	if file != nil {
		header = displayPath(file, fs, opts.PathMode)
	}
	fmt.Fprintln(w, header)

	items := namespaceItems(tree.Root)
	var directives []decl.Directive
	if opts.ShowDirectives {
		directives = tree.Directives
	}

	for i, item := range items {
		last := i == len(items)-1 && len(directives) == 0
		writeTreeItem(w, item, fs, "", last, opts)
	}
	for i, d := range directives {
		last := i == len(directives)-1
		fmt.Fprintf(w, "%s%s\n", connector("", last), directiveLabel(d, fs, opts))
	}
}

// treeItem is one renderable row: a declaration node or an alias.
type treeItem struct {
	node  decl.Node
	alias *decl.Alias
}

// namespaceItems flattens a namespace's children and typedefs into
// display order: declarations first, aliases after.
func namespaceItems(ns *decl.Namespace) []treeItem {
	items := make([]treeItem, 0, len(ns.Children)+len(ns.Aliases))
	for _, child := range ns.Children {
		items = append(items, treeItem{node: child})
	}
	for _, a := range ns.Aliases {
		items = append(items, treeItem{alias: a})
	}
	return items
}

func writeTreeItem(w io.Writer, item treeItem, fs *source.FileSet, prefix string, last bool, opts TreeOpts) {
	if item.alias != nil {
		fmt.Fprintf(w, "%s%s\n", connector(prefix, last), aliasLabel(item.alias, fs, opts))
		return
	}

	n := item.node
	fmt.Fprintf(w, "%s%s\n", connector(prefix, last), nodeLabel(n, fs, opts))
	childPrefix := prefix + continuation(last)

	switch v := n.(type) {
	case *decl.Namespace:
		items := namespaceItems(v)
		for i, child := range items {
			writeTreeItem(w, child, fs, childPrefix, i == len(items)-1, opts)
		}
	case *decl.Struct:
		for i, m := range v.Members {
			writeTreeMember(w, m, fs, childPrefix, i == len(v.Members)-1, opts)
		}
	case *decl.Enum:
		for i, e := range v.Entries {
			fmt.Fprintf(w, "%s%s\n", connector(childPrefix, i == len(v.Entries)-1), entryLabel(e))
		}
	}
}

func writeTreeMember(w io.Writer, m decl.Member, fs *source.FileSet, prefix string, last bool, opts TreeOpts) {
	switch v := m.(type) {
	case *decl.Field:
		fmt.Fprintf(w, "%s%s\n", connector(prefix, last), fieldLabel(v, fs, opts))
	case *decl.Method:
		fmt.Fprintf(w, "%s%s\n", connector(prefix, last), methodLabel(v, "method", fs, opts))
	case decl.Node:
		writeTreeItem(w, treeItem{node: v}, fs, prefix, last, opts)
	}
}

func connector(prefix string, last bool) string {
	if last {
		return prefix + "└─ "
	}
	return prefix + "├─ "
}

func continuation(last bool) string {
	if last {
		return "   "
	}
	return "│  "
}

func nodeLabel(n decl.Node, fs *source.FileSet, opts TreeOpts) string {
	switch v := n.(type) {
	case *decl.Namespace:
		name := v.Name
		if name == "" {
			name = "<anonymous>"
		}
		return "namespace " + name + spanSuffix(v.Span, fs, opts)
	case *decl.Struct:
		return "struct " + v.Qualified + attrSuffix(v.Attrs) + spanSuffix(v.Span, fs, opts)
	case *decl.Enum:
		return "enum " + v.Qualified + attrSuffix(v.Attrs) + spanSuffix(v.Span, fs, opts)
	case *decl.Method:
		return methodLabel(v, "function", fs, opts)
	default:
		return fmt.Sprintf("%T", n)
	}
}

func fieldLabel(f *decl.Field, fs *source.FileSet, opts TreeOpts) string {
	var sb strings.Builder
	sb.WriteString("field ")
	sb.WriteString(f.Type)
	sb.WriteByte(' ')
	sb.WriteString(f.Name)
	if f.IsArray {
		sb.WriteByte('[')
		sb.WriteString(f.ArraySize)
		sb.WriteByte(']')
	}
	if f.Default != "" {
		sb.WriteString(" = ")
		sb.WriteString(f.Default)
	}
	sb.WriteString(attrSuffix(f.Attrs))
	sb.WriteString(spanSuffix(f.Span, fs, opts))
	return sb.String()
}

func methodLabel(m *decl.Method, kind string, fs *source.FileSet, opts TreeOpts) string {
	var sb strings.Builder
	sb.WriteString(kind)
	sb.WriteByte(' ')
	sb.WriteString(Signature(m))
	if m.Body != "" {
		sb.WriteString(" {...}")
	}
	sb.WriteString(attrSuffix(m.Attrs))
	sb.WriteString(spanSuffix(m.Span, fs, opts))
	return sb.String()
}

// Signature renders a method or free function as one line:
// "void move(int dx, int dy) const".
func Signature(m *decl.Method) string {
	var sb strings.Builder
	if m.ReturnType != "" {
		sb.WriteString(m.ReturnType)
		sb.WriteByte(' ')
	}
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type)
		if p.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
		}
	}
	sb.WriteByte(')')
	if m.IsConst {
		sb.WriteString(" const")
	}
	return sb.String()
}

func entryLabel(e decl.EnumEntry) string {
	if e.Value == "" {
		return e.Name
	}
	return e.Name + " = " + e.Value
}

func aliasLabel(a *decl.Alias, fs *source.FileSet, opts TreeOpts) string {
	return "typedef " + a.Name + " = " + a.Target + spanSuffix(a.Span, fs, opts)
}

func directiveLabel(d decl.Directive, fs *source.FileSet, opts TreeOpts) string {
	switch d.Kind {
	case decl.DirInclude:
		if d.System {
			return "include <" + d.IncludePath + ">" + spanSuffix(d.Span, fs, opts)
		}
		return "include \"" + d.IncludePath + "\"" + spanSuffix(d.Span, fs, opts)
	default:
		return strings.TrimSpace(d.Text) + spanSuffix(d.Span, fs, opts)
	}
}

func attrSuffix(attrs []decl.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString(" [[")
		sb.WriteString(a.Text)
		sb.WriteString("]]")
	}
	return sb.String()
}

func spanSuffix(sp source.Span, fs *source.FileSet, opts TreeOpts) string {
	if !opts.ShowSpans {
		return ""
	}
	return " (span: " + formatSpan(sp, fs) + ")"
}
