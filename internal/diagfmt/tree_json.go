package diagfmt

import (
	"encoding/json"
	"io"

	"hdrscan/internal/decl"
	"hdrscan/internal/source"
)

// NodeJSON is one declaration rendered for JSON output. Kind selects
// which of the optional fields are meaningful: "namespace" fills
// children/aliases, "struct" fills members, "enum" fills entries,
// "field" and "method"/"function" fill the declaration-shaped fields.
type NodeJSON struct {
	Kind      string       `json:"kind"`
	Name      string       `json:"name,omitempty"`
	Qualified string       `json:"qualified,omitempty"`
	Location  LocationJSON `json:"location"`
	Attrs     []string     `json:"attrs,omitempty"`

	Children []NodeJSON  `json:"children,omitempty"`
	Aliases  []AliasJSON `json:"aliases,omitempty"`

	Members []NodeJSON `json:"members,omitempty"`

	Entries []EnumEntryJSON `json:"entries,omitempty"`

	Type      string `json:"type,omitempty"`
	IsArray   bool   `json:"is_array,omitempty"`
	ArraySize string `json:"array_size,omitempty"`
	Default   string `json:"default,omitempty"`

	ReturnType string      `json:"return_type,omitempty"`
	Params     []ParamJSON `json:"params,omitempty"`
	IsConst    bool        `json:"is_const,omitempty"`
	Body       string      `json:"body,omitempty"`
}

// EnumEntryJSON is one enumerator with its raw value text.
type EnumEntryJSON struct {
	Name    string `json:"name"`
	Value   string `json:"value,omitempty"`
	Ordinal int    `json:"ordinal"`
}

// ParamJSON is one parameter of a method or free function.
type ParamJSON struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// AliasJSON is one typedef record.
type AliasJSON struct {
	Name     string       `json:"name"`
	Target   string       `json:"target"`
	Location LocationJSON `json:"location"`
}

// DirectiveJSON is one preprocessor line.
type DirectiveJSON struct {
	Kind        string       `json:"kind"`
	Text        string       `json:"text"`
	IncludePath string       `json:"include_path,omitempty"`
	System      bool         `json:"system,omitempty"`
	Location    LocationJSON `json:"location"`
}

// TreeDocument is the root structure of symbol-tree JSON.
type TreeDocument struct {
	File       string          `json:"file,omitempty"`
	Root       NodeJSON        `json:"root"`
	Directives []DirectiveJSON `json:"directives,omitempty"`
}

// BuildTreeDocument assembles the JSON payload for one scanned file.
func BuildTreeDocument(tree *decl.Tree, fs *source.FileSet, file *source.File, opts TreeOpts) TreeDocument {
	doc := TreeDocument{
		Root: namespaceJSON(tree.Root, fs, opts),
	}
	if file != nil {
		doc.File = displayPath(file, fs, opts.PathMode)
	}
	if opts.ShowDirectives {
		doc.Directives = make([]DirectiveJSON, 0, len(tree.Directives))
		for _, d := range tree.Directives {
			doc.Directives = append(doc.Directives, DirectiveJSON{
				Kind:        d.Kind.String(),
				Text:        d.Text,
				IncludePath: d.IncludePath,
				System:      d.System,
				Location:    makeLocation(d.Span, fs, opts.PathMode, true),
			})
		}
	}
	return doc
}

// TreeJSON renders a symbol tree as an indented JSON document.
func TreeJSON(w io.Writer, tree *decl.Tree, fs *source.FileSet, file *source.File, opts TreeOpts) error {
	doc := BuildTreeDocument(tree, fs, file, opts)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func namespaceJSON(ns *decl.Namespace, fs *source.FileSet, opts TreeOpts) NodeJSON {
	out := NodeJSON{
		Kind:     "namespace",
		Name:     ns.Name,
		Location: makeLocation(ns.Span, fs, opts.PathMode, true),
	}
	for _, child := range ns.Children {
		out.Children = append(out.Children, nodeJSON(child, fs, opts))
	}
	for _, a := range ns.Aliases {
		out.Aliases = append(out.Aliases, AliasJSON{
			Name:     a.Name,
			Target:   a.Target,
			Location: makeLocation(a.Span, fs, opts.PathMode, true),
		})
	}
	return out
}

func nodeJSON(n decl.Node, fs *source.FileSet, opts TreeOpts) NodeJSON {
	switch v := n.(type) {
	case *decl.Namespace:
		return namespaceJSON(v, fs, opts)
	case *decl.Struct:
		out := NodeJSON{
			Kind:      "struct",
			Name:      v.Name,
			Qualified: v.Qualified,
			Location:  makeLocation(v.Span, fs, opts.PathMode, true),
			Attrs:     attrTexts(v.Attrs),
		}
		for _, m := range v.Members {
			out.Members = append(out.Members, memberJSON(m, fs, opts))
		}
		return out
	case *decl.Enum:
		out := NodeJSON{
			Kind:      "enum",
			Name:      v.Name,
			Qualified: v.Qualified,
			Location:  makeLocation(v.Span, fs, opts.PathMode, true),
			Attrs:     attrTexts(v.Attrs),
		}
		for _, e := range v.Entries {
			out.Entries = append(out.Entries, EnumEntryJSON{
				Name:    e.Name,
				Value:   e.Value,
				Ordinal: e.Ordinal,
			})
		}
		return out
	case *decl.Method:
		return methodJSON(v, "function", fs, opts)
	default:
		return NodeJSON{Kind: "unknown"}
	}
}

func memberJSON(m decl.Member, fs *source.FileSet, opts TreeOpts) NodeJSON {
	switch v := m.(type) {
	case *decl.Field:
		return NodeJSON{
			Kind:      "field",
			Name:      v.Name,
			Location:  makeLocation(v.Span, fs, opts.PathMode, true),
			Attrs:     attrTexts(v.Attrs),
			Type:      v.Type,
			IsArray:   v.IsArray,
			ArraySize: v.ArraySize,
			Default:   v.Default,
		}
	case *decl.Method:
		return methodJSON(v, "method", fs, opts)
	case decl.Node:
		return nodeJSON(v, fs, opts)
	default:
		return NodeJSON{Kind: "unknown"}
	}
}

func methodJSON(m *decl.Method, kind string, fs *source.FileSet, opts TreeOpts) NodeJSON {
	out := NodeJSON{
		Kind:       kind,
		Name:       m.Name,
		Location:   makeLocation(m.Span, fs, opts.PathMode, true),
		Attrs:      attrTexts(m.Attrs),
		ReturnType: m.ReturnType,
		IsConst:    m.IsConst,
		Body:       m.Body,
	}
	for _, p := range m.Params {
		out.Params = append(out.Params, ParamJSON{Type: p.Type, Name: p.Name})
	}
	return out
}

func attrTexts(attrs []decl.Attr) []string {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Text
	}
	return out
}
