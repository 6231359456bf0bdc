package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hdrscan/internal/decl"
	"hdrscan/internal/source"
)

// sampleTree builds the tree for a header shaped like:
//
//	namespace geo {
//	    [[reflect]] struct shape { double area; void scale(double f) { ... } };
//	    enum kind { circle, square = 1 << 3 };
//	    typedef shape* shape_ptr;
//	}
//	#include <cstdint>
func sampleTree(fileID source.FileID) *decl.Tree {
	sp := source.Span{File: fileID}

	b := decl.NewBuilder()
	b.PushNamespace("geo", sp)

	b.PushStruct("shape", sp, []decl.Attr{{Text: "reflect"}})
	b.AddField(&decl.Field{Type: "double", Name: "area", Span: sp})
	b.AddMethod(&decl.Method{
		ReturnType: "void",
		Name:       "scale",
		Params:     []decl.Param{{Type: "double", Name: "f"}},
		Body:       "{ area *= f * f; }",
		Span:       sp,
	})
	b.Pop(sp)

	b.PushEnum("kind", sp, nil)
	b.AddEnumEntry("circle", "", sp)
	b.AddEnumEntry("square", "1 << 3", sp)
	b.Pop(sp)

	b.AddAlias(&decl.Alias{Name: "shape_ptr", Target: "shape*", Span: sp})
	b.Pop(sp)

	b.AddDirective(decl.Directive{
		Kind:        decl.DirInclude,
		Text:        "#include <cstdint>",
		IncludePath: "cstdint",
		System:      true,
		Span:        sp,
	})

	return b.Finish(sp)
}

func TestTreePrettyLayout(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("geo.h", []byte("// placeholder\n"))
	file := fs.Get(fileID)

	tree := sampleTree(fileID)

	var buf bytes.Buffer
	TreePretty(&buf, tree, fs, file, TreeOpts{
		PathMode:       PathModeBasename,
		ShowDirectives: true,
	})

	expected := strings.Join([]string{
		"geo.h",
		"├─ namespace geo",
		"│  ├─ struct geo::shape [[reflect]]",
		"│  │  ├─ field double area",
		"│  │  └─ method void scale(double f) {...}",
		"│  ├─ enum geo::kind",
		"│  │  ├─ circle",
		"│  │  └─ square = 1 << 3",
		"│  └─ typedef shape_ptr = shape*",
		"└─ include <cstdint>",
		"",
	}, "\n")

	if buf.String() != expected {
		t.Errorf("unexpected layout:\ngot:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestTreePrettyWithoutDirectives(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("geo.h", []byte("// placeholder\n"))

	tree := sampleTree(fileID)

	var buf bytes.Buffer
	TreePretty(&buf, tree, fs, nil, TreeOpts{PathMode: PathModeBasename})

	output := buf.String()
	if !strings.HasPrefix(output, "(tree)\n") {
		t.Errorf("expected placeholder header without a file, got:\n%s", output)
	}
	if strings.Contains(output, "include") {
		t.Errorf("did not expect directives, got:\n%s", output)
	}
	if !strings.Contains(output, "└─ namespace geo") {
		t.Errorf("expected the namespace to become the last row, got:\n%s", output)
	}
}

func TestTreePrettySpans(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("geo.h", []byte("namespace geo {}\n"))
	file := fs.Get(fileID)

	sp := source.Span{File: fileID, Start: 0, End: 13}
	b := decl.NewBuilder()
	b.PushNamespace("geo", sp)
	b.Pop(sp)
	tree := b.Finish(sp)

	var buf bytes.Buffer
	TreePretty(&buf, tree, fs, file, TreeOpts{
		PathMode:  PathModeBasename,
		ShowSpans: true,
	})

	if !strings.Contains(buf.String(), "namespace geo (span: 1:1-1:14)") {
		t.Errorf("expected span suffix, got:\n%s", buf.String())
	}
}

func TestTreeJSONRoundTrip(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("geo.h", []byte("// placeholder\n"))
	file := fs.Get(fileID)

	tree := sampleTree(fileID)

	var buf bytes.Buffer
	err := TreeJSON(&buf, tree, fs, file, TreeOpts{
		PathMode:       PathModeBasename,
		ShowDirectives: true,
	})
	if err != nil {
		t.Fatalf("TreeJSON() error: %v", err)
	}

	var doc TreeDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if doc.File != "geo.h" {
		t.Errorf("Expected file=geo.h, got %s", doc.File)
	}
	if doc.Root.Kind != "namespace" {
		t.Errorf("Expected root kind=namespace, got %s", doc.Root.Kind)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("Expected 1 root child, got %d", len(doc.Root.Children))
	}

	ns := doc.Root.Children[0]
	if ns.Kind != "namespace" || ns.Name != "geo" {
		t.Fatalf("Expected namespace geo, got %s %s", ns.Kind, ns.Name)
	}
	if len(ns.Children) != 2 {
		t.Fatalf("Expected 2 children in geo, got %d", len(ns.Children))
	}

	st := ns.Children[0]
	if st.Kind != "struct" || st.Qualified != "geo::shape" {
		t.Errorf("Expected struct geo::shape, got %s %s", st.Kind, st.Qualified)
	}
	if len(st.Attrs) != 1 || st.Attrs[0] != "reflect" {
		t.Errorf("Expected [[reflect]] on the struct, got %v", st.Attrs)
	}
	if len(st.Members) != 2 {
		t.Fatalf("Expected 2 struct members, got %d", len(st.Members))
	}
	if st.Members[0].Kind != "field" || st.Members[0].Type != "double" {
		t.Errorf("Unexpected first member: %+v", st.Members[0])
	}
	method := st.Members[1]
	if method.Kind != "method" || method.ReturnType != "void" {
		t.Errorf("Unexpected second member: %+v", method)
	}
	if len(method.Params) != 1 || method.Params[0].Name != "f" {
		t.Errorf("Unexpected method params: %+v", method.Params)
	}
	if method.Body == "" {
		t.Error("Expected method body to be carried")
	}

	en := ns.Children[1]
	if en.Kind != "enum" || en.Qualified != "geo::kind" {
		t.Errorf("Expected enum geo::kind, got %s %s", en.Kind, en.Qualified)
	}
	if len(en.Entries) != 2 {
		t.Fatalf("Expected 2 enum entries, got %d", len(en.Entries))
	}
	if en.Entries[1].Name != "square" || en.Entries[1].Value != "1 << 3" {
		t.Errorf("Unexpected second entry: %+v", en.Entries[1])
	}
	if en.Entries[1].Ordinal != 1 {
		t.Errorf("Expected ordinal 1, got %d", en.Entries[1].Ordinal)
	}

	if len(ns.Aliases) != 1 {
		t.Fatalf("Expected 1 alias, got %d", len(ns.Aliases))
	}
	if ns.Aliases[0].Name != "shape_ptr" || ns.Aliases[0].Target != "shape*" {
		t.Errorf("Unexpected alias: %+v", ns.Aliases[0])
	}

	if len(doc.Directives) != 1 {
		t.Fatalf("Expected 1 directive, got %d", len(doc.Directives))
	}
	dir := doc.Directives[0]
	if dir.Kind != "include" || dir.IncludePath != "cstdint" || !dir.System {
		t.Errorf("Unexpected directive: %+v", dir)
	}
}

func TestTreeJSONOmitsDirectives(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("geo.h", []byte("// placeholder\n"))

	tree := sampleTree(fileID)

	doc := BuildTreeDocument(tree, fs, nil, TreeOpts{PathMode: PathModeBasename})
	if doc.File != "" {
		t.Errorf("Expected empty file without a file handle, got %s", doc.File)
	}
	if len(doc.Directives) != 0 {
		t.Errorf("Expected no directives, got %d", len(doc.Directives))
	}
}
