package parser_test

import (
	"strings"
	"testing"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/parser"
	"hdrscan/internal/source"
)

func scanHeader(t *testing.T, input string) parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.h", []byte(input))
	file := fs.Get(id)
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return parser.Scan(fs, file, lx, parser.Options{MaxErrors: 32, Reporter: reporter})
}

func requireTree(t *testing.T, res parser.Result) *decl.Tree {
	t.Helper()
	if res.Tree == nil {
		t.Fatalf("expected a tree, got nil; diagnostics:\n%s", diagDump(res.Bag))
	}
	return res.Tree
}

func requireClean(t *testing.T, res parser.Result) *decl.Tree {
	t.Helper()
	tree := requireTree(t, res)
	if res.Bag.HasErrors() {
		t.Fatalf("expected no errors, got:\n%s", diagDump(res.Bag))
	}
	return tree
}

func diagDump(bag *diag.Bag) string {
	if bag == nil {
		return "(no bag)"
	}
	var sb strings.Builder
	for _, d := range bag.Items() {
		sb.WriteString(d.Severity.String())
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func findStruct(tree *decl.Tree, qualified string) *decl.Struct {
	var found *decl.Struct
	decl.Walk(tree.Root, func(n decl.Node) bool {
		if s, ok := n.(*decl.Struct); ok && s.Qualified == qualified {
			found = s
		}
		return true
	})
	return found
}

func findEnum(tree *decl.Tree, qualified string) *decl.Enum {
	var found *decl.Enum
	decl.Walk(tree.Root, func(n decl.Node) bool {
		if e, ok := n.(*decl.Enum); ok && e.Qualified == qualified {
			found = e
		}
		return true
	})
	return found
}

func findNamespace(tree *decl.Tree, name string) *decl.Namespace {
	var found *decl.Namespace
	decl.Walk(tree.Root, func(n decl.Node) bool {
		if ns, ok := n.(*decl.Namespace); ok && ns.Name == name {
			found = ns
		}
		return true
	})
	return found
}

func TestScan_EmptyInput(t *testing.T) {
	tree := requireClean(t, scanHeader(t, ""))
	if len(tree.Root.Children) != 0 {
		t.Fatalf("expected an empty root, got %d children", len(tree.Root.Children))
	}
}

func TestScan_SemicolonsOnly(t *testing.T) {
	tree := requireClean(t, scanHeader(t, ";;;\n;\n"))
	if len(tree.Root.Children) != 0 {
		t.Fatalf("expected an empty root, got %d children", len(tree.Root.Children))
	}
}

func TestScan_NamespaceStructField(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
namespace scope
{
	struct hello
	{
		int world;
	};
}
`))

	ns := findNamespace(tree, "scope")
	if ns == nil {
		t.Fatal("namespace scope not found")
	}
	s := findStruct(tree, "scope::hello")
	if s == nil {
		t.Fatal("struct scope::hello not found")
	}
	fields := s.Fields()
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Type != "int" || fields[0].Name != "world" {
		t.Fatalf("expected field 'int world', got %q %q", fields[0].Type, fields[0].Name)
	}
}

func TestScan_NestedNamespaces(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
namespace outer { namespace inner { struct leaf { int v; }; } }
`))
	if findStruct(tree, "outer::inner::leaf") == nil {
		t.Fatal("struct outer::inner::leaf not found")
	}
}

func TestScan_AnonymousNamespace(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
namespace { struct detail_impl { int x; }; }
`))
	// an empty namespace name contributes nothing to qualification
	if findStruct(tree, "detail_impl") == nil {
		t.Fatal("struct detail_impl not found")
	}
}

func TestScan_NestedStructQualifiedNames(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
namespace geo
{
	struct mesh
	{
		struct vertex
		{
			float pos;
		};
		int count;
	};
}
`))

	outer := findStruct(tree, "geo::mesh")
	if outer == nil {
		t.Fatal("struct geo::mesh not found")
	}
	inner := findStruct(tree, "geo::mesh::vertex")
	if inner == nil {
		t.Fatal("struct geo::mesh::vertex not found")
	}
	// the nested type is a member of the outer struct, in source order
	if len(outer.Members) != 2 {
		t.Fatalf("expected 2 members on mesh, got %d", len(outer.Members))
	}
	if _, ok := outer.Members[0].(*decl.Struct); !ok {
		t.Fatalf("expected first member to be the nested struct, got %T", outer.Members[0])
	}
}

func TestScan_ClassKeyword(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `class widget { int handle; };`))
	s := findStruct(tree, "widget")
	if s == nil {
		t.Fatal("class widget not found")
	}
	if len(s.Fields()) != 1 {
		t.Fatalf("expected 1 field, got %d", len(s.Fields()))
	}
}

func TestScan_StructAttributes(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
[[reflect]]
[[serialize(json)]]
struct point
{
	[[hidden]]
	int x;
	int y;
};
`))

	s := findStruct(tree, "point")
	if s == nil {
		t.Fatal("struct point not found")
	}
	if len(s.Attrs) != 2 {
		t.Fatalf("expected 2 struct attributes, got %d", len(s.Attrs))
	}
	if s.Attrs[0].Text != "reflect" || s.Attrs[1].Text != "serialize(json)" {
		t.Fatalf("unexpected attribute texts: %q, %q", s.Attrs[0].Text, s.Attrs[1].Text)
	}

	fields := s.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if len(fields[0].Attrs) != 1 || fields[0].Attrs[0].Text != "hidden" {
		t.Fatalf("expected field x to carry [[hidden]], got %v", fields[0].Attrs)
	}
	if len(fields[1].Attrs) != 0 {
		t.Fatalf("attribute leaked onto field y: %v", fields[1].Attrs)
	}
}

func TestScan_FieldDefaults(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct config
{
	int retries = 3;
	float scale = 2.5f;
	vec2 origin = {0, 0};
};
`))

	fields := findStruct(tree, "config").Fields()
	want := []struct{ typ, name, def string }{
		{"int", "retries", "3"},
		{"float", "scale", "2.5f"},
		{"vec2", "origin", "{0, 0}"},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, w := range want {
		f := fields[i]
		if f.Type != w.typ || f.Name != w.name || f.Default != w.def {
			t.Errorf("field %d: got (%q, %q, default %q), want (%q, %q, default %q)",
				i, f.Type, f.Name, f.Default, w.typ, w.name, w.def)
		}
	}
}

func TestScan_ArrayFields(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct buffers
{
	char name[64];
	int data[];
	float grid[ROWS * COLS];
	char zeroed[100] = {};
};
`))

	fields := findStruct(tree, "buffers").Fields()
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
	checks := []struct {
		isArray bool
		size    string
		def     string
	}{
		{true, "64", ""},
		{true, "", ""},
		{true, "ROWS * COLS", ""},
		{true, "100", "{}"},
	}
	for i, w := range checks {
		f := fields[i]
		if f.IsArray != w.isArray || f.ArraySize != w.size || f.Default != w.def {
			t.Errorf("field %q: got (array=%v, size=%q, default=%q), want (array=%v, size=%q, default=%q)",
				f.Name, f.IsArray, f.ArraySize, f.Default, w.isArray, w.size, w.def)
		}
	}
}

func TestScan_Methods(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct vector2
{
	float length() const;
	void scale(float factor);
	vector2 normalized() const;
};
`))

	methods := findStruct(tree, "vector2").Methods()
	if len(methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(methods))
	}

	if m := methods[0]; m.Name != "length" || m.ReturnType != "float" || !m.IsConst || len(m.Params) != 0 {
		t.Errorf("length: got name=%q ret=%q const=%v params=%d", m.Name, m.ReturnType, m.IsConst, len(m.Params))
	}
	if m := methods[1]; m.Name != "scale" || m.IsConst || len(m.Params) != 1 {
		t.Errorf("scale: got name=%q const=%v params=%d", m.Name, m.IsConst, len(m.Params))
	}
	if m := methods[2]; m.ReturnType != "vector2" || !m.IsConst {
		t.Errorf("normalized: got ret=%q const=%v", m.ReturnType, m.IsConst)
	}
}

func TestScan_MethodParams(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct sink
{
	void write(int fd, const char* label, size_t);
};
`))

	methods := findStruct(tree, "sink").Methods()
	if len(methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(methods))
	}
	params := methods[0].Params
	want := []struct{ typ, name string }{
		{"int", "fd"},
		{"const char*", "label"},
		{"size_t", ""},
	}
	if len(params) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(params))
	}
	for i, w := range want {
		if params[i].Type != w.typ || params[i].Name != w.name {
			t.Errorf("param %d: got (%q, %q), want (%q, %q)", i, params[i].Type, params[i].Name, w.typ, w.name)
		}
	}
}

func TestScan_ConstOverloads(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct bucket
{
	item* at(int i);
	const item* at(int i) const;
};
`))

	methods := findStruct(tree, "bucket").Methods()
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if methods[0].Name != "at" || methods[1].Name != "at" {
		t.Fatalf("expected both overloads to be named 'at', got %q and %q", methods[0].Name, methods[1].Name)
	}
	if methods[0].IsConst || !methods[1].IsConst {
		t.Fatalf("expected const flags (false, true), got (%v, %v)", methods[0].IsConst, methods[1].IsConst)
	}
	if methods[0].ReturnType != "item*" || methods[1].ReturnType != "const item*" {
		t.Fatalf("unexpected return types: %q, %q", methods[0].ReturnType, methods[1].ReturnType)
	}
}

func TestScan_MethodBodyRaw(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct counter
{
	int next()
	{
		// a { brace in a comment
		const char* tag = "a } brace in a string";
		if (value > 0) { value++; }
		return value; /* and one more } here */
	}
};
`))

	methods := findStruct(tree, "counter").Methods()
	if len(methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(methods))
	}
	body := methods[0].Body
	if body == "" {
		t.Fatal("expected an inline body")
	}
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		t.Fatalf("body should include the outer braces, got %q", body)
	}
	for _, fragment := range []string{
		"a { brace in a comment",
		`"a } brace in a string"`,
		"{ value++; }",
		"/* and one more } here */",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("body is missing %q:\n%s", fragment, body)
		}
	}
}

func TestScan_MethodBodySpansDeclaration(t *testing.T) {
	input := `struct t { int get() { return 1; } };`
	res := scanHeader(t, input)
	tree := requireClean(t, res)
	m := findStruct(tree, "t").Methods()[0]
	text := input[m.Span.Start:m.Span.End]
	if !strings.HasPrefix(text, "int get()") || !strings.HasSuffix(text, "}") {
		t.Fatalf("method span covers %q", text)
	}
}

func TestScan_QualifiedFieldType(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct holder
{
	other::thing value;
	const other::thing* ptr;
};
`))

	fields := findStruct(tree, "holder").Fields()
	if fields[0].Type != "other::thing" || fields[0].Name != "value" {
		t.Fatalf("got (%q, %q)", fields[0].Type, fields[0].Name)
	}
	if fields[1].Type != "const other::thing*" || fields[1].Name != "ptr" {
		t.Fatalf("got (%q, %q)", fields[1].Type, fields[1].Name)
	}
}

func TestScan_ReferenceParams(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct node
{
	const node& next(const node& other) const;
};
`))

	m := findStruct(tree, "node").Methods()[0]
	if m.ReturnType != "const node&" {
		t.Fatalf("return type %q", m.ReturnType)
	}
	if len(m.Params) != 1 || m.Params[0].Type != "const node&" || m.Params[0].Name != "other" {
		t.Fatalf("params %+v", m.Params)
	}
}

func TestScan_Enum(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
enum state
{
	idle,
	running,
	stopped
};
`))

	e := findEnum(tree, "state")
	if e == nil {
		t.Fatal("enum state not found")
	}
	if len(e.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(e.Entries))
	}
	names := []string{"idle", "running", "stopped"}
	for i, entry := range e.Entries {
		if entry.Name != names[i] || entry.Ordinal != i || entry.Value != "" {
			t.Errorf("entry %d: got (%q, ordinal %d, value %q)", i, entry.Name, entry.Ordinal, entry.Value)
		}
	}
}

func TestScan_EnumRawValues(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
enum flags
{
	flag1 = 1<<0,
	flag2 = 1 << 1,
	both = flag1 | flag2,
	shifted = (1 << 10)
};
`))

	e := findEnum(tree, "flags")
	if e == nil {
		t.Fatal("enum flags not found")
	}
	want := []string{"1<<0", "1 << 1", "flag1 | flag2", "(1 << 10)"}
	if len(e.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(e.Entries))
	}
	for i, w := range want {
		if e.Entries[i].Value != w {
			t.Errorf("entry %d: value %q, want %q (raw text must survive exactly)", i, e.Entries[i].Value, w)
		}
	}
}

func TestScan_EnumTrailingComma(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `enum e { a, b, };`))
	e := findEnum(tree, "e")
	if len(e.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(e.Entries))
	}
}

func TestScan_EnumScopedWithBase(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `enum class color : int { red, green, blue };`))
	e := findEnum(tree, "color")
	if e == nil {
		t.Fatal("enum color not found")
	}
	if len(e.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(e.Entries))
	}
}

func TestScan_EnumInsideStruct(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct packet
{
	enum kind
	{
		data,
		control
	};
	int size;
};
`))

	e := findEnum(tree, "packet::kind")
	if e == nil {
		t.Fatal("enum packet::kind not found")
	}
	s := findStruct(tree, "packet")
	if len(s.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(s.Members))
	}
}

func TestScan_EnumWithAttributes(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
[[bitmask]]
enum perms { read = 1, write = 2 };
`))
	e := findEnum(tree, "perms")
	if len(e.Attrs) != 1 || e.Attrs[0].Text != "bitmask" {
		t.Fatalf("expected [[bitmask]], got %v", e.Attrs)
	}
}

func TestScan_Typedef(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `typedef unsigned long long u64;`))
	aliases := tree.Root.Aliases
	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias, got %d", len(aliases))
	}
	if aliases[0].Name != "u64" || aliases[0].Target != "unsigned long long" {
		t.Fatalf("got alias %q = %q", aliases[0].Name, aliases[0].Target)
	}
}

func TestScan_TypedefQualifiedTarget(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
namespace wrapped
{
	enum inner { a, b };
}
typedef wrapped::inner Inner;
`))

	if findEnum(tree, "wrapped::inner") == nil {
		t.Fatal("enum wrapped::inner not found")
	}
	aliases := tree.Root.Aliases
	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias at the root, got %d", len(aliases))
	}
	if aliases[0].Name != "Inner" || aliases[0].Target != "wrapped::inner" {
		t.Fatalf("got alias %q = %q", aliases[0].Name, aliases[0].Target)
	}
}

func TestScan_TypedefInsideNamespace(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
namespace app
{
	typedef int handle_t;
}
`))

	if len(tree.Root.Aliases) != 0 {
		t.Fatalf("alias leaked to the root: %v", tree.Root.Aliases)
	}
	ns := findNamespace(tree, "app")
	if len(ns.Aliases) != 1 || ns.Aliases[0].Name != "handle_t" {
		t.Fatalf("expected handle_t on namespace app, got %v", ns.Aliases)
	}
}

func TestScan_TypedefPointerTarget(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `typedef const char* cstring;`))
	a := tree.Root.Aliases[0]
	if a.Name != "cstring" || a.Target != "const char*" {
		t.Fatalf("got alias %q = %q", a.Name, a.Target)
	}
}

func TestScan_Directives(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
#include "file.h"
#include <vector>
#define LIMIT 64
#pragma once
#ifdef GUARD
#endif
`))

	if len(tree.Directives) != 6 {
		t.Fatalf("expected 6 directives, got %d", len(tree.Directives))
	}

	includes := tree.Includes()
	if len(includes) != 2 {
		t.Fatalf("expected 2 includes, got %d", len(includes))
	}
	if includes[0].IncludePath != "file.h" || includes[0].System {
		t.Fatalf("first include: path %q system %v", includes[0].IncludePath, includes[0].System)
	}
	if includes[1].IncludePath != "vector" || !includes[1].System {
		t.Fatalf("second include: path %q system %v", includes[1].IncludePath, includes[1].System)
	}

	kinds := []decl.DirectiveKind{
		decl.DirInclude, decl.DirInclude, decl.DirDefine,
		decl.DirPragma, decl.DirOther, decl.DirOther,
	}
	for i, want := range kinds {
		if tree.Directives[i].Kind != want {
			t.Errorf("directive %d: kind %v, want %v", i, tree.Directives[i].Kind, want)
		}
	}
}

func TestScan_DirectiveInsideStruct(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct opts
{
#ifdef EXTENDED
	int extra;
#endif
	int base;
};
`))

	s := findStruct(tree, "opts")
	if len(s.Fields()) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(s.Fields()))
	}
	if len(tree.Directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(tree.Directives))
	}
}

func TestScan_DirectiveInsideEnum(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
enum caps
{
	basic,
#ifdef FULL
	advanced,
#endif
	last
};
`))

	e := findEnum(tree, "caps")
	if len(e.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(e.Entries))
	}
}

func TestScan_ForwardDeclarationsSkipped(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct fwd;
enum efwd;
class cfwd;
struct real { int x; };
`))

	if findStruct(tree, "fwd") != nil || findStruct(tree, "cfwd") != nil {
		t.Fatal("forward declarations must not produce nodes")
	}
	if findEnum(tree, "efwd") != nil {
		t.Fatal("enum forward declaration must not produce a node")
	}
	if findStruct(tree, "real") == nil {
		t.Fatal("struct real not found")
	}
}

func TestScan_StructWithBaseClause(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct derived : public base
{
	int extra;
};
`))

	s := findStruct(tree, "derived")
	if s == nil {
		t.Fatal("struct derived not found")
	}
	if len(s.Fields()) != 1 {
		t.Fatalf("expected 1 field, got %d", len(s.Fields()))
	}
}

func TestScan_FreeFunctionWithBody(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
void setup()
{
	// keywords in comments: struct enum class
	const char* banner = "struct {} enum, class \"quoted\" #include";
	int a = 0;
	int b = a++;
}
`))

	var fns []*decl.Method
	for _, child := range tree.Root.Children {
		if m, ok := child.(*decl.Method); ok {
			fns = append(fns, m)
		}
	}
	if len(fns) != 1 {
		t.Fatalf("expected 1 free function, got %d", len(fns))
	}
	fn := fns[0]
	if fn.Name != "setup" || fn.ReturnType != "void" {
		t.Fatalf("got name=%q ret=%q", fn.Name, fn.ReturnType)
	}
	if !strings.Contains(fn.Body, "a++") {
		t.Fatalf("body lost its statements:\n%s", fn.Body)
	}
	// nothing inside the body may leak into the tree
	if findStruct(tree, "struct") != nil || len(tree.Root.Children) != 1 {
		t.Fatal("body content leaked into the symbol tree")
	}
}

func TestScan_FreeFunctionDeclaration(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `int api_version(void* ctx);`))
	m, ok := tree.Root.Children[0].(*decl.Method)
	if !ok {
		t.Fatalf("expected a free function, got %T", tree.Root.Children[0])
	}
	if m.Name != "api_version" || m.Body != "" {
		t.Fatalf("got name=%q body=%q", m.Name, m.Body)
	}
}

func TestScan_GlobalVariablesSkipped(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
int counter = 0;
const char* app_name = "demo";
int table[] = {1, 2, 3};
struct keep { int x; };
`))

	if findStruct(tree, "keep") == nil {
		t.Fatal("struct keep not found")
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("global variables must be skipped, got %d children", len(tree.Root.Children))
	}
}

func TestScan_CommentsProduceNothing(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
// struct fake { int x; };
/*
enum ghost
{
	a = 1
};
*/
`))

	if len(tree.Root.Children) != 0 {
		t.Fatalf("comment content leaked: %d children", len(tree.Root.Children))
	}
}

func TestScan_StringContentProducesNothing(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct banner
{
	string text = "struct fake { enum ghost";
	char open = '{';
};
`))

	if got := len(tree.Root.Children); got != 1 {
		t.Fatalf("string content leaked: %d top-level nodes", got)
	}
	fields := findStruct(tree, "banner").Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Default != `"struct fake { enum ghost"` {
		t.Errorf("default not preserved raw: %q", fields[0].Default)
	}
}

func TestScan_StrayCloseBrace(t *testing.T) {
	res := scanHeader(t, `}`)
	requireTree(t, res)
	if !hasCode(res.Bag, diag.SynUnexpectedToken) {
		t.Fatalf("expected SynUnexpectedToken, got:\n%s", diagDump(res.Bag))
	}
}

func TestScan_UnclosedScope(t *testing.T) {
	res := scanHeader(t, `
namespace a
{
	struct b
	{
		int x;
`)
	tree := requireTree(t, res)
	if !hasCode(res.Bag, diag.SynUnbalancedScope) {
		t.Fatalf("expected SynUnbalancedScope, got:\n%s", diagDump(res.Bag))
	}
	// partial declarations survive a missing close
	s := findStruct(tree, "a::b")
	if s == nil {
		t.Fatal("partially scanned struct a::b should still be in the tree")
	}
	if len(s.Fields()) != 1 {
		t.Fatalf("expected the scanned field to survive, got %d fields", len(s.Fields()))
	}
}

func TestScan_MissingSemicolonBeforeClose(t *testing.T) {
	res := scanHeader(t, `
struct s
{
	int a
};
`)
	tree := requireTree(t, res)
	if !hasCode(res.Bag, diag.SynExpectSemicolon) {
		t.Fatalf("expected SynExpectSemicolon, got:\n%s", diagDump(res.Bag))
	}
	s := findStruct(tree, "s")
	if s == nil || len(s.Fields()) != 1 {
		t.Fatal("the field should be kept despite the missing ';'")
	}
}

func TestScan_MalformedMemberRecovers(t *testing.T) {
	res := scanHeader(t, `
struct s
{
	int a + ;
	int b;
};
`)
	tree := requireTree(t, res)
	if !res.Bag.HasErrors() {
		t.Fatal("expected a diagnostic for the malformed member")
	}
	s := findStruct(tree, "s")
	fields := s.Fields()
	if len(fields) != 1 || fields[0].Name != "b" {
		t.Fatalf("recovery should reach field b, got %+v", fields)
	}
}

func TestScan_MissingDefaultValueSemicolon(t *testing.T) {
	res := scanHeader(t, `
struct s
{
	float x = 10
};
`)
	tree := requireTree(t, res)
	if !hasCode(res.Bag, diag.SynExpectSemicolon) {
		t.Fatalf("expected SynExpectSemicolon, got:\n%s", diagDump(res.Bag))
	}
	fields := findStruct(tree, "s").Fields()
	if len(fields) != 1 || fields[0].Default != "10" {
		t.Fatalf("field with default should survive, got %+v", fields)
	}
}

func TestScan_DanglingAttribute(t *testing.T) {
	res := scanHeader(t, `[[lonely]]`)
	requireTree(t, res)
	if !hasCode(res.Bag, diag.SynDanglingAttribute) {
		t.Fatalf("expected SynDanglingAttribute, got:\n%s", diagDump(res.Bag))
	}
}

func TestScan_DanglingAttributeInStruct(t *testing.T) {
	res := scanHeader(t, `
struct s
{
	[[tag]]
};
`)
	requireTree(t, res)
	if !hasCode(res.Bag, diag.SynDanglingAttribute) {
		t.Fatalf("expected SynDanglingAttribute, got:\n%s", diagDump(res.Bag))
	}
}

func TestScan_UnclosedAttribute(t *testing.T) {
	res := scanHeader(t, `[[never closed`)
	requireTree(t, res)
	if !hasCode(res.Bag, diag.SynUnclosedAttribute) {
		t.Fatalf("expected SynUnclosedAttribute, got:\n%s", diagDump(res.Bag))
	}
}

func TestScan_LexicalErrorDropsTree(t *testing.T) {
	res := scanHeader(t, `
struct s
{
	const char* s = "never terminated;
};
`)
	if res.Tree != nil {
		t.Fatal("a latched lexical error must drop the tree")
	}
	if !hasCode(res.Bag, diag.LexUnterminatedString) {
		t.Fatalf("expected LexUnterminatedString, got:\n%s", diagDump(res.Bag))
	}
}

func TestScan_PureVirtualTolerated(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
struct iface
{
	virtual void handle(int ev) = 0;
};
`))

	methods := findStruct(tree, "iface").Methods()
	if len(methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(methods))
	}
	if methods[0].Name != "handle" || methods[0].Body != "" {
		t.Fatalf("got name=%q body=%q", methods[0].Name, methods[0].Body)
	}
}

func TestScan_MaxErrorsCapsDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.h", []byte(`
? ;
? ;
? ;
? ;
? ;
? ;
`))
	file := fs.Get(id)
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := parser.Scan(fs, file, lx, parser.Options{MaxErrors: 3, Reporter: reporter})

	if !hasCode(res.Bag, diag.SynTooManyErrors) {
		t.Fatalf("expected SynTooManyErrors, got:\n%s", diagDump(res.Bag))
	}
	errs := 0
	for _, d := range res.Bag.Items() {
		if d.IsError() {
			errs++
		}
	}
	// the cap plus the closing "too many errors" marker
	if errs > 4 {
		t.Fatalf("expected at most 4 errors, got %d:\n%s", errs, diagDump(res.Bag))
	}
}

func TestScan_FullHeader(t *testing.T) {
	tree := requireClean(t, scanHeader(t, `
// dependencies
#include "geometry.h"
#include "io.h"

#define API_REVISION 3
#define API_STABLE

namespace engine
{
	struct bounds
	{
		int width;
	};

	[[reflect]]
	struct sprite
	{
		[[range(0, 255)]]
		float alpha = 10;
		char layers[100] = {};
		void move(int dx, int dy);
		void clamp(int lo, int hi) const;
		void reset()
		{
			// ..
		}
	};

	enum axis
	{
		x,
		y,
		z,
		w
	};

	enum mask
	{
		m1 = 1<<0,
		m2 = 1<<1,
		m3 = 1<<2,
		m4 = 1<<3
	};
}

namespace wrapped_status
{
	enum status
	{
		ok,
		failed
	};
}
typedef wrapped_status::status Status;

void bootstrap()
{
	/*
	struct shadow
	{
		int a = 0;
	}
	*/
	int a = 0;
	const char* raw = "struct {} enum class #include";
}
`))

	includes := tree.Includes()
	if len(includes) != 2 || includes[0].IncludePath != "geometry.h" || includes[1].IncludePath != "io.h" {
		t.Fatalf("includes: %+v", includes)
	}

	defines := 0
	for _, d := range tree.Directives {
		if d.Kind == decl.DirDefine {
			defines++
		}
	}
	if defines != 2 {
		t.Fatalf("expected 2 defines, got %d", defines)
	}

	if findStruct(tree, "engine::bounds") == nil {
		t.Fatal("struct engine::bounds not found")
	}

	sprite := findStruct(tree, "engine::sprite")
	if sprite == nil {
		t.Fatal("struct engine::sprite not found")
	}
	if len(sprite.Attrs) != 1 || sprite.Attrs[0].Text != "reflect" {
		t.Fatalf("sprite attrs: %v", sprite.Attrs)
	}
	fields := sprite.Fields()
	if len(fields) != 2 {
		t.Fatalf("sprite fields: %d", len(fields))
	}
	if fields[0].Name != "alpha" || fields[0].Default != "10" || len(fields[0].Attrs) != 1 {
		t.Fatalf("alpha: %+v", fields[0])
	}
	if fields[1].Name != "layers" || !fields[1].IsArray || fields[1].ArraySize != "100" || fields[1].Default != "{}" {
		t.Fatalf("layers: %+v", fields[1])
	}
	methods := sprite.Methods()
	if len(methods) != 3 {
		t.Fatalf("sprite methods: %d", len(methods))
	}
	if methods[1].Name != "clamp" || !methods[1].IsConst {
		t.Fatalf("clamp: %+v", methods[1])
	}
	if methods[2].Name != "reset" || methods[2].Body == "" {
		t.Fatalf("reset should keep its inline body: %+v", methods[2])
	}

	axis := findEnum(tree, "engine::axis")
	if axis == nil || len(axis.Entries) != 4 {
		t.Fatal("enum engine::axis not scanned")
	}
	mask := findEnum(tree, "engine::mask")
	if mask == nil || mask.Entries[3].Value != "1<<3" {
		t.Fatal("enum engine::mask lost its raw values")
	}

	if len(tree.Root.Aliases) != 1 || tree.Root.Aliases[0].Name != "Status" {
		t.Fatalf("root aliases: %+v", tree.Root.Aliases)
	}

	var freeFns []*decl.Method
	for _, child := range tree.Root.Children {
		if m, ok := child.(*decl.Method); ok {
			freeFns = append(freeFns, m)
		}
	}
	if len(freeFns) != 1 || freeFns[0].Name != "bootstrap" {
		t.Fatalf("free functions: %+v", freeFns)
	}
	if findStruct(tree, "shadow") != nil {
		t.Fatal("commented-out struct leaked into the tree")
	}
}

func BenchmarkScan_Header(b *testing.B) {
	input := []byte(`
#include "a.h"
namespace n
{
	struct s
	{
		int a = 1;
		char buf[64];
		void f(int x) const;
	};
	enum e { one = 1<<0, two = 1<<1 };
}
typedef n::s alias_s;
`)
	fs := source.NewFileSet()
	id := fs.AddVirtual("bench.h", input)
	file := fs.Get(id)

	for b.Loop() {
		lx := lexer.New(file, lexer.Options{Reporter: diag.NopReporter{}})
		res := parser.Scan(fs, file, lx, parser.Options{Reporter: diag.NopReporter{}})
		if res.Tree == nil {
			b.Fatal("scan failed")
		}
	}
}
