package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"hdrscan/internal/decl"
	"hdrscan/internal/diagfmt"
	"hdrscan/internal/driver"
)

const (
	browseHistory = ".hdrscan_history"
	browsePrompt  = "hdrscan> "
)

const browseHelp = `commands:
  ls              top-level declarations
  structs         every struct, qualified
  enums           every enum, qualified
  typedefs        typedef aliases
  includes        include directives in order
  show <name>     one declaration in full (bare or qualified name)
  help            this text
  quit            leave the browser
`

var browseCmd = &cobra.Command{
	Use:   "browse file.h",
	Short: "Explore a scanned header interactively",
	Long: `Browse scans one header and opens a small REPL over its symbol tree.
Type "help" inside for the command list; Ctrl+D or quit exits.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	rf, err := readRootFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := scanOptions(rf, ".")
	if err != nil {
		return err
	}

	result, err := driver.ScanFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("scanning failed: %w", err)
	}
	printBag(rf, result.Bag, result.FileSet)
	if result.Tree == nil {
		return fmt.Errorf("%s: no symbol tree (lexing failed)", args[0])
	}

	b := newBrowser(args[0], result.Tree, rf.useColor(os.Stdout))
	return b.loop()
}

// browser holds the scanned tree plus a name index so "show hello" and
// "show scope::hello" both resolve.
type browser struct {
	path    string
	tree    *decl.Tree
	byName  map[string]decl.Node
	names   []string
	heading *color.Color
	kindCol *color.Color
}

func newBrowser(path string, tree *decl.Tree, useColor bool) *browser {
	b := &browser{
		path:    path,
		tree:    tree,
		byName:  make(map[string]decl.Node),
		heading: color.New(color.FgCyan, color.Bold),
		kindCol: color.New(color.FgYellow),
	}
	if !useColor {
		b.heading.DisableColor()
		b.kindCol.DisableColor()
	}

	decl.Walk(tree.Root, func(n decl.Node) bool {
		switch v := n.(type) {
		case *decl.Namespace:
			if v.Name != "" {
				b.index(v.Name, v)
			}
		case *decl.Struct:
			b.index(v.Name, v)
			b.index(v.Qualified, v)
		case *decl.Enum:
			b.index(v.Name, v)
			b.index(v.Qualified, v)
		case *decl.Method:
			b.index(v.Name, v)
		}
		return true
	})
	sort.Strings(b.names)
	return b
}

// index keeps the first declaration under each name; duplicates stay
// reachable through ls output even when shadowed here.
func (b *browser) index(name string, n decl.Node) {
	if name == "" {
		return
	}
	if _, seen := b.byName[name]; seen {
		return
	}
	b.byName[name] = n
	b.names = append(b.names, name)
}

func (b *browser) loop() error {
	fmt.Printf("hdrscan browser over %s — help lists commands, quit exits\n", b.path)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(b.complete)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, browseHistory)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(browsePrompt)
		if err != nil {
			// Ctrl+D or Ctrl+C
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Print(browseHelp)
		case "ls":
			b.list(b.tree.Root)
		case "structs":
			b.listKind(func(n decl.Node) (string, bool) {
				s, ok := n.(*decl.Struct)
				if !ok {
					return "", false
				}
				return s.Qualified, true
			})
		case "enums":
			b.listKind(func(n decl.Node) (string, bool) {
				e, ok := n.(*decl.Enum)
				if !ok {
					return "", false
				}
				return e.Qualified, true
			})
		case "typedefs":
			b.typedefs()
		case "includes":
			for _, inc := range b.tree.Includes() {
				fmt.Printf("  %s\n", inc.IncludePath)
			}
		case "show":
			if arg == "" {
				fmt.Println("usage: show <name>")
				continue
			}
			b.show(arg)
		default:
			fmt.Printf("unknown command %q; help lists commands\n", cmd)
		}
	}
}

func (b *browser) complete(line string) []string {
	words := []string{"ls", "structs", "enums", "typedefs", "includes", "show ", "help", "quit"}
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, line) {
			out = append(out, w)
		}
	}
	if rest, ok := strings.CutPrefix(line, "show "); ok {
		for _, name := range b.names {
			if strings.HasPrefix(name, rest) {
				out = append(out, "show "+name)
			}
		}
	}
	return out
}

func (b *browser) list(ns *decl.Namespace) {
	for _, child := range ns.Children {
		switch v := child.(type) {
		case *decl.Namespace:
			fmt.Printf("  %s %s\n", b.kindCol.Sprint("namespace"), v.Name)
		case *decl.Struct:
			fmt.Printf("  %s %s\n", b.kindCol.Sprint("struct"), v.Name)
		case *decl.Enum:
			fmt.Printf("  %s %s\n", b.kindCol.Sprint("enum"), v.Name)
		case *decl.Method:
			fmt.Printf("  %s %s\n", b.kindCol.Sprint("function"), diagfmt.Signature(v))
		}
	}
	for _, alias := range ns.Aliases {
		fmt.Printf("  %s %s = %s\n", b.kindCol.Sprint("typedef"), alias.Name, alias.Target)
	}
}

func (b *browser) listKind(pick func(decl.Node) (string, bool)) {
	decl.Walk(b.tree.Root, func(n decl.Node) bool {
		if name, ok := pick(n); ok {
			fmt.Printf("  %s\n", name)
		}
		return true
	})
}

func (b *browser) typedefs() {
	decl.Walk(b.tree.Root, func(n decl.Node) bool {
		if ns, ok := n.(*decl.Namespace); ok {
			for _, alias := range ns.Aliases {
				fmt.Printf("  %s = %s\n", alias.Name, alias.Target)
			}
		}
		return true
	})
}

func (b *browser) show(name string) {
	node, ok := b.byName[name]
	if !ok {
		fmt.Printf("no declaration named %q\n", name)
		return
	}

	switch v := node.(type) {
	case *decl.Namespace:
		fmt.Printf("%s %s\n", b.heading.Sprint("namespace"), v.Name)
		b.list(v)
	case *decl.Struct:
		for _, a := range v.Attrs {
			fmt.Printf("[[%s]]\n", a.Text)
		}
		fmt.Printf("%s %s\n", b.heading.Sprint("struct"), v.Qualified)
		for _, m := range v.Members {
			b.showMember(m)
		}
	case *decl.Enum:
		for _, a := range v.Attrs {
			fmt.Printf("[[%s]]\n", a.Text)
		}
		fmt.Printf("%s %s\n", b.heading.Sprint("enum"), v.Qualified)
		for _, e := range v.Entries {
			if e.Value != "" {
				fmt.Printf("  %s = %s\n", e.Name, e.Value)
			} else {
				fmt.Printf("  %s\n", e.Name)
			}
		}
	case *decl.Method:
		fmt.Printf("%s %s\n", b.heading.Sprint("function"), diagfmt.Signature(v))
	}
}

func (b *browser) showMember(m decl.Member) {
	switch v := m.(type) {
	case *decl.Field:
		for _, a := range v.Attrs {
			fmt.Printf("  [[%s]]\n", a.Text)
		}
		line := fmt.Sprintf("  %s %s", v.Type, v.Name)
		if v.IsArray {
			line += "[" + v.ArraySize + "]"
		}
		if v.Default != "" {
			line += " = " + v.Default
		}
		fmt.Println(line)
	case *decl.Method:
		for _, a := range v.Attrs {
			fmt.Printf("  [[%s]]\n", a.Text)
		}
		fmt.Printf("  %s\n", diagfmt.Signature(v))
	case *decl.Struct:
		fmt.Printf("  %s %s\n", b.kindCol.Sprint("struct"), v.Name)
	case *decl.Enum:
		fmt.Printf("  %s %s\n", b.kindCol.Sprint("enum"), v.Name)
	}
}
