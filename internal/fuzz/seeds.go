package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB cap for corpus entries

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addHeaderSeeds(f)
}

// addTestdataSeeds walks the repository testdata tree, if present, and
// feeds every header it finds into the corpus.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".h", ".hh", ".hpp", ".hxx":
		default:
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addHeaderSeeds contributes handwritten snippets covering every
// lexical region and declaration shape the scanner knows.
func addHeaderSeeds(f *testing.F) {
	seeds := []string{
		"",
		"namespace scope { struct hello { int world; }; }\n",
		"// line comment with struct fake { int x; }\n",
		"/* block comment\nstruct fake { int x; };\n*/\n",
		"const char* str = \"struct inside a string { #include }\";\n",
		"char c = '\\'';\n",
		"#include <stdint.h>\n#include \"local.h\"\n",
		"#define WIDE(a, b) \\\n    ((a) + (b))\n",
		"enum test2 { flag1 = 1<<0, flag2 = 1<<1, flag3 = 1<<2, flag4 = 1<<3 };\n",
		"[[size:1]] struct attributed { [[nested]] int field = 7; };\n",
		"struct methods { int get() const; void set(int v) { value = v; } int value; };\n",
		"typedef e_enum_wrapped::enum_wrapped EnumWrapped;\n",
		"struct arrays { float pos[3]; char name[]; };\n",
		"namespace a { namespace b { struct c { struct d { int e; }; }; } }\n",
		"void free_function() { if (\"}\" [0]) { /* } */ } }\n",
		"struct broken { int x\n", // missing ';' and '}'
		"}}}\n",                   // stray closers
		"\"unterminated\n",
		"/* unterminated",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
