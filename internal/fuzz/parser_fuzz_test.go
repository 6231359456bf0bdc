package fuzztests

import (
	"testing"
	"time"

	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/parser"
	"hdrscan/internal/source"
	"hdrscan/internal/testkit"
)

// scanTimeout is the maximum time allowed for scanning a single input.
// Anything longer indicates an infinite loop in error recovery.
const scanTimeout = 5 * time.Second

func FuzzScannerBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.h", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		reporter := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		res := parser.Scan(fs, file, lx, parser.Options{
			MaxErrors: 128,
			Reporter:  reporter,
		})
		if res.Tree == nil {
			// a lexical error latched; the bag must say why
			if !bag.HasErrors() {
				t.Fatal("nil tree without an error diagnostic")
			}
			return
		}
		if err := testkit.CheckTreeInvariants(res.Tree, file); err != nil {
			t.Fatalf("tree invariants: %v", err)
		}
	})
}

// FuzzScannerNoHang guards against inputs that wedge the resync loop.
func FuzzScannerNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// shapes that stress error recovery
	f.Add([]byte("struct s { int a int b; };"))          // missing semicolon
	f.Add([]byte("namespace n { struct s {"))            // nothing ever closes
	f.Add([]byte("enum e { a = , b = 1<< };"))           // empty value expressions
	f.Add([]byte("[[attr]] [[attr]] [[attr]] struct"))   // attributes with no declaration
	f.Add([]byte("void f() { { { /* } */ \"}\" } } };")) // braces hidden in non-code regions
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.h", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			reporter := &diag.BagReporter{Bag: bag}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})
			_ = parser.Scan(fs, file, lx, parser.Options{
				MaxErrors: 128,
				Reporter:  reporter,
			})
		}()

		select {
		case <-done:
		case <-time.After(scanTimeout):
			t.Fatalf("scanner hang: input (%d bytes): %q", len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
