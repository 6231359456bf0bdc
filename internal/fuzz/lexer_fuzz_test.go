package fuzztests

import (
	"testing"

	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.h", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %v starts at %d before previous end %d", tok.Kind, tok.Span.Start, prevEnd)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token %v span %v escapes content of %d bytes", tok.Kind, tok.Span, len(file.Content))
			}
			prevEnd = tok.Span.End
		}
	})
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
