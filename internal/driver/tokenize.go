package driver

import (
	"fmt"

	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/observ"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// TokenizeResult carries the raw token stream of one file, EOF
// included.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	Timing  *observ.Report
}

// TokenizeSource tokenizes an in-memory buffer under a display name.
func TokenizeSource(name string, content []byte, opts Options) *TokenizeResult {
	opts.Validate()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeLoaded(fs, fileID, &opts)
}

// TokenizeFile loads one file from disk and tokenizes it.
func TokenizeFile(path string, opts Options) (*TokenizeResult, error) {
	opts.Validate()

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeLoaded(fs, fileID, &opts), nil
}

func tokenizeLoaded(fs *source.FileSet, fileID source.FileID, opts *Options) *TokenizeResult {
	file := fs.Get(fileID)

	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	phase := timer.Begin("lex")
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	timer.End(phase, file.Path)

	report := timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "tokenize",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
		Timing:  &report,
	}
}
