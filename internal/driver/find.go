package driver

import (
	"fmt"

	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

// TokenMatch is one occurrence of the searched text as a whole token.
type TokenMatch struct {
	Path     string
	Span     source.Span
	Line     uint32
	Col      uint32
	LineText string
	Kind     token.Kind
}

// FindResult holds the matches for one file plus whatever diagnostics
// lexing produced along the way.
type FindResult struct {
	FileSet *source.FileSet
	File    *source.File
	Matches []TokenMatch
	Bag     *diag.Bag
}

// FindInFile searches one file for tokens spelled exactly like needle.
// Text inside comments, string literals and char literals can never
// match: it is not tokenized as code. On a lexical error the matches
// collected up to the failure point are returned with the diagnostic.
func FindInFile(path, needle string, opts Options) (*FindResult, error) {
	opts.Validate()

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return findLoaded(fs, fileID, needle, &opts), nil
}

// FindInSource searches an in-memory buffer.
func FindInSource(name string, content []byte, needle string, opts Options) *FindResult {
	opts.Validate()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return findLoaded(fs, fileID, needle, &opts)
}

func findLoaded(fs *source.FileSet, fileID source.FileID, needle string, opts *Options) *FindResult {
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var matches []TokenMatch
	if needle != "" {
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if fs.Text(tok.Span) != needle {
				continue
			}
			start, _ := fs.Resolve(tok.Span)
			matches = append(matches, TokenMatch{
				Path:     file.Path,
				Span:     tok.Span,
				Line:     start.Line,
				Col:      start.Col,
				LineText: file.GetLine(start.Line),
				Kind:     tok.Kind,
			})
		}
	}

	return &FindResult{
		FileSet: fs,
		File:    file,
		Matches: matches,
		Bag:     bag,
	}
}
