package driver

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/davecgh/go-spew/spew"

	"hdrscan/internal/decl"
	"hdrscan/internal/diag"
	"hdrscan/internal/lexer"
	"hdrscan/internal/observ"
	"hdrscan/internal/parser"
	"hdrscan/internal/source"
)

// Result is the outcome of scanning one header. Tree is nil when the
// lexer failed or when the result was replayed from the cache; Bag
// always holds whatever diagnostics the scan produced.
type Result struct {
	FileSet *source.FileSet
	FileID  source.FileID
	File    *source.File
	Tree    *decl.Tree
	Bag     *diag.Bag
	Stats   Stats
	Timing  *observ.Report
	Digest  Digest

	// FromCache marks a replay. Stats and Bag are meaningful, Tree and
	// Timing are not.
	FromCache bool
}

// Broken reports whether the scan hit any error-severity diagnostic.
func (r *Result) Broken() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// ScanSource scans an in-memory buffer registered under a display name.
// Useful for tests and editor integration; never touches the cache.
func ScanSource(name string, content []byte, opts Options) *Result {
	opts.Validate()
	opts.Cache = nil

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return scanLoaded(fs, fileID, &opts)
}

// ScanFile loads one file from disk and scans it.
func ScanFile(path string, opts Options) (*Result, error) {
	opts.Validate()

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return scanLoaded(fs, fileID, &opts), nil
}

// scanLoaded runs the pipeline over a file already in fs. opts must be
// validated.
func scanLoaded(fs *source.FileSet, fileID source.FileID, opts *Options) *Result {
	file := fs.Get(fileID)
	digest := ContentDigest(file.Content)

	if opts.Cache != nil {
		var cached CachedScan
		hit, err := opts.Cache.Get(digest, &cached)
		if err != nil {
			opts.debugf("cache get %s: %v", file.Path, err)
		}
		if hit {
			opts.debugf("cache hit %s %s", file.Path, digest)
			return &Result{
				FileSet:   fs,
				FileID:    fileID,
				File:      file,
				Bag:       replayDiagnostics(&cached, fileID, opts.MaxDiagnostics),
				Stats:     cached.Stats,
				Digest:    digest,
				FromCache: true,
			}
		}
	}

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("max diagnostics overflow: %w", err))
	}

	timer := observ.NewTimer()
	// one slot past the budget so the give-up marker emitted on the
	// last error still lands in the bag
	bag := diag.NewBag(opts.MaxDiagnostics + 1)
	// error recovery can revisit a position; repeats say nothing new
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	// lexing is fused into the parse pass, the phase name says so;
	// `tokenize` reports a pure lex phase
	phase := timer.Begin("lex+parse")
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.Scan(fs, file, lx, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  reporter,
	})
	timer.End(phase, file.Path)

	phase = timer.Begin("build")
	stats := CollectStats(parsed.Tree)
	timer.End(phase, "")

	report := timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "scan",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	res := &Result{
		FileSet: fs,
		FileID:  fileID,
		File:    file,
		Tree:    parsed.Tree,
		Bag:     bag,
		Stats:   stats,
		Timing:  &report,
		Digest:  digest,
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(digest, cachePayload(file.Path, res)); err != nil {
			opts.debugf("cache put %s: %v", file.Path, err)
		}
	}
	if opts.Debug {
		opts.debugf("scanned %s: %s", file.Path, spew.Sprint(stats))
	}
	return res
}
