package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"hdrscan/internal/diag"
	"hdrscan/internal/source"
)

// DirResult is one file's outcome within a batch scan. Result is never
// nil; a file that could not be read gets a bag holding the I/O
// diagnostic and nothing else.
type DirResult struct {
	Path   string
	Result *Result
}

// ListHeaders walks dir and returns the sorted paths of every file that
// matches the configured extensions and include/exclude filters.
func ListHeaders(dir string, opts Options) ([]string, error) {
	opts.Validate()
	return listHeaderFiles(dir, &opts)
}

func listHeaderFiles(dir string, opts *Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !hasExtension(path, opts.Extensions) {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if !matchesFilters(filepath.ToSlash(rel), opts) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// matchesFilters applies include/exclude patterns to the slash-form
// relative path. Patterns try the full relative path first, then the
// basename, with filepath.Match syntax.
func matchesFilters(rel string, opts *Options) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}

	matchAny := func(patterns []string) bool {
		for _, p := range patterns {
			if ok, err := filepath.Match(p, rel); err == nil && ok {
				return true
			}
			if ok, err := filepath.Match(p, base); err == nil && ok {
				return true
			}
		}
		return false
	}

	if matchAny(opts.Exclude) {
		return false
	}
	if len(opts.Include) == 0 {
		return true
	}
	return matchAny(opts.Include)
}

// ScanDir scans every matching header under dir, in parallel, into one
// shared FileSet. Results come back in sorted path order regardless of
// completion order. Files that fail to load surface as IOLoadFileError
// diagnostics, not Go errors; the returned error is reserved for walk
// failures and context cancellation.
func ScanDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DirResult, error) {
	opts.Validate()

	files, err := listHeaderFiles(dir, &opts)
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload everything up front: the FileSet is written here, once,
	// and only read from the workers.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	total := len(files)
	for i, path := range files {
		opts.emit(ctx, Event{Kind: EventQueued, Path: path, Index: i, Total: total})
	}

	results := make([]DirResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, total))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			opts.emit(gctx, Event{Kind: EventScanning, Path: path, Index: i, Total: total})

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(
					diag.IOLoadFileError,
					source.Span{},
					"failed to load file: "+loadErr.Error(),
				))
				results[i] = DirResult{
					Path:   path,
					Result: &Result{FileSet: fileSet, Bag: bag},
				}
				opts.emit(gctx, Event{Kind: EventFailed, Path: path, Index: i, Total: total, Err: loadErr})
				return nil
			}

			// each worker writes only results[i], no lock needed
			res := scanLoaded(fileSet, fileIDs[path], &opts)
			results[i] = DirResult{Path: path, Result: res}

			opts.emit(gctx, Event{
				Kind:        EventDone,
				Path:        path,
				Index:       i,
				Total:       total,
				Diagnostics: res.Bag.Len(),
				FromCache:   res.FromCache,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
