package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hdrscan/internal/diagfmt"
	"hdrscan/internal/driver"
	"hdrscan/internal/observ"
	"hdrscan/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <file.h|directory>...",
	Short: "Scan header files or directories and report their declarations",
	Long:  `Scan runs the lexer and declaration parser over C-family headers and reports per-file declaration counts plus any diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "", "output format (pretty|json); default comes from the manifest")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers for directory scanning (0=auto)")
	scanCmd.Flags().String("ui", "auto", "live progress for directory scans (auto|on|off)")
	scanCmd.Flags().Bool("no-cache", false, "rescan files whose content digest is already cached")
	scanCmd.Flags().Bool("debug", false, "verbose scan logging to stderr")
}

// scanPayload is one file's entry in the JSON report.
type scanPayload struct {
	Path        string                    `json:"path"`
	FromCache   bool                      `json:"from_cache,omitempty"`
	Stats       driver.Stats              `json:"stats"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Timing      *observ.Report            `json:"timing,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	rf, err := readRootFlags(cmd)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := outputFormat(formatFlag, ".")
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts, err := scanOptions(rf, ".")
	if err != nil {
		return err
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	opts.Debug = debug

	if !noCache {
		cache, cacheErr := driver.OpenCache("hdrscan")
		if cacheErr == nil {
			opts.Cache = cache
		} else if debug {
			fmt.Fprintf(os.Stderr, "cache unavailable: %v\n", cacheErr)
		}
	}

	var payloads []scanPayload
	broken := false

	for _, path := range args {
		st, statErr := os.Stat(path)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}

		if st.IsDir() {
			fs, results, dirErr := scanDirectory(cmd, rf, path, opts, mode, format)
			if dirErr != nil {
				return dirErr
			}
			for _, r := range results {
				collectScanResult(rf, format, fs, r.Path, r.Result, &payloads, &broken)
			}
			continue
		}

		res, scanErr := driver.ScanFile(path, opts)
		if scanErr != nil {
			return fmt.Errorf("scanning failed: %w", scanErr)
		}
		collectScanResult(rf, format, res.FileSet, path, res, &payloads, &broken)
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payloads); err != nil {
			return err
		}
	}

	if broken {
		return fmt.Errorf("scan finished with errors")
	}
	return nil
}

// scanDirectory fans one directory out over the driver, with the Bubble
// Tea progress view when the terminal allows it.
func scanDirectory(cmd *cobra.Command, rf rootFlags, dir string, opts driver.Options, mode uiMode, format string) (*source.FileSet, []driver.DirResult, error) {
	// the TUI owns stdout; JSON and quiet runs keep it plain
	useTUI := shouldUseTUI(mode) && format == "pretty" && !rf.Quiet
	if !useTUI {
		fs, results, err := driver.ScanDir(cmd.Context(), dir, opts)
		if err != nil {
			return fs, results, fmt.Errorf("scanning %s failed: %w", dir, err)
		}
		return fs, results, nil
	}

	files, err := driver.ListHeaders(dir, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s failed: %w", dir, err)
	}
	fs, results, err := runScanDirWithUI(cmd.Context(), dir, files, opts)
	if err != nil {
		return fs, results, fmt.Errorf("scanning %s failed: %w", dir, err)
	}
	return fs, results, nil
}

// collectScanResult prints one file's pretty report immediately or
// stashes its JSON payload for the final document.
func collectScanResult(rf rootFlags, format string, fs *source.FileSet, path string, res *driver.Result, payloads *[]scanPayload, broken *bool) {
	if res.Broken() {
		*broken = true
	}

	if format == "json" {
		*payloads = append(*payloads, scanPayload{
			Path:      path,
			FromCache: res.FromCache,
			Stats:     res.Stats,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, fs, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}),
			Timing: res.Timing,
		})
		return
	}

	printBag(rf, res.Bag, fs)
	if !rf.Quiet {
		summarizeScan(os.Stdout, path, res)
	}
	if rf.Timings && res.Timing != nil {
		printTimingReport(os.Stderr, path, res.Timing)
	}
}

func summarizeScan(out *os.File, path string, res *driver.Result) {
	s := res.Stats
	fmt.Fprintf(out, "%s: %d namespaces, %d structs, %d enums, %d fields, %d methods, %d typedefs, %d includes",
		path, s.Namespaces, s.Structs, s.Enums, s.Fields, s.Methods, s.Typedefs, s.Includes)
	if res.FromCache {
		fmt.Fprint(out, " (cached)")
	}
	if res.Broken() {
		fmt.Fprintf(out, " [%d diagnostics]", res.Bag.Len())
	}
	fmt.Fprintln(out)
}
